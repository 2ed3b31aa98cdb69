package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

//go:embed all:static
var staticFiles embed.FS

// faviconSVG is served for /favicon.ico so no separate icon file is needed
const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 500 500"><rect width="500" height="500" rx="60" fill="#2f6fed"/><text x="250" y="330" font-family="Arial,sans-serif" font-weight="900" font-size="240" fill="white" text-anchor="middle">K</text></svg>`

// SetupStaticFiles serves the embedded stylesheet and the favicon
func SetupStaticFiles(s *rweb.Server) {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logger.LogErr(err, "failed to get static subdirectory")
		return
	}

	s.Get("/favicon.ico", func(c rweb.Context) error {
		c.Response().SetHeader("Content-Type", "image/svg+xml")
		c.Response().SetHeader("Cache-Control", "public, max-age=86400")
		return c.Bytes([]byte(faviconSVG))
	})

	s.Get("/static/*", func(c rweb.Context) error {
		name, ok := staticPath(c.Request().Path())
		if !ok {
			c.SetStatus(http.StatusNotFound)
			return nil
		}

		content, err := fs.ReadFile(staticFS, name)
		if err != nil {
			// Directories and missing files look the same to the browser
			c.SetStatus(http.StatusNotFound)
			return nil
		}

		if ct := contentType(name); ct != "" {
			c.Response().SetHeader("Content-Type", ct)
		}
		c.Response().SetHeader("Cache-Control", "public, max-age=3600")
		return c.Bytes(content)
	})
}

// staticPath maps a request path under /static/ to a name in the embedded FS
func staticPath(reqPath string) (string, bool) {
	name := strings.TrimPrefix(reqPath, "/static/")
	if name == reqPath || name == "" {
		return "", false
	}
	name = path.Clean(name)
	if !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}

// contentType returns the content type for the asset kinds we ship
func contentType(name string) string {
	switch path.Ext(name) {
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	default:
		return ""
	}
}
