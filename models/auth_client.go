package models

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rohanthewiz/logger"
)

// Auth API paths, relative to the configured base URL
const (
	LoginPath    = "/api/login"
	RegisterPath = "/api/register"
)

// maxResponseBytes bounds how much of a reply is read; auth replies are tiny
const maxResponseBytes = 1 << 20

// HTTPDoer is the slice of *http.Client the auth client needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// AuthClient talks to the remote auth API. Each call is a single attempt:
// no retries, and no timeout beyond what the HTTP client enforces.
type AuthClient struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewAuthClient creates a client for the API at baseURL.
// A nil httpClient uses a plain *http.Client.
func NewAuthClient(baseURL string, httpClient HTTPDoer) *AuthClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &AuthClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// NewHTTPClient builds the HTTP client the auth client uses.
// A zero timeout keeps net/http's default of none.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// BaseURL returns the API base URL.
func (c *AuthClient) BaseURL() string {
	return c.baseURL
}

// apiReply is the union of the API's reply bodies
type apiReply struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login posts the credentials and returns the issued token.
// A 2xx reply without a token is an EndpointError with no message, so
// callers show their own fallback rather than the reply's success text.
func (c *AuthClient) Login(ctx context.Context, creds Credentials) (string, error) {
	status, reply, err := c.post(ctx, LoginPath, creds)
	if err != nil {
		return "", err
	}

	if reply.Token == "" {
		return "", &EndpointError{Status: status}
	}

	logger.Debug("Login accepted by auth api", "status", status)
	return reply.Token, nil
}

// Register posts the registration data and returns the API's success message.
func (c *AuthClient) Register(ctx context.Context, data RegistrationData) (string, error) {
	status, reply, err := c.post(ctx, RegisterPath, data)
	if err != nil {
		return "", err
	}

	logger.Debug("Registration accepted by auth api", "status", status)
	return reply.Message, nil
}

// post sends payload as JSON and decodes the reply.
// Non-2xx statuses come back as *EndpointError carrying any message field.
func (c *AuthClient) post(ctx context.Context, path string, payload any) (int, apiReply, error) {
	var reply apiReply

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, reply, &TransportError{Op: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, reply, &TransportError{Op: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.LogErr(err, "auth api request failed", "path", path)
		return 0, reply, &TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, reply, &TransportError{Op: "read response", Err: err}
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &reply); err != nil {
			if success {
				return resp.StatusCode, apiReply{}, &TransportError{Op: "decode response", Err: err}
			}
			// Error pages are often HTML; the status alone is enough
			reply = apiReply{}
		}
	}

	if !success {
		logger.Debug("Auth api rejected request", "path", path, "status", resp.StatusCode)
		return resp.StatusCode, reply, &EndpointError{Status: resp.StatusCode, Message: reply.Message}
	}
	return resp.StatusCode, reply, nil
}
