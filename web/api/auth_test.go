package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"klikk/models"
	"klikk/web"
	"klikk/web/api"

	"github.com/rohanthewiz/rweb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt-testing-32chars"

type testServer struct {
	baseURL string
	client  *http.Client
}

// newTestServer starts the dev API on a dynamic port with a fresh
// in-memory account database.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users, err := models.OpenUserRegistry("")
	require.NoError(t, err)
	t.Cleanup(func() { users.Close() })

	handlers, err := api.NewHandlers(users.WithHashCost(bcrypt.MinCost), []byte(testSecret))
	require.NoError(t, err)

	readyChan := make(chan struct{}, 1)
	srv := web.NewDevAPIServer(rweb.ServerOptions{
		Address:   "localhost:",
		ReadyChan: readyChan,
	}, handlers, 0)

	go func() {
		_ = srv.Run()
	}()
	<-readyChan

	return &testServer{
		baseURL: fmt.Sprintf("http://localhost:%s", srv.GetListenPort()),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// request sends a JSON body and decodes the JSON reply
func (ts *testServer) request(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.baseURL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

var ada = map[string]string{
	"firstName": "Ada",
	"lastName":  "Lovelace",
	"email":     "ada@example.com",
	"password":  "engine1!",
}

func TestNewHandlersRejectsShortSecret(t *testing.T) {
	_, err := api.NewHandlers(nil, []byte("short"))
	assert.Error(t, err)
}

// TestAuthAPI exercises the dev API over HTTP
func TestAuthAPI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ts := newTestServer(t)

	t.Run("HealthEmpty", func(t *testing.T) {
		status, resp := ts.request(t, "GET", "/api/health", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ok", resp["status"])
		assert.EqualValues(t, 0, resp["users"])
	})

	t.Run("RegisterSuccess", func(t *testing.T) {
		status, resp := ts.request(t, "POST", "/api/register", ada)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, api.MsgRegistered, resp["message"])
	})

	t.Run("RegisterDuplicate", func(t *testing.T) {
		status, resp := ts.request(t, "POST", "/api/register", ada)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, api.MsgUserExists, resp["message"])
	})

	t.Run("RegisterInvalidField", func(t *testing.T) {
		bad := map[string]string{"firstName": "A", "lastName": "Smith", "email": "a@b.com", "password": "abc123!"}
		status, resp := ts.request(t, "POST", "/api/register", bad)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "First name must be at least 2 letters and contain only alphabets", resp["message"])
	})

	t.Run("RegisterMalformedBody", func(t *testing.T) {
		status, resp := ts.request(t, "POST", "/api/register", "not an object")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, api.MsgInvalidBody, resp["message"])
	})

	t.Run("LoginSuccess", func(t *testing.T) {
		status, resp := ts.request(t, "POST", "/api/login", map[string]string{
			"email": "ada@example.com", "password": "engine1!",
		})
		require.Equal(t, http.StatusOK, status)

		token, _ := resp["token"].(string)
		claims, err := models.VerifyToken([]byte(testSecret), token)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", claims.Email)
		assert.Equal(t, "Ada Lovelace", claims.Name)
		assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		status, resp := ts.request(t, "POST", "/api/login", map[string]string{
			"email": "ada@example.com", "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, api.MsgInvalidCredentials, resp["message"])
	})

	t.Run("LoginMissingFields", func(t *testing.T) {
		status, resp := ts.request(t, "POST", "/api/login", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, api.MsgMissingCredentials, resp["message"])
	})

	t.Run("HealthCountsUsers", func(t *testing.T) {
		_, resp := ts.request(t, "GET", "/api/health", nil)
		assert.EqualValues(t, 1, resp["users"])
	})
}

// TestAuthClientAgainstDevAPI checks the client and the dev API agree on
// the wire format end to end.
func TestAuthClientAgainstDevAPI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ts := newTestServer(t)
	client := models.NewAuthClient(ts.baseURL, nil)
	ctx := context.Background()

	msg, err := client.Register(ctx, models.RegistrationData{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Password: "cobol60!",
	})
	require.NoError(t, err)
	assert.Equal(t, api.MsgRegistered, msg)

	token, err := client.Login(ctx, models.Credentials{Email: "grace@example.com", Password: "cobol60!"})
	require.NoError(t, err)

	info, ok := models.DescribeToken(token)
	require.True(t, ok)
	assert.Equal(t, "Grace Hopper", info.Name)

	_, err = client.Login(ctx, models.Credentials{Email: "grace@example.com", Password: "wrong"})
	assert.Equal(t, api.MsgInvalidCredentials, models.ErrorMessage(err, models.LoginFailedMessage))
}
