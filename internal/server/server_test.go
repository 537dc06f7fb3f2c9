package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{
		Port:               0,
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		OAuthRedirectURL:   "http://localhost/api/auth/callback",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(s.limiter.Stop)
	return s
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, httptest.NewRequest("OPTIONS", "/api/email/process", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestAuthStatusUnauthenticated(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, httptest.NewRequest("GET", "/api/auth/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["authenticated"])
}

func TestAuthURLIssuesStateCookie(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, httptest.NewRequest("GET", "/api/auth/url", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	authURL, _ := body["authUrl"].(string)
	assert.Contains(t, authURL, "client_id=client-id")

	var state string
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == stateCookie {
			state = cookie.Value
		}
	}
	require.NotEmpty(t, state)
	assert.Contains(t, authURL, state)
}

func TestAuthCallbackRejectsMissingCode(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, httptest.NewRequest("GET", "/api/auth/callback", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthCallbackRejectsStateMismatch(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest("GET", "/api/auth/callback?code=abc&state=evil", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: "expected"})
	rec := do(s, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "state mismatch")
}

func TestProcessRequiresSession(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, httptest.NewRequest("POST", "/api/email/process", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["errorCount"])
	assert.Contains(t, body["helpText"], "log in again")
}

func TestProcessRejectsStaleSessionCookie(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest("POST", "/api/email/process-with-files", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "stale"})
	rec := do(s, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired session")
}

func TestRunsUnavailableWithoutDatabase(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, httptest.NewRequest("GET", "/api/runs", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLogoutWithoutSession(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, httptest.NewRequest("POST", "/api/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "logged out", decode(t, rec)["status"])
}
