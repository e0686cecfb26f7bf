package gateway

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/models"
)

// upstreamStub records the last forwarded request and answers with a canned
// status and body.
type upstreamStub struct {
	lastMethod string
	lastPath   string
	lastQuery  string
	lastUserID string
	status     int
	body       string
}

func (u *upstreamStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.lastMethod = r.Method
		u.lastPath = r.URL.Path
		u.lastQuery = r.URL.RawQuery
		u.lastUserID = r.Header.Get(models.HeaderUserID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(u.status)
		_, _ = w.Write([]byte(u.body))
	})
}

func setupGateway(t *testing.T, upstream *upstreamStub) *Server {
	t.Helper()
	ts := httptest.NewServer(upstream.handler())
	t.Cleanup(ts.Close)

	logger := zerolog.Nop()
	cfg := config.GatewayConfig{
		Port:      0,
		ServerURL: ts.URL,
		RateLimit: config.RateLimitConfig{Requests: 100, WindowSeconds: 60},
	}
	limiter := NewMemoryRateLimiter(cfg.RateLimit.Requests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
	return NewServer(cfg, NewServerClient(cfg.ServerURL), limiter, &logger)
}

func gatewayRequest(t *testing.T, srv *Server, method, path, userID string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if userID != "" {
		req.Header.Set(models.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestGateway_ForwardsStatusAndBody(t *testing.T) {
	upstream := &upstreamStub{status: http.StatusOK, body: `{"id":1,"name":"Alice","email":"alice@example.com"}`}
	srv := setupGateway(t, upstream)

	rec := gatewayRequest(t, srv, http.MethodPost, "/users", "",
		[]byte(`{"name":"Alice","email":"alice@example.com"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, upstream.body, rec.Body.String())
	assert.Equal(t, http.MethodPost, upstream.lastMethod)
	assert.Equal(t, "/users", upstream.lastPath)
}

func TestGateway_RelaysUpstreamErrors(t *testing.T) {
	upstream := &upstreamStub{status: http.StatusNotFound, body: `{"error":"Not Found","message":"user with id 7 not found"}`}
	srv := setupGateway(t, upstream)

	rec := gatewayRequest(t, srv, http.MethodGet, "/users/7", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, upstream.body, rec.Body.String())
}

func TestGateway_ForwardsIdentityHeaderAndQuery(t *testing.T) {
	upstream := &upstreamStub{status: http.StatusOK, body: `[]`}
	srv := setupGateway(t, upstream)

	rec := gatewayRequest(t, srv, http.MethodGet, "/bookings?state=WAITING&from=0&size=5", "42", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", upstream.lastUserID)
	assert.Equal(t, "state=WAITING&from=0&size=5", upstream.lastQuery)
}

func TestGateway_RejectsInvalidUser(t *testing.T) {
	upstream := &upstreamStub{status: http.StatusOK, body: `{}`}
	srv := setupGateway(t, upstream)

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"blank name", `{"name":" ","email":"a@b.c"}`, "name is blank"},
		{"blank email", `{"name":"Alice","email":""}`, "email is blank"},
		{"bad email", `{"name":"Alice","email":"nope"}`, "incorrect email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := gatewayRequest(t, srv, http.MethodPost, "/users", "", []byte(tt.body))
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body api.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.msg, body.Message)
			// Invalid requests never reach the server.
			assert.Empty(t, upstream.lastMethod)
		})
	}
}

func TestGateway_RejectsMissingHeader(t *testing.T) {
	upstream := &upstreamStub{status: http.StatusOK, body: `[]`}
	srv := setupGateway(t, upstream)

	rec := gatewayRequest(t, srv, http.MethodGet, "/bookings", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGateway_RejectsUnknownState(t *testing.T) {
	upstream := &upstreamStub{status: http.StatusOK, body: `[]`}
	srv := setupGateway(t, upstream)

	rec := gatewayRequest(t, srv, http.MethodGet, "/bookings?state=SOMETIMES", "42", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Unknown state: SOMETIMES", body.Message)
}

func TestGateway_RejectsBadPagination(t *testing.T) {
	upstream := &upstreamStub{status: http.StatusOK, body: `[]`}
	srv := setupGateway(t, upstream)

	rec := gatewayRequest(t, srv, http.MethodGet, "/items?from=-1&size=5", "42", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = gatewayRequest(t, srv, http.MethodGet, "/items?from=0&size=0", "42", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGateway_RejectsPastBookingStart(t *testing.T) {
	upstream := &upstreamStub{status: http.StatusOK, body: `{}`}
	srv := setupGateway(t, upstream)

	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	future := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	body := []byte(`{"itemId":1,"start":"` + past + `","end":"` + future + `"}`)

	rec := gatewayRequest(t, srv, http.MethodPost, "/bookings", "42", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rental start time in past", resp.Message)
}

func TestGateway_RateLimitExceeded(t *testing.T) {
	upstream := &upstreamStub{status: http.StatusOK, body: `[]`}
	ts := httptest.NewServer(upstream.handler())
	t.Cleanup(ts.Close)

	logger := zerolog.Nop()
	cfg := config.GatewayConfig{
		ServerURL: ts.URL,
		RateLimit: config.RateLimitConfig{Requests: 2, WindowSeconds: 60},
	}
	limiter := NewMemoryRateLimiter(2, time.Minute)
	srv := NewServer(cfg, NewServerClient(cfg.ServerURL), limiter, &logger)

	for i := 0; i < 2; i++ {
		rec := gatewayRequest(t, srv, http.MethodGet, "/users", "42", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := gatewayRequest(t, srv, http.MethodGet, "/users", "42", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGateway_UpstreamDown(t *testing.T) {
	logger := zerolog.Nop()
	cfg := config.GatewayConfig{
		ServerURL: "http://127.0.0.1:1", // nothing listens here
		RateLimit: config.RateLimitConfig{Requests: 100, WindowSeconds: 60},
	}
	limiter := NewMemoryRateLimiter(100, time.Minute)
	srv := NewServer(cfg, NewServerClient(cfg.ServerURL), limiter, &logger)

	rec := gatewayRequest(t, srv, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
