package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shareit/internal/models"
)

// ServerClient forwards validated requests to the core REST server and relays
// whatever status and body come back.
type ServerClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewServerClient(baseURL string) *ServerClient {
	return &ServerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Forward replays the incoming request against the core server, preserving
// the method, path, query, body and identity headers.
func (c *ServerClient) Forward(ctx context.Context, r *http.Request, body io.Reader) (*http.Response, error) {
	target := c.baseURL + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID := r.Header.Get(models.HeaderUserID); userID != "" {
		req.Header.Set(models.HeaderUserID, userID)
	}
	if requestID := r.Header.Get(models.HeaderRequestID); requestID != "" {
		req.Header.Set(models.HeaderRequestID, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	return resp, nil
}
