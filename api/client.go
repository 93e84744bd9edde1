// Package api is the HTTP client for the remote booking service. Every
// authenticated call attaches the current bearer token, failures come back
// classified, and no call is retried automatically.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"homecall/utils"

	"golang.org/x/time/rate"
)

// TokenFunc supplies the current bearer token. It returns "" when the owning
// session is logged out, in which case requests go out unauthenticated.
type TokenFunc func() string

// Client issues REST requests against the booking service.
type Client struct {
	baseURL  string
	http     *http.Client
	token    TokenFunc
	deviceID string
	limiter  *rate.Limiter
}

// NewClient builds a client for baseURL. maxPerMin bounds outbound request
// volume; requests wait on the limiter rather than failing.
func NewClient(baseURL string, timeout time.Duration, maxPerMin int, token TokenFunc, deviceID string) *Client {
	if maxPerMin <= 0 {
		maxPerMin = 100
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		token:    token,
		deviceID: deviceID,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMin)), maxPerMin),
	}
}

// errorPayload is the server's message envelope on 4xx/5xx responses.
type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one request. body (when non-nil) is sent as JSON; the response
// body is decoded into out (when non-nil). Non-2xx responses and transport
// failures return classified errors.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return utils.ClassifyTransportError(err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.deviceID != "" {
		req.Header.Set("X-Device-ID", c.deviceID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return utils.ClassifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return utils.ClassifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload errorPayload
		_ = json.Unmarshal(data, &payload)
		message := payload.Message
		if message == "" {
			message = payload.Error
		}
		return utils.ClassifyHTTPError(resp.StatusCode, message)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
