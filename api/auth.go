package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"homecall/utils"
)

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// OwnerLogin authenticates a property owner. The returned raw body carries
// the identity fields inline and is persisted verbatim by the session store.
func (c *Client) OwnerLogin(ctx context.Context, phone, password string) (token string, raw []byte, err error) {
	raw, err = c.login(ctx, "/api/owners/auth/login", phone, password)
	if err != nil {
		return "", nil, err
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Token == "" {
		return "", nil, &utils.AuthError{Message: "invalid response from server"}
	}
	return payload.Token, raw, nil
}

// ProviderLogin authenticates a service provider and returns the issued token.
func (c *Client) ProviderLogin(ctx context.Context, phone, password string) (string, error) {
	raw, err := c.login(ctx, "/api/providers/auth/login", phone, password)
	if err != nil {
		return "", err
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Token == "" {
		return "", &utils.AuthError{Message: "invalid response from server"}
	}
	return payload.Token, nil
}

// login posts credentials and returns the raw success body. Login calls never
// carry a bearer token.
func (c *Client) login(ctx context.Context, path, phone, password string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, utils.ClassifyTransportError(err)
	}

	body, err := json.Marshal(loginRequest{Phone: phone, Password: password})
	if err != nil {
		return nil, fmt.Errorf("marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.deviceID != "" {
		req.Header.Set("X-Device-ID", c.deviceID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, utils.ClassifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, utils.ClassifyTransportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload errorPayload
		_ = json.Unmarshal(data, &payload)
		message := payload.Message
		if message == "" {
			message = payload.Error
		}
		if message == "" {
			message = "login failed, try again"
		}
		return nil, utils.ClassifyHTTPError(resp.StatusCode, message)
	}
	return data, nil
}
