// Package identity resolves bearer tokens against the hosted auth service.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const userEndpoint = "/auth/v1/user"

// User is the identity behind a valid token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Client calls the hosted auth HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New builds a client for the given auth endpoint.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Lookup resolves a bearer token to its user. Any non-200 response is an
// authentication failure.
func (c *Client) Lookup(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+userEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build user lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user lookup request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user lookup returned status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user lookup response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("user lookup returned no user id")
	}

	return &user, nil
}
