// Package api is a thin HTTP client for the auth service, used by the
// terminal client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// TokenPair is the login/refresh response body.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Identity is the validate response body.
type Identity struct {
	UserName string `json:"username"`
	Role     string `json:"role"`
}

// RegisterRequest mirrors the register endpoint body.
type RegisterRequest struct {
	Email           string `json:"email"`
	UserName        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Phone           string `json:"phone"`
	Role            string `json:"role"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func (c *Client) Register(ctx context.Context, req *RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", req, nil)
}

func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	var pair TokenPair
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *Client) Validate(ctx context.Context, accessToken string) (*Identity, error) {
	var identity Identity
	if err := c.do(ctx, http.MethodGet, "/auth/validate-user", accessToken, nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (c *Client) UpdatePassword(ctx context.Context, accessToken, oldPassword, newPassword, confirmPassword string) error {
	body := map[string]string{
		"old_password":     oldPassword,
		"new_password":     newPassword,
		"confirm_password": confirmPassword,
	}
	return c.do(ctx, http.MethodPost, "/auth/password-update", accessToken, body, nil)
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && er.Error != "" {
			if len(er.Fields) > 0 {
				return fmt.Errorf("%s: %v", er.Error, er.Fields)
			}
			return fmt.Errorf("%s", er.Error)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}
