package api

import (
	"context"
	"net/http"
	"net/url"
)

type RegisterData struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (c *Client) Register(ctx context.Context, data RegisterData) (*AuthResult, error) {
	var out AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Activate confirms the account behind an emailed activation token.
func (c *Client) Activate(ctx context.Context, token string) (*AuthResult, error) {
	var out AuthResult
	path := "/api/auth/activate/" + url.PathEscape(token)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (*AuthResult, error) {
	body := map[string]string{"email": email}
	var out AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/forgot-password", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword sets a new password using the token from the reset
// email. The caller must check the token is non-empty first; an empty
// token is an invalid link, not a request.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (*AuthResult, error) {
	body := map[string]string{"token": token, "password": password}
	var out AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/reset-password", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*ProfileResult, error) {
	var out ProfileResult
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
