package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Login signs in and stores the returned token and user id in the session.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/login/", nil, body, &out, noAuth); err != nil {
		return LoginResult{}, err
	}
	if err := c.session.SetToken(out.Token); err != nil {
		return LoginResult{}, err
	}
	if err := c.session.SetUserID(out.UserID); err != nil {
		return LoginResult{}, err
	}
	return out, nil
}

// Register creates an account. The server mails a verification link.
func (c *Client) Register(ctx context.Context, username, email, password string) (User, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var out struct {
		User User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/register_user/", nil, body, &out, noAuth)
	return out.User, err
}

// VerifyEmail redeems the verification token from the registration mail. The
// one-shot token travels in the Authorization header like a session token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.doWithToken(ctx, http.MethodGet, "/verify_email/", nil, nil, nil, token)
}

// Logout revokes the server session and clears the local one.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/logout/", nil, nil, nil, withAuth); err != nil {
		return err
	}
	return c.session.Clear()
}

// ListUsers fetches every user (staff only).
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/usuarios/", nil, nil, &out, withAuth); err != nil {
		return nil, err
	}
	if out == nil {
		out = []User{}
	}
	return out, nil
}

// SearchUsers searches users by column and value (staff only).
func (c *Client) SearchUsers(ctx context.Context, criteria, value string) ([]User, error) {
	query := url.Values{}
	query.Set("criteria", criteria)
	query.Set("value", value)

	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/usuarios/search_users/", query, nil, &out, withAuth); err != nil {
		return nil, err
	}
	if out == nil {
		out = []User{}
	}
	return out, nil
}

// UpdateUser updates a profile; the target id travels in the body.
func (c *Client) UpdateUser(ctx context.Context, id int64, username, email string) (User, error) {
	body := map[string]any{"id": id, "username": username, "email": email}
	var out User
	err := c.do(ctx, http.MethodPut, "/api/usuarios/update_user/", nil, body, &out, withAuth)
	return out, err
}

// DeleteUser removes a user (staff only).
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/usuarios/%d/", id), nil, nil, nil, withAuth)
}
