package connection

import (
	"context"
	"io"
	"net/http"
)

// User is the account summary returned by the auth endpoints.
type User struct {
	Name string `json:"name"`
}

// AuthResponse is the body of a successful login or register call.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login calls POST /auth/login without credentials. The returned token is
// not stored; persisting it is the caller's decision.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	resp, err := Do[AuthResponse](ctx, c, "/auth/login", RequestOptions{
		Method:   http.MethodPost,
		Body:     loginRequest{Email: email, Password: password},
		SkipAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register calls POST /auth/register without credentials. Like Login, it
// does not store the returned token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	resp, err := Do[AuthResponse](ctx, c, "/auth/register", RequestOptions{
		Method:   http.MethodPost,
		Body:     registerRequest{Name: name, Email: email, Password: password},
		SkipAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout clears the local session, then tells the server on a best-effort
// basis. The server call's outcome is neither reported nor returned; the
// only error is a failure to clear the local store.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.store.Clear(); err != nil {
		return err
	}

	// The session is already gone, so a 401 here is not an expiry.
	_, resp, err := c.send(ctx, "/auth/logout", RequestOptions{Method: http.MethodPost})
	if err != nil {
		c.logger.WithContext(ctx).Debug("logout notification failed", "error", err)
		return nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithContext(ctx).Debug("logout notification failed", "status", resp.StatusCode)
	}
	return nil
}

// IsAuthenticated reports whether a session token is stored. No network.
func (c *Client) IsAuthenticated() bool {
	_, err := c.store.Get()
	return err == nil
}
