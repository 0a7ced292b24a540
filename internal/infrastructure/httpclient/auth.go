package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mobicorp/storefront/internal/core/domain"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The API expects an OAuth2
// password form, so the email travels as "username".
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var out tokenResponse
	err := c.do(ctx, request{
		endpoint: "auth.login",
		method:   http.MethodPost,
		path:     "/api/auth/login",
		form:     form,
		authCall: true,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("login: response carried no access token")
	}
	return out.AccessToken, nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, request{
		endpoint: "auth.register",
		method:   http.MethodPost,
		path:     "/api/auth/register",
		json:     reg,
		authCall: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the user that owns token.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, fmt.Errorf("me: %w", domain.ErrNotAuthenticated)
	}
	var out domain.User
	err := c.do(ctx, request{
		endpoint: "auth.me",
		method:   http.MethodGet,
		path:     "/api/auth/me",
		token:    token,
		authCall: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
