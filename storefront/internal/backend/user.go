package backend

import (
	"context"
	"net/http"
	"net/url"

	"food-storefront/storefront/internal/domain"
)

type userResponse struct {
	User *domain.User `json:"user"`
}

func (c *Client) Signup(ctx context.Context, in domain.SignupInput) (*domain.User, string, error) {
	var resp userResponse
	msg, err := c.sendJSON(ctx, http.MethodPost, "/user/signup", in, &resp)
	return resp.User, msg, err
}

func (c *Client) Login(ctx context.Context, in domain.LoginInput) (*domain.User, string, error) {
	var resp userResponse
	msg, err := c.sendJSON(ctx, http.MethodPost, "/user/login", in, &resp)
	return resp.User, msg, err
}

func (c *Client) VerifyEmail(ctx context.Context, code string) (*domain.User, string, error) {
	var resp userResponse
	body := map[string]string{"verificationCode": code}
	msg, err := c.sendJSON(ctx, http.MethodPost, "/user/verify-email", body, &resp)
	return resp.User, msg, err
}

func (c *Client) CheckAuth(ctx context.Context) (*domain.User, error) {
	var resp userResponse
	_, err := c.getJSON(ctx, "/user/check-auth", &resp)
	return resp.User, err
}

func (c *Client) Logout(ctx context.Context) (string, error) {
	return c.sendJSON(ctx, http.MethodPost, "/user/logout", nil, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	return c.sendJSON(ctx, http.MethodPost, "/user/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	body := map[string]string{"newPassword": newPassword}
	return c.sendJSON(ctx, http.MethodPost, "/user/reset-password/"+url.PathEscape(token), body, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, in domain.UpdateProfileInput) (*domain.User, string, error) {
	var resp userResponse
	msg, err := c.sendJSON(ctx, http.MethodPut, "/user/profile/update", in, &resp)
	return resp.User, msg, err
}
