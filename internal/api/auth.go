package api

import (
	"context"

	"github.com/rapheephat/hiewhub-tui/internal/model"
)

// AuthService wraps the session-issuance and profile endpoints.
type AuthService struct {
	client *Client
}

// NewAuthService creates an AuthService on top of the shared client.
func NewAuthService(c *Client) *AuthService {
	return &AuthService{client: c}
}

// loginResponse is the wire shape of a successful login.
type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. The caller is
// responsible for persisting the token in the session store.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := s.client.PostPublic(ctx, "/auth/login", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates a new account. It does not sign the user in.
func (s *AuthService) Register(ctx context.Context, firstname, lastname, email, password string) error {
	body := map[string]string{
		"firstname": firstname,
		"lastname":  lastname,
		"email":     email,
		"password":  password,
	}
	return s.client.PostPublic(ctx, "/auth/register", body, nil)
}

// GetProfile fetches the authenticated user and their addresses.
func (s *AuthService) GetProfile(ctx context.Context) (*model.Profile, error) {
	var resp model.Profile
	if err := s.client.Get(ctx, "/api/profile", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RequestPasswordReset asks the server to mail a reset link.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return s.client.PostPublic(ctx, "/api/users/forgot-password", body, nil)
}

// ConfirmPasswordReset completes a reset with the mailed token.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return s.client.PostPublic(ctx, "/api/users/reset-password", body, nil)
}
