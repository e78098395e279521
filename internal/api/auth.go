package api

import (
	"context"
	"net/http"
	"scout-client/internal/domain"
)

// AuthService calls the credential endpoints. It uses the bare transport:
// a 401 here means bad credentials, not an expired session.
type AuthService struct {
	transport *Transport
}

func NewAuthService(transport *Transport) *AuthService {
	return &AuthService{transport: transport}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	return callEnvelope[domain.AuthResponse](ctx, s.transport, Request{Method: http.MethodPost, Endpoint: "/auth/login", Body: body}, "")
}

func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	return callEnvelope[domain.AuthResponse](ctx, s.transport, Request{Method: http.MethodPost, Endpoint: "/auth/register", Body: req}, "")
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error) {
	body := map[string]string{"refresh_token": refreshToken}
	return callEnvelope[domain.AuthResponse](ctx, s.transport, Request{Method: http.MethodPost, Endpoint: "/auth/refresh", Body: body}, "")
}

func (s *AuthService) Me(ctx context.Context, accessToken string) (*domain.User, error) {
	return callEnvelope[domain.User](ctx, s.transport, Request{Method: http.MethodGet, Endpoint: "/auth/me", RequiresAuth: true}, accessToken)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	_, err := callEnvelope[struct{}](ctx, s.transport, Request{Method: http.MethodPost, Endpoint: "/auth/forgot-password", Body: map[string]string{"email": email}}, "")
	return err
}

func callEnvelope[T any](ctx context.Context, t *Transport, r Request, token string) (*T, error) {
	var env Envelope[T]
	data, err := unwrap(&env, t.Do(ctx, r, token, &env))
	if err != nil {
		return nil, err
	}
	return &data, nil
}
