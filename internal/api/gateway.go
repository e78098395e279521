package api

import (
	"context"
	"net/http"
	"net/url"
	"scout-client/internal/navigation"

	"github.com/rs/zerolog"
)

// Credentials is the session as seen by the gateway.
type Credentials interface {
	AccessToken() string
	// Refresh obtains and stores a new token pair, reporting success.
	Refresh(ctx context.Context) bool
	Logout(ctx context.Context)
}

// Gateway sends authenticated requests. A 401 triggers one token refresh
// followed by one retry; if the refresh fails the session is logged out
// and the navigator is sent to the login page.
type Gateway struct {
	transport *Transport
	creds     Credentials
	nav       navigation.Navigator
	logger    zerolog.Logger
}

func NewGateway(transport *Transport, creds Credentials, nav navigation.Navigator, logger zerolog.Logger) *Gateway {
	return &Gateway{transport: transport, creds: creds, nav: nav, logger: logger}
}

func (g *Gateway) Call(ctx context.Context, r Request, out any) error {
	var token string
	if r.RequiresAuth {
		token = g.creds.AccessToken()
	}

	err := g.transport.Do(ctx, r, token, out)
	if !IsUnauthorized(err) {
		return err
	}

	g.logger.Debug().Str("endpoint", r.Endpoint).Msg("unauthorized, refreshing token")
	if g.creds.Refresh(ctx) {
		return g.transport.Do(ctx, r, g.creds.AccessToken(), out)
	}

	g.logger.Info().Str("endpoint", r.Endpoint).Msg("token refresh failed, logging out")
	g.creds.Logout(ctx)
	g.nav.Navigate(navigation.Login(""))
	return err
}

func Get[T any](ctx context.Context, g *Gateway, endpoint string, query url.Values, requiresAuth bool) (*T, error) {
	return do[T](ctx, g, Request{Method: http.MethodGet, Endpoint: endpoint, Query: query, RequiresAuth: requiresAuth})
}

func Post[T any](ctx context.Context, g *Gateway, endpoint string, body any, requiresAuth bool) (*T, error) {
	return do[T](ctx, g, Request{Method: http.MethodPost, Endpoint: endpoint, Body: body, RequiresAuth: requiresAuth})
}

func Put[T any](ctx context.Context, g *Gateway, endpoint string, body any, requiresAuth bool) (*T, error) {
	return do[T](ctx, g, Request{Method: http.MethodPut, Endpoint: endpoint, Body: body, RequiresAuth: requiresAuth})
}

func Patch[T any](ctx context.Context, g *Gateway, endpoint string, body any, requiresAuth bool) (*T, error) {
	return do[T](ctx, g, Request{Method: http.MethodPatch, Endpoint: endpoint, Body: body, RequiresAuth: requiresAuth})
}

func Delete[T any](ctx context.Context, g *Gateway, endpoint string, requiresAuth bool) (*T, error) {
	return do[T](ctx, g, Request{Method: http.MethodDelete, Endpoint: endpoint, RequiresAuth: requiresAuth})
}

func do[T any](ctx context.Context, g *Gateway, r Request) (*T, error) {
	var result T
	if err := g.Call(ctx, r, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
