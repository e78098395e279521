package session

import (
	"context"
	"errors"
	"fmt"
	"scout-client/internal/api"
	"scout-client/internal/constants"
	"scout-client/internal/domain"
	"scout-client/internal/observe"
	"scout-client/internal/storage"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.AuthResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error)
	Me(ctx context.Context, accessToken string) (*domain.User, error)
}

type Persistence interface {
	Load(ctx context.Context) (storage.Tokens, error)
	Save(ctx context.Context, t storage.Tokens) error
	Clear(ctx context.Context) error
}

// Snapshot is the observable view of a session.
type Snapshot struct {
	User          *domain.User
	Authenticated bool
	Initialized   bool
}

// Store owns the session: the token pair, the current user and whether
// the session has been restored from storage.
type Store struct {
	mu           sync.RWMutex
	user         *domain.User
	accessToken  string
	refreshToken string
	initialized  bool

	auth      AuthAPI
	persist   Persistence
	refreshes singleflight.Group
	restoreMu sync.Mutex
	hub       observe.Hub[Snapshot]
	logger    zerolog.Logger
}

func New(auth AuthAPI, persist Persistence, logger zerolog.Logger) *Store {
	return &Store{auth: auth, persist: persist, logger: logger}
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("login failed")
		return fmt.Errorf("login failed: %w", err)
	}
	s.setAuth(ctx, resp)
	s.logger.Info().Str("email", email).Msg("logged in")
	return nil
}

func (s *Store) Register(ctx context.Context, req domain.RegisterRequest) error {
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("registration failed")
		return fmt.Errorf("registration failed: %w", err)
	}
	s.setAuth(ctx, resp)
	s.logger.Info().Str("email", req.Email).Msg("registered")
	return nil
}

// Refresh exchanges the refresh token for a new pair. Without a refresh
// token it fails immediately. A rejected refresh clears the session; an
// unsuccessful envelope only reports false. Concurrent callers share a
// single in-flight refresh that is not tied to any one caller's context.
func (s *Store) Refresh(ctx context.Context) bool {
	if s.currentRefreshToken() == "" {
		s.logger.Debug().Msg("no refresh token, skipping refresh")
		return false
	}

	v, _, shared := s.refreshes.Do("refresh", func() (any, error) {
		refreshToken := s.currentRefreshToken()
		if refreshToken == "" {
			return false, nil
		}
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.ExternalAPITimeout)
		defer cancel()
		return s.doRefresh(flightCtx, refreshToken), nil
	})
	if shared {
		s.logger.Debug().Msg("joined in-flight token refresh")
	}
	return v.(bool)
}

func (s *Store) currentRefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

func (s *Store) doRefresh(ctx context.Context, refreshToken string) bool {
	resp, err := s.auth.Refresh(ctx, refreshToken)
	if errors.Is(err, api.ErrUnsuccessful) {
		s.logger.Warn().Err(err).Msg("token refresh not accepted")
		return false
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("token refresh failed")
		s.clearAuth()
		return false
	}
	s.setAuth(ctx, resp)
	s.logger.Debug().Msg("token refreshed")
	return true
}

// FetchCurrentUser loads the user for the held access token. Any failure
// clears the session.
func (s *Store) FetchCurrentUser(ctx context.Context) error {
	token := s.AccessToken()
	if token == "" {
		return nil
	}

	user, err := s.auth.Me(ctx, token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("fetch current user failed")
		s.clearAuth()
		return fmt.Errorf("failed to fetch current user: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.publish()
	return nil
}

// Restore loads persisted tokens and the matching user. It runs once;
// later calls return immediately.
func (s *Store) Restore(ctx context.Context) {
	s.restoreMu.Lock()
	defer s.restoreMu.Unlock()

	if s.Initialized() {
		return
	}

	tokens, err := s.persist.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load persisted tokens")
	}

	if tokens.Access != "" {
		s.mu.Lock()
		s.accessToken = tokens.Access
		s.refreshToken = tokens.Refresh
		s.mu.Unlock()

		_ = s.FetchCurrentUser(ctx)
	}

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()

	s.logger.Debug().Bool("authenticated", s.IsAuthenticated()).Msg("session restored")
	s.publish()
}

// Logout clears the session and every persisted token copy.
func (s *Store) Logout(ctx context.Context) {
	s.clearAuth()
	if err := s.persist.Clear(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear persisted tokens")
	}
	s.logger.Info().Msg("logged out")
}

func (s *Store) setAuth(ctx context.Context, resp *domain.AuthResponse) {
	s.mu.Lock()
	if resp.User != nil {
		s.user = resp.User
	}
	s.accessToken = resp.AccessToken
	s.refreshToken = resp.RefreshToken
	s.initialized = true
	s.mu.Unlock()

	if err := s.persist.Save(ctx, storage.Tokens{Access: resp.AccessToken, Refresh: resp.RefreshToken}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist tokens")
	}
	s.publish()
}

// clearAuth drops the in-memory session without touching storage.
func (s *Store) clearAuth() {
	s.mu.Lock()
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.mu.Unlock()
	s.publish()
}

func (s *Store) publish() {
	s.hub.Publish(s.Snapshot())
}

func (s *Store) Subscribe(fn func(Snapshot)) func() {
	return s.hub.Subscribe(fn)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var user *domain.User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return Snapshot{
		User:          user,
		Authenticated: s.accessToken != "" && s.user != nil,
		Initialized:   s.initialized,
	}
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken != "" && s.user != nil
}

func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Store) User() *domain.User {
	return s.Snapshot().User
}

func (s *Store) hasRole(role domain.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == role
}

func (s *Store) IsAdmin() bool  { return s.hasRole(domain.RoleAdmin) }
func (s *Store) IsScout() bool  { return s.hasRole(domain.RoleScout) }
func (s *Store) IsPlayer() bool { return s.hasRole(domain.RolePlayer) }
