package subscription

import (
	"context"
	"fmt"
	"scout-client/internal/domain"
	"scout-client/internal/session"
	"sync"

	"github.com/rs/zerolog"
)

type API interface {
	Plans(ctx context.Context) ([]domain.Plan, error)
	Me(ctx context.Context) (*domain.Subscription, error)
	Checkout(ctx context.Context, tier domain.Tier) (string, error)
	Cancel(ctx context.Context) error
}

type Session interface {
	IsAuthenticated() bool
	Subscribe(fn func(session.Snapshot)) func()
}

// Store caches the signed-in user's subscription. The cache is dropped on
// Reset, on logout and after checkout or cancel.
type Store struct {
	mu      sync.RWMutex
	sub     *domain.Subscription
	loaded  bool
	loading bool

	api    API
	sess   Session
	logger zerolog.Logger
}

func New(api API, sess Session, logger zerolog.Logger) *Store {
	s := &Store{api: api, sess: sess, logger: logger}
	sess.Subscribe(func(snap session.Snapshot) {
		if !snap.Authenticated {
			s.Reset()
		}
	})
	return s
}

// Fetch reloads the subscription. It does nothing for anonymous sessions.
func (s *Store) Fetch(ctx context.Context) error {
	if !s.sess.IsAuthenticated() {
		return nil
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	sub, err := s.api.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to fetch subscription")
		return fmt.Errorf("failed to fetch subscription: %w", err)
	}
	s.sub = sub
	s.loaded = true
	s.logger.Debug().Str("tier", string(sub.Tier)).Str("status", string(sub.Status)).Msg("subscription loaded")
	return nil
}

// Ensure fetches the subscription unless it is already cached.
func (s *Store) Ensure(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Fetch(ctx)
}

func (s *Store) Plans(ctx context.Context) ([]domain.Plan, error) {
	return s.api.Plans(ctx)
}

// CreateCheckoutSession returns the payment page URL for tier.
func (s *Store) CreateCheckoutSession(ctx context.Context, tier domain.Tier) (string, error) {
	if !tier.Valid() {
		return "", fmt.Errorf("unknown subscription tier %q", tier)
	}
	url, err := s.api.Checkout(ctx, tier)
	if err != nil {
		s.logger.Warn().Err(err).Str("tier", string(tier)).Msg("failed to create checkout session")
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	if url == "" {
		return "", fmt.Errorf("checkout session for %s returned no url", tier)
	}
	s.Reset()
	return url, nil
}

func (s *Store) Cancel(ctx context.Context) error {
	if err := s.api.Cancel(ctx); err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	s.Reset()
	return nil
}

func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sub = nil
	s.loaded = false
	s.loading = false
}

func (s *Store) Subscription() *domain.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sub == nil {
		return nil
	}
	sub := *s.sub
	return &sub
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Tier is the current tier, free when nothing is loaded.
func (s *Store) Tier() domain.Tier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sub == nil || s.sub.Tier == "" {
		return domain.TierFree
	}
	return s.sub.Tier
}

func (s *Store) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sub != nil && s.sub.Status == domain.StatusActive
}

func (s *Store) HasTier(required domain.Tier) bool {
	return s.Tier().Satisfies(required)
}

func (s *Store) CanAccessFullMatches() bool { return s.HasTier(domain.TierScout) }
func (s *Store) CanSavePlayers() bool       { return s.HasTier(domain.TierScout) }
func (s *Store) CanRequestContact() bool    { return s.HasTier(domain.TierPro) }
func (s *Store) CanContactPlayers() bool    { return s.HasTier(domain.TierPro) }
