package subscription

import (
	"context"
	"errors"
	"scout-client/internal/domain"
	"scout-client/internal/observe"
	"scout-client/internal/session"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	authenticated bool
	hub           observe.Hub[session.Snapshot]
}

func (f *fakeSession) IsAuthenticated() bool { return f.authenticated }

func (f *fakeSession) Subscribe(fn func(session.Snapshot)) func() { return f.hub.Subscribe(fn) }

type fakeAPI struct {
	sub      *domain.Subscription
	err      error
	meCalls  int
	url      string
	canceled bool
}

func (f *fakeAPI) Plans(context.Context) ([]domain.Plan, error) {
	return []domain.Plan{{ID: "free", Tier: domain.TierFree}}, nil
}

func (f *fakeAPI) Me(context.Context) (*domain.Subscription, error) {
	f.meCalls++
	return f.sub, f.err
}

func (f *fakeAPI) Checkout(context.Context, domain.Tier) (string, error) { return f.url, nil }

func (f *fakeAPI) Cancel(context.Context) error {
	f.canceled = true
	return nil
}

func TestHasTier(t *testing.T) {
	api := &fakeAPI{sub: &domain.Subscription{Tier: domain.TierPro, Status: domain.StatusActive}}
	s := New(api, &fakeSession{authenticated: true}, zerolog.Nop())
	require.NoError(t, s.Fetch(context.Background()))

	assert.True(t, s.HasTier(domain.TierScout))
	assert.True(t, s.CanRequestContact())
	assert.False(t, s.HasTier(domain.TierClub))
	assert.True(t, s.IsActive())

	api.sub = &domain.Subscription{Tier: domain.TierFree}
	require.NoError(t, s.Fetch(context.Background()))
	assert.False(t, s.HasTier(domain.TierScout))
	assert.False(t, s.CanSavePlayers())
}

func TestTierDefaultsToFree(t *testing.T) {
	s := New(&fakeAPI{}, &fakeSession{}, zerolog.Nop())
	assert.Equal(t, domain.TierFree, s.Tier())
	assert.False(t, s.CanAccessFullMatches())
}

func TestFetch_AnonymousIsNoop(t *testing.T) {
	api := &fakeAPI{}
	s := New(api, &fakeSession{}, zerolog.Nop())

	require.NoError(t, s.Fetch(context.Background()))
	assert.Equal(t, 0, api.meCalls)
}

func TestEnsure_Caches(t *testing.T) {
	api := &fakeAPI{sub: &domain.Subscription{Tier: domain.TierScout}}
	s := New(api, &fakeSession{authenticated: true}, zerolog.Nop())

	require.NoError(t, s.Ensure(context.Background()))
	require.NoError(t, s.Ensure(context.Background()))
	assert.Equal(t, 1, api.meCalls)

	s.Reset()
	require.NoError(t, s.Ensure(context.Background()))
	assert.Equal(t, 2, api.meCalls)
}

func TestFetch_ErrorResetsLoading(t *testing.T) {
	api := &fakeAPI{err: errors.New("boom")}
	s := New(api, &fakeSession{authenticated: true}, zerolog.Nop())

	assert.Error(t, s.Fetch(context.Background()))
	assert.False(t, s.Loading())
	assert.Equal(t, domain.TierFree, s.Tier())
}

func TestLogoutResetsCache(t *testing.T) {
	sess := &fakeSession{authenticated: true}
	api := &fakeAPI{sub: &domain.Subscription{Tier: domain.TierClub}}
	s := New(api, sess, zerolog.Nop())
	require.NoError(t, s.Fetch(context.Background()))
	require.Equal(t, domain.TierClub, s.Tier())

	sess.authenticated = false
	sess.hub.Publish(session.Snapshot{})

	assert.Equal(t, domain.TierFree, s.Tier())
	assert.Nil(t, s.Subscription())
}

func TestCheckoutAndCancel(t *testing.T) {
	api := &fakeAPI{sub: &domain.Subscription{Tier: domain.TierScout}, url: "https://pay.example/1"}
	s := New(api, &fakeSession{authenticated: true}, zerolog.Nop())
	require.NoError(t, s.Ensure(context.Background()))

	url, err := s.CreateCheckoutSession(context.Background(), domain.TierPro)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/1", url)
	assert.Nil(t, s.Subscription(), "checkout invalidates the cached tier")

	_, err = s.CreateCheckoutSession(context.Background(), domain.Tier("gold"))
	assert.Error(t, err)

	require.NoError(t, s.Cancel(context.Background()))
	assert.True(t, api.canceled)
}
