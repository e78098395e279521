package session

import (
	"context"
	"errors"
	"fmt"
	"scout-client/internal/api"
	"scout-client/internal/config"
	"scout-client/internal/constants"
	"scout-client/internal/domain"
	"scout-client/internal/storage"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRejected = errors.New("rejected")

type fakeAuth struct {
	loginResp   *domain.AuthResponse
	refreshResp *domain.AuthResponse
	refreshErr  error
	me          *domain.User
	meErr       error

	refreshCalls atomic.Int32
	meCalls      atomic.Int32
	gate         chan struct{}
	entered      chan struct{}

	enterOnce sync.Once
	mu        sync.Mutex
	tokens    []string
}

func (f *fakeAuth) Login(context.Context, string, string) (*domain.AuthResponse, error) {
	if f.loginResp == nil {
		return nil, errRejected
	}
	return f.loginResp, nil
}

func (f *fakeAuth) Register(context.Context, domain.RegisterRequest) (*domain.AuthResponse, error) {
	return f.Login(context.Background(), "", "")
}

func (f *fakeAuth) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error) {
	f.refreshCalls.Add(1)
	f.mu.Lock()
	f.tokens = append(f.tokens, refreshToken)
	f.mu.Unlock()
	if f.entered != nil {
		f.enterOnce.Do(func() { close(f.entered) })
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.refreshResp, f.refreshErr
}

func (f *fakeAuth) refreshTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

func (f *fakeAuth) Me(context.Context, string) (*domain.User, error) {
	f.meCalls.Add(1)
	return f.me, f.meErr
}

func scout() *domain.User {
	return &domain.User{ID: "u1", Email: "scout@example.com", Role: domain.RoleScout}
}

func newStore(t *testing.T, auth *fakeAuth) (*Store, *storage.MemoryCookieJar, *storage.MemoryLocalStore) {
	t.Helper()
	jar := storage.NewMemoryCookieJar()
	legacy := storage.NewMemoryLocalStore()
	p := storage.NewTokenPersistence(jar, legacy, &config.Config{Environment: config.EnvDevelopment}, zerolog.Nop())
	return New(auth, p, zerolog.Nop()), jar, legacy
}

func TestLogin_SetsSessionAndPersists(t *testing.T) {
	auth := &fakeAuth{loginResp: &domain.AuthResponse{User: scout(), AccessToken: "a1", RefreshToken: "r1"}}
	s, jar, _ := newStore(t, auth)

	var snaps []Snapshot
	s.Subscribe(func(sn Snapshot) { snaps = append(snaps, sn) })

	require.NoError(t, s.Login(context.Background(), "scout@example.com", "pw"))

	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.Initialized())
	assert.True(t, s.IsScout())
	assert.False(t, s.IsAdmin())
	assert.Equal(t, "a1", s.AccessToken())

	v, ok, _ := jar.Get(context.Background(), constants.AccessTokenKey)
	assert.True(t, ok)
	assert.Equal(t, "a1", v)

	require.NotEmpty(t, snaps)
	assert.True(t, snaps[len(snaps)-1].Authenticated)
}

func TestLogin_Failure(t *testing.T) {
	s, _, _ := newStore(t, &fakeAuth{})

	err := s.Login(context.Background(), "x@example.com", "bad")
	assert.ErrorIs(t, err, errRejected)
	assert.False(t, s.IsAuthenticated())
}

func TestRefresh_WithoutTokenMakesNoCall(t *testing.T) {
	auth := &fakeAuth{}
	s, _, _ := newStore(t, auth)

	assert.False(t, s.Refresh(context.Background()))
	assert.Equal(t, int32(0), auth.refreshCalls.Load())
}

func TestRefresh_ReplacesTokensKeepsUser(t *testing.T) {
	auth := &fakeAuth{
		loginResp:   &domain.AuthResponse{User: scout(), AccessToken: "a1", RefreshToken: "r1"},
		refreshResp: &domain.AuthResponse{AccessToken: "a2", RefreshToken: "r2"},
	}
	s, jar, _ := newStore(t, auth)
	require.NoError(t, s.Login(context.Background(), "", ""))

	assert.True(t, s.Refresh(context.Background()))
	assert.Equal(t, "a2", s.AccessToken())
	assert.True(t, s.IsAuthenticated(), "refresh responses without a user keep the current one")

	v, _, _ := jar.Get(context.Background(), constants.RefreshTokenKey)
	assert.Equal(t, "r2", v)
}

func TestRefresh_FailureClearsSession(t *testing.T) {
	auth := &fakeAuth{
		loginResp:  &domain.AuthResponse{User: scout(), AccessToken: "a1", RefreshToken: "r1"},
		refreshErr: errRejected,
	}
	s, _, _ := newStore(t, auth)
	require.NoError(t, s.Login(context.Background(), "", ""))

	assert.False(t, s.Refresh(context.Background()))
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.AccessToken())
	assert.Nil(t, s.User())
}

func TestRefresh_ConcurrentCallersShareOneRequest(t *testing.T) {
	auth := &fakeAuth{
		loginResp:   &domain.AuthResponse{User: scout(), AccessToken: "a1", RefreshToken: "r1"},
		refreshResp: &domain.AuthResponse{AccessToken: "a2", RefreshToken: "r2"},
	}
	s, _, _ := newStore(t, auth)
	require.NoError(t, s.Login(context.Background(), "", ""))

	auth.gate = make(chan struct{})
	auth.entered = make(chan struct{})

	const callers = 5
	results := make([]bool, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Refresh(context.Background())
		}(i)
	}

	<-auth.entered
	time.Sleep(100 * time.Millisecond)
	close(auth.gate)
	wg.Wait()

	assert.Equal(t, int32(1), auth.refreshCalls.Load())
	for _, ok := range results {
		assert.True(t, ok)
	}
}

func TestRefresh_CancelledLeaderDoesNotFailJoinedCaller(t *testing.T) {
	auth := &fakeAuth{
		loginResp:   &domain.AuthResponse{User: scout(), AccessToken: "a1", RefreshToken: "r1"},
		refreshResp: &domain.AuthResponse{AccessToken: "a2", RefreshToken: "r2"},
	}
	s, _, _ := newStore(t, auth)
	require.NoError(t, s.Login(context.Background(), "", ""))

	auth.gate = make(chan struct{})
	auth.entered = make(chan struct{})

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	var leader, joined bool
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		leader = s.Refresh(leaderCtx)
	}()
	<-auth.entered
	go func() {
		defer wg.Done()
		joined = s.Refresh(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)
	cancelLeader()
	time.Sleep(50 * time.Millisecond)
	close(auth.gate)
	wg.Wait()

	assert.Equal(t, int32(1), auth.refreshCalls.Load())
	assert.True(t, joined)
	assert.True(t, leader)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "a2", s.AccessToken())
}

func TestRefresh_UsesLatestRefreshToken(t *testing.T) {
	auth := &fakeAuth{
		loginResp:   &domain.AuthResponse{User: scout(), AccessToken: "a1", RefreshToken: "r1"},
		refreshResp: &domain.AuthResponse{AccessToken: "a2", RefreshToken: "r2"},
	}
	s, _, _ := newStore(t, auth)
	require.NoError(t, s.Login(context.Background(), "", ""))

	require.True(t, s.Refresh(context.Background()))
	auth.refreshResp = &domain.AuthResponse{AccessToken: "a3", RefreshToken: "r3"}
	require.True(t, s.Refresh(context.Background()))

	assert.Equal(t, []string{"r1", "r2"}, auth.refreshTokens())
	assert.Equal(t, "a3", s.AccessToken())
}

func TestRefresh_UnsuccessfulEnvelopeKeepsSession(t *testing.T) {
	auth := &fakeAuth{
		loginResp:  &domain.AuthResponse{User: scout(), AccessToken: "a1", RefreshToken: "r1"},
		refreshErr: fmt.Errorf("refresh: %w", &api.Error{Kind: api.KindServer, StatusCode: 200, Err: api.ErrUnsuccessful}),
	}
	s, _, _ := newStore(t, auth)
	require.NoError(t, s.Login(context.Background(), "", ""))

	assert.False(t, s.Refresh(context.Background()))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "a1", s.AccessToken())
}

func TestRestore_FromCookies(t *testing.T) {
	auth := &fakeAuth{me: scout()}
	s, jar, _ := newStore(t, auth)
	ctx := context.Background()
	require.NoError(t, jar.Set(ctx, storage.Cookie{Name: constants.AccessTokenKey, Value: "a1", Expires: time.Now().Add(time.Hour)}))
	require.NoError(t, jar.Set(ctx, storage.Cookie{Name: constants.RefreshTokenKey, Value: "r1", Expires: time.Now().Add(time.Hour)}))

	s.Restore(ctx)

	assert.True(t, s.Initialized())
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "a1", s.AccessToken())

	s.Restore(ctx)
	assert.Equal(t, int32(1), auth.meCalls.Load(), "restore runs once")
}

func TestRestore_MigratesLegacy(t *testing.T) {
	auth := &fakeAuth{me: scout()}
	s, jar, legacy := newStore(t, auth)
	ctx := context.Background()
	require.NoError(t, legacy.Set(ctx, constants.AccessTokenKey, "legacy-a"))
	require.NoError(t, legacy.Set(ctx, constants.RefreshTokenKey, "legacy-r"))

	s.Restore(ctx)

	assert.True(t, s.IsAuthenticated())
	v, ok, _ := jar.Get(ctx, constants.AccessTokenKey)
	assert.True(t, ok)
	assert.Equal(t, "legacy-a", v)
	_, ok, _ = legacy.Get(ctx, constants.AccessTokenKey)
	assert.False(t, ok)
}

func TestRestore_UserFetchFailureClears(t *testing.T) {
	auth := &fakeAuth{meErr: errRejected}
	s, jar, _ := newStore(t, auth)
	ctx := context.Background()
	require.NoError(t, jar.Set(ctx, storage.Cookie{Name: constants.AccessTokenKey, Value: "a1", Expires: time.Now().Add(time.Hour)}))

	s.Restore(ctx)

	assert.True(t, s.Initialized())
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.AccessToken())
}

func TestRestore_NothingStored(t *testing.T) {
	auth := &fakeAuth{}
	s, _, _ := newStore(t, auth)

	s.Restore(context.Background())

	assert.True(t, s.Initialized())
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, int32(0), auth.meCalls.Load())
}

func TestLogout_ClearsEverything(t *testing.T) {
	auth := &fakeAuth{loginResp: &domain.AuthResponse{User: scout(), AccessToken: "a1", RefreshToken: "r1"}}
	s, jar, legacy := newStore(t, auth)
	ctx := context.Background()
	require.NoError(t, s.Login(ctx, "", ""))
	require.NoError(t, legacy.Set(ctx, constants.AccessTokenKey, "legacy"))

	s.Logout(ctx)

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.AccessToken())
	assert.Nil(t, s.User())
	_, ok, _ := jar.Get(ctx, constants.AccessTokenKey)
	assert.False(t, ok)
	_, ok, _ = jar.Get(ctx, constants.RefreshTokenKey)
	assert.False(t, ok)
	_, ok, _ = legacy.Get(ctx, constants.AccessTokenKey)
	assert.False(t, ok)
}

func TestSnapshot_IsACopy(t *testing.T) {
	auth := &fakeAuth{loginResp: &domain.AuthResponse{User: scout(), AccessToken: "a1", RefreshToken: "r1"}}
	s, _, _ := newStore(t, auth)
	require.NoError(t, s.Login(context.Background(), "", ""))

	snap := s.Snapshot()
	snap.User.Role = domain.RoleAdmin
	assert.False(t, s.IsAdmin())
}
