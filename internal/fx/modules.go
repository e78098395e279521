package fx

import (
	"context"
	"database/sql"
	"scout-client/internal/api"
	"scout-client/internal/config"
	"scout-client/internal/constants"
	"scout-client/internal/database"
	"scout-client/internal/guard"
	"scout-client/internal/logger"
	"scout-client/internal/mockapi"
	"scout-client/internal/navigation"
	"scout-client/internal/search"
	"scout-client/internal/session"
	"scout-client/internal/storage"
	"scout-client/internal/subscription"
	"scout-client/internal/ui"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideCookieJar(db *sql.DB, logger zerolog.Logger) *storage.SQLCookieJar {
	return storage.NewSQLCookieJar(db, logger)
}

func ProvideStores(jar *storage.SQLCookieJar, db *sql.DB) (storage.CookieJar, storage.LocalStore) {
	return jar, storage.NewSQLLocalStore(db)
}

func ProvidePersistence(p *storage.TokenPersistence) session.Persistence {
	return p
}

func ProvideAuthAPI(s *api.AuthService) session.AuthAPI {
	return s
}

func ProvideNavigator(r *navigation.Recorder) navigation.Navigator {
	return r
}

func ProvideCredentials(s *session.Store) api.Credentials {
	return s
}

func ProvidePlayerLister(s *api.PlayersService) search.PlayerLister {
	return s
}

func ProvideSubscriptionAPI(s *api.SubscriptionService) subscription.API {
	return s
}

func ProvideSubscriptionSession(s *session.Store) subscription.Session {
	return s
}

func ProvideGuardSession(s *session.Store) guard.Session {
	return s
}

func ProvideTierSource(s *subscription.Store) guard.TierSource {
	return s
}

// registerDatabase purges expired cookies on start and closes the
// database on stop.
func registerDatabase(lc fx.Lifecycle, db *sql.DB, jar *storage.SQLCookieJar, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
			defer cancel()
			if n, err := jar.PurgeExpired(ctx); err != nil {
				logger.Warn().Err(err).Msg("failed to purge expired cookies")
			} else if n > 0 {
				logger.Debug().Int64("purged", n).Msg("expired cookies removed")
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			return nil
		},
	})
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// persistence
	fx.Provide(ProvideCookieJar),
	fx.Provide(ProvideStores),
	fx.Provide(storage.NewTokenPersistence),
	fx.Provide(ProvidePersistence),
	// transport + session
	fx.Provide(api.NewTransport),
	fx.Provide(api.NewAuthService),
	fx.Provide(ProvideAuthAPI),
	fx.Provide(session.New),
	fx.Provide(ProvideCredentials),
	fx.Provide(navigation.NewRecorder),
	fx.Provide(ProvideNavigator),
	fx.Provide(api.NewGateway),
	// endpoint services
	fx.Provide(api.NewPlayersService),
	fx.Provide(api.NewAcademiesService),
	fx.Provide(api.NewSubscriptionService),
	fx.Provide(api.NewAccountService),
	// state
	fx.Provide(ProvidePlayerLister),
	fx.Provide(search.New),
	fx.Provide(ProvideSubscriptionAPI),
	fx.Provide(ProvideSubscriptionSession),
	fx.Provide(subscription.New),
	fx.Provide(ProvideGuardSession),
	fx.Provide(ProvideTierSource),
	fx.Provide(guard.New),
	// presentation
	fx.Provide(ui.NewModalStack),
	fx.Provide(ui.NewToastQueue),
	fx.Provide(ui.NewConfirmDialog),

	fx.Invoke(registerDatabase),
)

func ProvideMockServer(cfg *config.Config, logger zerolog.Logger) (*mockapi.Server, error) {
	srv := mockapi.New(mockapi.Options{
		JWTSecret:  cfg.MockJWTSecret,
		AccessTTL:  constants.MockAccessTokenTTL,
		RefreshTTL: constants.MockRefreshTokenTTL,
	}, logger)
	if err := srv.Seed(); err != nil {
		return nil, err
	}
	return srv, nil
}

// MockAPIModule runs nothing but the in-memory backend.
var MockAPIModule = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(ProvideMockServer),
)
