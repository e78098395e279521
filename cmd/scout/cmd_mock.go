package main

import (
	"context"
	"fmt"
	"net/http"
	"scout-client/internal/config"
	"scout-client/internal/constants"
	fxmodules "scout-client/internal/fx"
	"scout-client/internal/mockapi"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Run the in-memory backend for local development",
	Long: fmt.Sprintf(`Serve a seeded in-memory backend under %s.

Demo accounts: %s (pro tier) and %s (admin), password %q.`,
		mockapi.BasePath, mockapi.DemoEmail, mockapi.AdminEmail, mockapi.DemoPassword),
	RunE: func(cmd *cobra.Command, args []string) error {
		fx.New(
			fxmodules.MockAPIModule,
			fx.Decorate(overrideLogger),
			fx.Invoke(runMockServer),
		).Run()
		return nil
	},
}

func runMockServer(lc fx.Lifecycle, mock *mockapi.Server, cfg *config.Config, logger zerolog.Logger) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.MockAPIPort),
		Handler: mock.Handler(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Str("base_path", mockapi.BasePath).Msg("mock api starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("mock api failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down mock api")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("mock api shutdown failed")
				return err
			}
			logger.Info().Msg("mock api stopped gracefully")
			return nil
		},
	})
}
