package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"scout-client/internal/api"
	"scout-client/internal/config"
	"scout-client/internal/constants"
	fxmodules "scout-client/internal/fx"
	"scout-client/internal/guard"
	"scout-client/internal/navigation"
	"scout-client/internal/search"
	"scout-client/internal/session"
	"scout-client/internal/subscription"
	"scout-client/internal/ui"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var (
	verbose   bool
	apiBase   string
	sessionDB string
	timeout   time.Duration
	assumeYes bool
)

var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Talent-discovery marketplace client",
	Long: `scout signs in to the marketplace API, searches youth players and
manages saved players, contact requests and the subscription plan.

The session is kept in a local SQLite database between runs.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "API base URL (or set SCOUT_API_BASE)")
	rootCmd.PersistentFlags().StringVar(&sessionDB, "session-db", "", "Session database path (or set SCOUT_SESSION_DB)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Overall command timeout")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to confirmation prompts")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, forgotPasswordCmd)
	rootCmd.AddCommand(searchCmd, playerCmd)
	rootCmd.AddCommand(plansCmd, subscriptionCmd, checkoutCmd, cancelCmd)
	rootCmd.AddCommand(savedCmd, contactCmd, contactsCmd)
	rootCmd.AddCommand(validateCmd, mockAPICmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// deps is everything a command may touch.
type deps struct {
	fx.In

	Config  *config.Config
	Logger  zerolog.Logger
	Session *session.Store
	Search  *search.State
	Subs    *subscription.Store
	Guards  *guard.Guards
	Nav     *navigation.Recorder
	Auth    *api.AuthService
	Players *api.PlayersService
	Account *api.AccountService
	Modals  *ui.ModalStack
	Toasts  *ui.ToastQueue
	Confirm *ui.ConfirmDialog
}

var errRedirected = errors.New("not allowed")

func overrideConfig(cfg *config.Config) (*config.Config, error) {
	if apiBase != "" {
		cfg.APIBase = strings.TrimRight(apiBase, "/")
	}
	if sessionDB != "" {
		cfg.SessionDBPath = sessionDB
	}
	return cfg, cfg.Validate()
}

func overrideLogger(l zerolog.Logger) zerolog.Logger {
	if verbose {
		return l.Level(zerolog.DebugLevel)
	}
	return l
}

// runApp builds the client graph, restores the session and runs fn.
func runApp(cmd *cobra.Command, fn func(ctx context.Context, d deps) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var d deps
	app := fx.New(
		fxmodules.Module,
		fx.NopLogger,
		fx.Decorate(overrideConfig, overrideLogger),
		fx.Invoke(func(in deps) { d = in }),
	)
	if err := app.Err(); err != nil {
		return fmt.Errorf("failed to build client: %w", err)
	}
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start client: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			d.Logger.Warn().Err(err).Msg("failed to stop client")
		}
	}()

	out := cmd.ErrOrStderr()
	defer d.Toasts.Subscribe(printToasts(out))()
	defer d.Nav.Subscribe(func(dest navigation.Destination) {
		switch dest.Path {
		case navigation.LoginPath:
			fmt.Fprintln(out, "Sign in required: run `scout login`.")
		case navigation.PricingPath:
			fmt.Fprintln(out, "Your plan does not include this. Run `scout plans` to compare plans.")
		default:
			fmt.Fprintf(out, "Redirected to %s\n", dest)
		}
	})()

	d.Session.Restore(ctx)

	err := fn(ctx, d)
	if ctx.Err() != nil {
		d.Modals.CloseAll()
	}
	return err
}

// enforce runs g and follows its redirect.
func enforce(ctx context.Context, d deps, g guard.Guard, route guard.Route) error {
	if guard.Enforce(ctx, g, route, d.Nav) {
		return nil
	}
	return errRedirected
}
