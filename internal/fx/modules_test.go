package fx

import (
	"path/filepath"
	"scout-client/internal/config"
	"scout-client/internal/guard"
	"scout-client/internal/mockapi"
	"scout-client/internal/search"
	"scout-client/internal/session"
	"scout-client/internal/subscription"
	"scout-client/internal/ui"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestModuleGraph(t *testing.T) {
	t.Setenv("SCOUT_SESSION_DB", filepath.Join(t.TempDir(), "session.db"))
	t.Setenv("SCOUT_API_BASE", "http://127.0.0.1:1/api/v1")

	require.NoError(t, fx.ValidateApp(Module, fx.Invoke(func(
		*session.Store,
		*search.State,
		*subscription.Store,
		*guard.Guards,
		*ui.ModalStack,
		*ui.ToastQueue,
		*ui.ConfirmDialog,
	) {
	})))
}

func TestMockAPIModule(t *testing.T) {
	var cfg *config.Config
	var srv *mockapi.Server
	app := fx.New(MockAPIModule, fx.NopLogger, fx.Populate(&cfg, &srv))
	require.NoError(t, app.Err())

	assert.NotEmpty(t, srv.Players())
	assert.NotEmpty(t, cfg.MockJWTSecret)
}
