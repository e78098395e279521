package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"scout-client/internal/mockapi"
	"scout-client/internal/ui"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func startMock(t *testing.T) *mockapi.Server {
	t.Helper()
	mock := mockapi.New(mockapi.Options{JWTSecret: "cli-test", AccessTTL: time.Minute, RefreshTTL: time.Hour}, zerolog.Nop())
	require.NoError(t, mock.Seed())
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)

	apiBase = srv.URL + mockapi.BasePath
	sessionDB = filepath.Join(t.TempDir(), "session.db")
	t.Setenv("LOG_LEVEL", "error")
	t.Cleanup(func() {
		apiBase, sessionDB, assumeYes = "", "", false
	})
	return mock
}

func TestCLI_SessionSurvivesRuns(t *testing.T) {
	startMock(t)

	out, _, err := execute(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")

	_, stderr, err := execute(t, "login", "--email", mockapi.DemoEmail, "--password", mockapi.DemoPassword)
	require.NoError(t, err)
	assert.Contains(t, stderr, "[SUCCESS] Signed in")

	out, _, err = execute(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, mockapi.DemoEmail)

	_, _, err = execute(t, "logout")
	require.NoError(t, err)
	out, _, err = execute(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestCLI_SearchRequiresLogin(t *testing.T) {
	startMock(t)

	_, stderr, err := execute(t, "search", "--country", "Nigeria")
	assert.ErrorIs(t, err, errRedirected)
	assert.Contains(t, stderr, "Sign in required")

	_, _, err = execute(t, "login", "--email", mockapi.DemoEmail, "--password", mockapi.DemoPassword)
	require.NoError(t, err)

	out, _, err := execute(t, "search", "--country", "Nigeria")
	require.NoError(t, err)
	assert.Contains(t, out, "Adeyemi")
	assert.NotContains(t, out, "Mensah")
}

func TestCLI_TierGuard(t *testing.T) {
	mock := startMock(t)
	_, err := mock.AddUser("free@example.com", mockapi.DemoPassword, "Free", "Scout", "scout", "free")
	require.NoError(t, err)

	_, _, err = execute(t, "login", "--email", "free@example.com", "--password", mockapi.DemoPassword)
	require.NoError(t, err)

	playerID := mock.Players()[0].ID
	_, stderr, err := execute(t, "saved", "add", playerID)
	assert.ErrorIs(t, err, errRedirected)
	assert.Contains(t, stderr, "scout plans")

	out, _, err := execute(t, "checkout", "scout", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "https://checkout.example.com/pay/")

	_, stderr, err = execute(t, "saved", "add", playerID)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Player saved")
}

func TestCLI_Validate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"name":"Right to Dream","country":"Ghana"}`), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte(`{"first_name":"K","last_name":"Mensah","date_of_birth":"2007-03-14","position":"Striker","country":"Ghana"}`), 0o600))

	out, _, err := execute(t, "validate", "academy", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok")

	out, _, err = execute(t, "validate", "player", bad)
	assert.Error(t, err)
	assert.Contains(t, out, "first_name: First name must be at least 2 characters")
}

func TestPrintToastsOnce(t *testing.T) {
	var buf bytes.Buffer
	show := printToasts(&buf)
	toast := ui.Toast{ID: "abc1234", Type: ui.ToastError, Title: "Failed", Message: "offline"}

	show([]ui.Toast{toast})
	show([]ui.Toast{toast})

	assert.Equal(t, "[ERROR] Failed: offline\n", buf.String())
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "free", formatPrice(0))
	assert.Equal(t, "$29.00", formatPrice(2900))
	assert.Equal(t, "$9.99", formatPrice(999))
}
