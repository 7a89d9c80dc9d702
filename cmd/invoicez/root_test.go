package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/invoicez/file"
	"github.com/guilherme-santos/invoicez/internal"
	"github.com/guilherme-santos/invoicez/internal/sqlite"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()

	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestStatusWithoutSelection(t *testing.T) {
	out, err := run(t, "status", "--dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No selected calendar")
}

func TestStatusAfterSync(t *testing.T) {
	dir := t.TempDir()
	paths := internal.NewPaths(dir)
	require.NoError(t, file.NewSelection(paths.SelectedCalendar()).Write("work"))

	out, err := run(t, "status", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Selected calendar: work")
	assert.Contains(t, out, "Never synced.")

	storage, err := sqlite.Open(paths.Database())
	require.NoError(t, err)
	require.NoError(t, storage.SaveLastSync(context.Background(), &internal.SyncRecord{
		CalendarID: "work",
		SyncToken:  "S1",
		Events:     4,
		SyncedAt:   time.Now(),
	}))
	require.NoError(t, storage.Close())

	out, err = run(t, "status", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "4 event(s), sync token S1")
}

func TestUnknownArguments(t *testing.T) {
	_, err := run(t, "sync", "extra", "--dir", t.TempDir())
	assert.Error(t, err)
}

func newTestApp(t *testing.T, opts *options) *app {
	t.Helper()
	return newApp(&cobra.Command{}, opts)
}

func TestOAuthConfigFromSecretsFile(t *testing.T) {
	dir := t.TempDir()
	secrets := `{"installed":{"client_id":"file-id","client_secret":"file-secret",
		"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token",
		"redirect_uris":["http://localhost"]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gcalendar-secrets.json"), []byte(secrets), 0o600))

	cfg, err := newTestApp(t, &options{dir: dir}).oauthConfig()
	require.NoError(t, err)
	assert.Equal(t, "file-id", cfg.ClientID)
}

func TestOAuthConfigFromDotEnv(t *testing.T) {
	unsetEnv(t, envClientID, envClientSecret)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("GOOGLE_CLIENT_ID=env-id\nGOOGLE_CLIENT_SECRET=env-secret\n"), 0o600))

	cfg, err := newTestApp(t, &options{dir: dir}).oauthConfig()
	require.NoError(t, err)
	assert.Equal(t, "env-id", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
}

func TestOAuthConfigEnvironmentWins(t *testing.T) {
	t.Setenv(envClientID, "process-id")
	t.Setenv(envClientSecret, "process-secret")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("GOOGLE_CLIENT_ID=env-id\nGOOGLE_CLIENT_SECRET=env-secret\n"), 0o600))

	cfg, err := newTestApp(t, &options{dir: dir}).oauthConfig()
	require.NoError(t, err)
	assert.Equal(t, "process-id", cfg.ClientID)
}

func TestOAuthConfigMissing(t *testing.T) {
	unsetEnv(t, envClientID, envClientSecret)

	_, err := newTestApp(t, &options{dir: t.TempDir()}).oauthConfig()
	assert.ErrorContains(t, err, "no OAuth client configured")
}

func TestOAuthConfigExplicitSecretsMustExist(t *testing.T) {
	t.Setenv(envClientID, "process-id")
	t.Setenv(envClientSecret, "process-secret")

	_, err := newTestApp(t, &options{dir: t.TempDir(), secrets: filepath.Join(t.TempDir(), "nope.json")}).oauthConfig()
	assert.Error(t, err)
}
