package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/guilherme-santos/invoicez/calendar/google"
	"github.com/guilherme-santos/invoicez/file"
	"github.com/guilherme-santos/invoicez/internal"
	"github.com/guilherme-santos/invoicez/internal/selector"
	"github.com/guilherme-santos/invoicez/internal/sqlite"
)

const (
	envClientID     = "GOOGLE_CLIENT_ID"
	envClientSecret = "GOOGLE_CLIENT_SECRET"
)

// app wires the components of a single command run.
type app struct {
	opts   *options
	paths  internal.Paths
	input  io.Reader
	output io.Writer
	logger *slog.Logger

	selection *file.Selection
}

func newApp(cmd *cobra.Command, opts *options) *app {
	paths := internal.NewPaths(opts.dir)
	return &app{
		opts:      opts,
		paths:     paths,
		input:     cmd.InOrStdin(),
		output:    cmd.OutOrStdout(),
		logger:    internal.NewLogger(cmd.ErrOrStderr(), opts.verbose),
		selection: file.NewSelection(paths.SelectedCalendar()),
	}
}

// oauthConfig reads the OAuth client file, or the client id and secret from
// the environment and <dir>/.env when there is no such file.
func (a *app) oauthConfig() (*oauth2.Config, error) {
	secrets := a.opts.secrets
	if secrets == "" {
		secrets = a.paths.Secrets()
	}
	_, err := os.Stat(secrets)
	if err == nil {
		return google.OAuthConfigFromFile(secrets)
	}
	if a.opts.secrets != "" || !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to read OAuth client file: %w", err)
	}

	err = godotenv.Load(a.paths.Env())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load %s: %w", a.paths.Env(), err)
	}
	cfg, err := google.NewOAuthConfig(os.Getenv(envClientID), os.Getenv(envClientSecret))
	if err != nil {
		return nil, fmt.Errorf("no OAuth client configured: put it in %s or set %s and %s: %w",
			secrets, envClientID, envClientSecret, err)
	}
	return cfg, nil
}

func (a *app) provider(ctx context.Context) (*google.Client, error) {
	cfg, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}

	flow := google.NewLocalServerFlow(cfg, a.opts.port, a.output, a.logger)
	flow.OpenBrowser = google.OpenBrowser
	store := google.NewCredentialStore(cfg, file.NewCredentials(a.paths.Credentials()), flow, a.logger)

	tok, err := store.Obtain(ctx)
	if err != nil {
		return nil, err
	}
	return google.NewClient(ctx, store.TokenSource(ctx, tok), a.logger)
}

func (a *app) selector(lister selector.CalendarLister) *selector.Selector {
	return selector.New(a.output, a.logger, lister, a.selection, selector.NewTerminalPrompter(a.input, a.output))
}

func (a *app) storage() (*sqlite.Storage, error) {
	return sqlite.Open(a.paths.Database())
}
