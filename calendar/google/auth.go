package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"github.com/guilherme-santos/invoicez/internal"
)

// CalendarListReadonlyScope lets the client read the account's calendar list.
const CalendarListReadonlyScope = "https://www.googleapis.com/auth/calendar.calendarlist.readonly"

// Scopes are requested by the interactive authorization flow.
var Scopes = []string{
	calendar.CalendarEventsScope,
	CalendarListReadonlyScope,
}

// ErrAuthorization means the interactive flow did not produce a token.
var ErrAuthorization = errors.New("google: authorization failed")

// RefreshError is a failed attempt to refresh an expired token. It never
// leaves CredentialStore, which falls back to the interactive flow instead.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return "google: refreshing token: " + e.Err.Error()
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// InvalidGrant reports whether the refresh token was revoked or expired.
func (e *RefreshError) InvalidGrant() bool {
	var rErr *oauth2.RetrieveError
	return errors.As(e.Err, &rErr) && rErr.ErrorCode == "invalid_grant"
}

// TokenStorage persists the token between runs. Load returns nil and no error
// when nothing was stored yet.
type TokenStorage interface {
	Load() (*oauth2.Token, error)
	Save(*oauth2.Token) error
}

// Authorizer obtains a brand new token with the operator's consent.
type Authorizer interface {
	Authorize(context.Context) (*oauth2.Token, error)
}

// OAuthConfigFromFile parses the OAuth client file downloaded from the Google
// Cloud console.
func OAuthConfigFromFile(filename string) (*oauth2.Config, error) {
	credJSON, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("google: reading credentials file: %w", err)
	}
	oauthCfg, err := google.ConfigFromJSON(credJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("google: parsing credentials file: %w", err)
	}
	return oauthCfg, nil
}

// NewOAuthConfig builds the configuration from a client id and secret.
func NewOAuthConfig(clientID, clientSecret string) (*oauth2.Config, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("google: client id and client secret are required")
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}, nil
}

// CredentialStore hands out a usable token: the stored one while it is valid,
// a refreshed one once it expired, or a new one from the interactive flow.
type CredentialStore struct {
	oauthCfg   *oauth2.Config
	storage    TokenStorage
	authorizer Authorizer
	logger     *slog.Logger
}

func NewCredentialStore(oauthCfg *oauth2.Config, storage TokenStorage, authorizer Authorizer, logger *slog.Logger) *CredentialStore {
	if logger == nil {
		logger = internal.DiscardLogger()
	}
	return &CredentialStore{
		oauthCfg:   oauthCfg,
		storage:    storage,
		authorizer: authorizer,
		logger:     logger,
	}
}

// Obtain returns a valid token. A refreshed or newly issued token is saved
// before being returned; a failed authorization leaves the storage untouched.
func (s CredentialStore) Obtain(ctx context.Context) (*oauth2.Token, error) {
	tok, err := s.storage.Load()
	if err != nil {
		s.logger.Warn("Ignoring unreadable credentials", internal.Err(err))
		tok = nil
	}
	if tok != nil && tok.Valid() {
		s.logger.Debug("Using stored credentials")
		return tok, nil
	}

	var fresh *oauth2.Token
	if tok != nil && tok.RefreshToken != "" {
		fresh, err = s.refresh(ctx, tok)
		if err != nil {
			var rErr *RefreshError
			invalidGrant := errors.As(err, &rErr) && rErr.InvalidGrant()
			s.logger.Warn("Could not refresh auth token", internal.Err(err), slog.Bool("invalid_grant", invalidGrant))
			fresh = nil
		}
	}

	if fresh == nil {
		s.logger.Info("Starting interactive authorization")
		fresh, err = s.authorizer.Authorize(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAuthorization, err)
		}
		if fresh == nil {
			return nil, fmt.Errorf("%w: no token issued", ErrAuthorization)
		}
	}

	if err := s.storage.Save(fresh); err != nil {
		return nil, fmt.Errorf("google: saving credentials: %w", err)
	}
	return fresh, nil
}

func (s CredentialStore) refresh(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error) {
	s.logger.Debug("Refreshing expired token")

	expired := *tok
	fresh, err := s.oauthCfg.TokenSource(ctx, &expired).Token()
	if err != nil {
		return nil, &RefreshError{Err: err}
	}
	return fresh, nil
}

// TokenSource returns a source starting from tok that saves every token it
// refreshes, so a token renewed during a long run survives it.
func (s CredentialStore) TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource {
	ts := &savingTokenSource{
		base:    s.oauthCfg.TokenSource(ctx, tok),
		storage: s.storage,
		logger:  s.logger,
	}
	if tok != nil {
		ts.last = tok.AccessToken
	}
	return ts
}

type savingTokenSource struct {
	base    oauth2.TokenSource
	storage TokenStorage
	logger  *slog.Logger

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, &RefreshError{Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.AccessToken == s.last {
		return tok, nil
	}
	if err := s.storage.Save(tok); err != nil {
		s.logger.Warn("Unable to save refreshed credentials", internal.Err(err))
		return tok, nil
	}
	s.logger.Debug("Saved refreshed credentials")
	s.last = tok.AccessToken
	return tok, nil
}
