package google

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/guilherme-santos/invoicez/internal"
)

// ErrAuthorizationDenied is returned when the operator refuses consent.
var ErrAuthorizationDenied = errors.New("google: authorization denied")

// LocalServerFlow is the installed-app authorization: it listens for the
// redirect on a local port, asks the operator to open the consent page and
// exchanges the returned code for a token.
type LocalServerFlow struct {
	oauthCfg *oauth2.Config
	addr     string
	output   io.Writer
	logger   *slog.Logger

	// OpenBrowser is called with the consent URL once the listener is up.
	// Failures are ignored, the URL is printed anyway.
	OpenBrowser func(url string) error
}

var _ Authorizer = (*LocalServerFlow)(nil)

// NewLocalServerFlow listens on 127.0.0.1:port, port 0 picks a free one.
func NewLocalServerFlow(oauthCfg *oauth2.Config, port int, output io.Writer, logger *slog.Logger) *LocalServerFlow {
	if output == nil {
		output = os.Stdout
	}
	if logger == nil {
		logger = internal.DiscardLogger()
	}
	return &LocalServerFlow{
		oauthCfg: oauthCfg,
		addr:     fmt.Sprintf("127.0.0.1:%d", port),
		output:   output,
		logger:   logger,
	}
}

type authResult struct {
	tok *oauth2.Token
	err error
}

func (f LocalServerFlow) Authorize(ctx context.Context) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", f.addr)
	if err != nil {
		return nil, fmt.Errorf("google: listening for the oauth callback: %w", err)
	}

	cfg := *f.oauthCfg
	cfg.RedirectURL = fmt.Sprintf("http://%s/", ln.Addr())

	state := "invoicez-" + uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce, oauth2.S256ChallengeOption(verifier))

	resultCh := make(chan authResult, 1)
	done := func(r authResult) {
		select {
		case resultCh <- r:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}

		query := req.URL.Query()
		if query.Get("state") != state {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "OAuth link is not valid.")
			done(authResult{err: errors.New("google: oauth link is not valid")})
			return
		}
		if reason := query.Get("error"); reason != "" {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprintln(w, "Authorization was not granted, you can close this window.")
			done(authResult{err: fmt.Errorf("%w: %s", ErrAuthorizationDenied, reason)})
			return
		}

		tok, err := cfg.Exchange(req.Context(), query.Get("code"), oauth2.VerifierOption(verifier))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "Unable to retrieve token:", err)
			done(authResult{err: fmt.Errorf("google: exchanging code: %w", err)})
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "All good, you can close this window!")
		done(authResult{tok: tok})
	})

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			done(authResult{err: fmt.Errorf("google: oauth callback server: %w", err)})
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	f.logger.Debug("Waiting for oauth callback", slog.String("redirect_url", cfg.RedirectURL))
	fmt.Fprintf(f.output, "\nGo to the following link in your browser\n%s\n\n", authURL)
	if f.OpenBrowser != nil {
		if err := f.OpenBrowser(authURL); err != nil {
			f.logger.Debug("Unable to open the browser", internal.Err(err))
		}
	}

	select {
	case r := <-resultCh:
		return r.tok, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// OpenBrowser opens url with the desktop's default handler.
func OpenBrowser(url string) error {
	var (
		cmd  string
		args []string
	)
	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}
	return exec.Command(cmd, args...).Start()
}
