// ABOUTME: Wires configuration, session storage, the API client and output for commands
// ABOUTME: One app per invocation; Close releases the session store

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/fatih/color"

	"github.com/2389/academyx-admin/internal/academyx"
	"github.com/2389/academyx-admin/internal/client"
	"github.com/2389/academyx-admin/internal/config"
	"github.com/2389/academyx-admin/internal/session"
	"github.com/2389/academyx-admin/internal/store"
)

const userAgent = "academyx-admin/1.0"

// globalOptions are the flags accepted before the command name.
type globalOptions struct {
	configPath string
	debug      bool
}

type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	kv      store.KV
	session *session.Manager
	client  *client.Client
	api     *academyx.API

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newApp(opts globalOptions, in io.Reader, out, errOut io.Writer) (*app, error) {
	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.debug {
		cfg.Logging.Level = "debug"
	}

	logger := setupLogger(cfg.Logging, errOut)
	slog.SetDefault(logger)

	kv, err := openStore(cfg.Session)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  logger.With("component", "cli"),
		kv:      kv,
		session: session.NewManager(kv),
		in:      in,
		out:     out,
		errOut:  errOut,
	}

	a.session.OnSessionExpired(func(reason error) {
		a.logger.Debug("session expired", "reason", reason)
		color.New(color.FgYellow).Fprintln(a.errOut, "Your session has expired. Run 'academyx-admin login' to sign in again.")
	})

	ua := cfg.API.UserAgent
	if ua == "" {
		ua = userAgent
	}
	c, err := client.New(cfg.API.BaseURL, a.session, client.Options{
		HTTPClient:      &http.Client{Timeout: cfg.API.Timeout},
		UserAgent:       ua,
		CoalesceRefresh: cfg.Session.CoalesceRefresh,
		Logger:          logger,
	})
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("creating client: %w", err)
	}
	a.client = c
	a.api = academyx.New(c, a.session)

	return a, nil
}

// openStore opens the configured session store, sealing it when a
// passphrase is set.
func openStore(cfg config.SessionConfig) (store.KV, error) {
	var kv store.KV
	switch cfg.Driver {
	case config.DriverMemory:
		kv = store.NewMemoryStore()
	default:
		s, err := store.Open(cfg.Driver, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening session store: %w", err)
		}
		kv = s
	}

	if cfg.Passphrase == "" {
		return kv, nil
	}
	sealed, err := store.NewSealed(context.Background(), kv, cfg.Passphrase)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("sealing session store: %w", err)
	}
	return sealed, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}

// requireLogin fails early when no credentials are stored.
func (a *app) requireLogin(ctx context.Context) error {
	if !a.session.LoggedIn(ctx) {
		return fmt.Errorf("not logged in (run 'academyx-admin login')")
	}
	return nil
}

// Output helpers. Colors are dropped automatically when out is not a terminal.

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	gray   = color.New(color.FgHiBlack)
	bold   = color.New(color.Bold)
)

func (a *app) title(s string) {
	fmt.Fprintln(a.out)
	cyan.Fprintln(a.out, "  "+s)
	cyan.Fprintln(a.out, "  "+dashes(s))
}

func (a *app) field(label, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(a.out, "  %-14s %s\n", label+":", value)
}

func (a *app) success(format string, args ...any) {
	green.Fprintf(a.out, "✓ "+format+"\n", args...)
}
