package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/christux/bambo/framework/config"
	"github.com/christux/bambo/framework/container"
	"github.com/christux/bambo/framework/providers"
	"github.com/christux/bambo/framework/routing"
)

// ShutdownTimeout bounds the graceful stop of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// Application is the top-level module container of a site server. It embeds
// the Container so user code can call app.Register and app.Use directly.
type Application struct {
	*container.Container
	cfg *config.Config
	log *zap.Logger
}

// New creates the application with the framework providers registered,
// followed by extra.
//
//	application, err := app.New(cfg, log, &PagesProvider{})
//	err = application.Run(ctx)
func New(cfg *config.Config, log *zap.Logger, extra ...container.Provider) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if log == nil {
		log = zap.NewNop()
	}

	a := &Application{cfg: cfg, log: log}
	a.Container = container.New(
		container.WithMaxDepth(cfg.Container.MaxDepth),
		container.OnStateChange(a.logState),
	)

	if err := a.Use(providers.Defaults(cfg, log)...); err != nil {
		return nil, err
	}
	if err := a.Use(extra...); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Application) logState(from, to container.State) {
	a.log.Debug("boot state", zap.Stringer("from", from), zap.Stringer("to", to))
	switch to {
	case container.StateBooted:
		a.log.Info("modules booted", zap.Int("modules", len(a.Injector().Names())))
	case container.StateFailed:
		a.log.Error("boot failed", zap.Stringer("after", from))
	}
}

// Config returns the application configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger { return a.log }

// Router resolves the "$router" module.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container, providers.RouterName)
}

// ── Serving ──────────────────────────────────────────────────────────────────

// Run listens on Server.Addr() and serves until ctx is done.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("app: listen: %w", err)
	}
	return a.Serve(ctx, ln)
}

// Serve boots the modules once ln is bound, serves the router on ln and
// shuts down gracefully when ctx is done. ln is closed on return.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	ready := make(chan struct{})
	booted := make(chan error, 1)
	go func() { booted <- a.BootOn(ctx, ready) }()

	// the listener is bound: the server is up
	close(ready)

	if err := <-booted; err != nil {
		ln.Close()
		return err
	}

	router, err := a.Router()
	if err != nil {
		ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(a.log),
	}

	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	a.log.Info("serving",
		zap.String("app", a.cfg.App.Name),
		zap.String("env", a.cfg.App.Env),
		zap.String("url", "http://"+ln.Addr().String()),
	)

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		a.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("app: shutdown: %w", err)
		}
		return nil
	}
}

// ── Environment ──────────────────────────────────────────────────────────────

func (a *Application) Environment() string { return a.cfg.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.cfg.App.Debug }
func (a *Application) Version() string     { return a.cfg.App.Version }
