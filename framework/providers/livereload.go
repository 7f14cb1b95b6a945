package providers

import (
	"context"

	"go.uber.org/zap"

	"github.com/christux/bambo/framework/config"
	"github.com/christux/bambo/framework/container"
	"github.com/christux/bambo/framework/devserver"
	"github.com/christux/bambo/framework/routing"
)

// LiveReloadProvider registers the development reload loop.
//
// Modules:
//   - "$livereload" → *LiveReload, needs "$config" and "$logger"
//     (startup module when Enabled)
type LiveReloadProvider struct {
	Enabled bool
}

func (p *LiveReloadProvider) Register(c *container.Container) error {
	return c.Register(LiveReloadName, []any{ConfigName, LoggerName, NewLiveReload}, p.Enabled)
}

// LiveReload watches Server.WatchDirs and tells connected browsers to
// reload after each burst of changes.
type LiveReload struct {
	hub     *devserver.Hub
	watcher *devserver.Watcher
	log     *zap.Logger
	done    chan struct{}
}

// NewLiveReload creates the hub and starts watching the configured paths.
func NewLiveReload(cfg *config.Config, log *zap.Logger) (*LiveReload, error) {
	log = log.Named("livereload")

	w, err := devserver.NewWatcher(cfg.Server.WatchDirs, cfg.Server.ReloadDebounce, log)
	if err != nil {
		return nil, err
	}
	return &LiveReload{
		hub:     devserver.NewHub(log),
		watcher: w,
		log:     log,
		done:    make(chan struct{}),
	}, nil
}

// Hub returns the websocket hub.
func (l *LiveReload) Hub() *devserver.Hub { return l.hub }

// Done is closed once the watch loop has stopped.
func (l *LiveReload) Done() <-chan struct{} { return l.done }

// OnBuild mounts the websocket endpoint.
func (l *LiveReload) OnBuild() any {
	return container.Inject(func(r *routing.Router) {
		r.Handle(LiveReloadPath, l.hub)
	}, RouterName)
}

// OnFinal starts the watch loop; it stops with the boot context.
func (l *LiveReload) OnFinal() any {
	return container.Inject(func(ctx context.Context) {
		l.log.Info("watching", zap.Strings("paths", l.watcher.Paths()))

		go func() {
			defer close(l.done)
			defer l.hub.Close()

			if err := l.watcher.Run(ctx, l.changed); err != nil {
				l.log.Error("watch loop stopped", zap.Error(err))
			}
		}()
	}, container.ContextName)
}

func (l *LiveReload) changed(path string) {
	l.log.Info("change detected", zap.String("path", path))
	l.hub.Reload()
}
