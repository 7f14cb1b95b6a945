package providers

import (
	"go.uber.org/zap"

	"github.com/christux/bambo/framework/config"
	"github.com/christux/bambo/framework/container"
	"github.com/christux/bambo/framework/logging"
	"github.com/christux/bambo/framework/routing"
)

// Names of the framework modules.
const (
	ConfigName     = "$config"
	LoggerName     = "$logger"
	RouterName     = "$router"
	SiteName       = "$site"
	LiveReloadName = "$livereload"
	ModulesName    = "$modules"
)

// Defaults returns the framework providers in registration order for cfg.
// A nil log is built from cfg.Log on first use.
func Defaults(cfg *config.Config, log *zap.Logger) []container.Provider {
	return []container.Provider{
		&ConfigProvider{Config: cfg},
		&LoggerProvider{Logger: log},
		&RoutingProvider{},
		&SiteProvider{},
		&LiveReloadProvider{Enabled: cfg != nil && cfg.Server.LiveReload},
		&ModulesProvider{},
	}
}

// ── ConfigProvider ────────────────────────────────────────────────────────────

// ConfigProvider registers the application configuration.
//
// Modules:
//   - "$config" → *config.Config (not a startup module)
//
// When Config is nil the configuration is loaded from EnvFiles on first use.
type ConfigProvider struct {
	Config   *config.Config
	EnvFiles []string
}

func (p *ConfigProvider) Register(c *container.Container) error {
	cfg, files := p.Config, p.EnvFiles
	return c.Register(ConfigName, func() (*config.Config, error) {
		if cfg != nil {
			return cfg, nil
		}
		return config.Load(files...)
	}, false)
}

// ── LoggerProvider ────────────────────────────────────────────────────────────

// LoggerProvider registers the zap logger.
//
// Modules:
//   - "$logger" → *zap.Logger, needs "$config" (not a startup module)
type LoggerProvider struct {
	Logger *zap.Logger
}

func (p *LoggerProvider) Register(c *container.Container) error {
	preset := p.Logger
	return c.Register(LoggerName, []any{ConfigName, func(cfg *config.Config) (*zap.Logger, error) {
		if preset != nil {
			return preset, nil
		}
		return logging.New(cfg.Log)
	}}, false)
}

// ── RoutingProvider ───────────────────────────────────────────────────────────

// RoutingProvider registers the HTTP router that other modules mount on
// during the build phase.
//
// Modules:
//   - "$router" → *routing.Router, needs "$logger" (not a startup module)
type RoutingProvider struct{}

func (p *RoutingProvider) Register(c *container.Container) error {
	return c.Register(RouterName, container.Inject(routing.New, LoggerName), false)
}
