package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/christux/bambo/framework/validation"
)

// FileEnv names the environment variable holding an optional YAML config file.
const FileEnv = "BAMBO_CONFIG"

// Config is the central typed configuration struct.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Container ContainerConfig `yaml:"container"`
	Log       LogConfig       `yaml:"log"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	Env     string `yaml:"env"` // local | production | testing
	Debug   bool   `yaml:"debug"`
	Version string `yaml:"version"`
}

type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	DistDir        string        `yaml:"dist_dir"`
	PageName       string        `yaml:"page_name"`
	LiveReload     bool          `yaml:"live_reload"`
	WatchDirs      []string      `yaml:"watch_dirs"`
	ReloadDebounce time.Duration `yaml:"reload_debounce"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

type ContainerConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // console | json
}

// Default returns the configuration used when no source overrides a value.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "Bambo",
			Env:     "local",
			Debug:   true,
			Version: "dev",
		},
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			DistDir:        "dist",
			PageName:       "index.html",
			LiveReload:     true,
			WatchDirs:      []string{"dist"},
			ReloadDebounce: 200 * time.Millisecond,
		},
		Container: ContainerConfig{MaxDepth: 1000},
		Log:       LogConfig{Level: "info", Format: "console"},
	}
}

// Load builds a Config from, in increasing priority: defaults, the YAML file
// named by BAMBO_CONFIG, the given .env files (".env" when none) and the
// process environment. The result is validated.
//
//	cfg, err := config.Load()
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	cfg := Default()

	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields whose variable is set. Malformed values are
// reported instead of silently ignored.
func (c *Config) applyEnv() error {
	var errs []string
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	parse := func(key string, set func(string) error) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			if err := set(v); err != nil {
				errs = append(errs, key+"="+strconv.Quote(v))
			}
		}
	}
	boolean := func(key string, dst *bool) {
		parse(key, func(v string) (err error) { *dst, err = strconv.ParseBool(v); return })
	}
	integer := func(key string, dst *int) {
		parse(key, func(v string) (err error) { *dst, err = strconv.Atoi(v); return })
	}

	str("APP_NAME", &c.App.Name)
	str("APP_ENV", &c.App.Env)
	boolean("APP_DEBUG", &c.App.Debug)
	str("APP_VERSION", &c.App.Version)

	str("SERVER_HOST", &c.Server.Host)
	integer("SERVER_PORT", &c.Server.Port)
	str("SERVER_DIST_DIR", &c.Server.DistDir)
	str("SERVER_PAGE_NAME", &c.Server.PageName)
	boolean("SERVER_LIVE_RELOAD", &c.Server.LiveReload)
	parse("SERVER_WATCH_DIRS", func(v string) error {
		c.Server.WatchDirs = splitList(v)
		return nil
	})
	parse("SERVER_RELOAD_DEBOUNCE", func(v string) (err error) {
		c.Server.ReloadDebounce, err = time.ParseDuration(v)
		return
	})

	integer("CONTAINER_MAX_DEPTH", &c.Container.MaxDepth)

	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	if len(errs) > 0 {
		return fmt.Errorf("config: malformed environment: %s", strings.Join(errs, ", "))
	}
	return nil
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	values := map[string]string{
		"app.name":               c.App.Name,
		"app.env":                c.App.Env,
		"server.host":            c.Server.Host,
		"server.port":            strconv.Itoa(c.Server.Port),
		"server.dist_dir":        c.Server.DistDir,
		"server.page_name":       c.Server.PageName,
		"server.reload_debounce": c.Server.ReloadDebounce.String(),
		"container.max_depth":    strconv.Itoa(c.Container.MaxDepth),
		"log.level":              c.Log.Level,
		"log.format":             c.Log.Format,
	}
	rules := validation.Rules{
		"app.name":               "required",
		"app.env":                "required|in:local,production,testing",
		"server.host":            "required",
		"server.port":            "required|integer|range:1,65535",
		"server.dist_dir":        "required",
		"server.page_name":       "required|max:255",
		"server.reload_debounce": "required|duration",
		"container.max_depth":    "required|integer|range:1,100000",
		"log.level":              "required|in:debug,info,warn,warning,error",
		"log.format":             "required|in:console,json",
	}
	if err := validation.Validate(values, rules); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
