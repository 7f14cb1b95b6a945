package providers

import (
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/christux/bambo/framework/config"
	"github.com/christux/bambo/framework/container"
	"github.com/christux/bambo/framework/devserver"
	"github.com/christux/bambo/framework/routing"
)

// LiveReloadPath is where browsers connect for reload notifications.
const LiveReloadPath = "/livereload"

// SiteProvider registers the static site served from Server.DistDir.
//
// Modules:
//   - "$site" → *Site, needs "$config" and "$logger" (startup module)
type SiteProvider struct{}

func (p *SiteProvider) Register(c *container.Container) error {
	return c.Register(SiteName, []any{ConfigName, LoggerName, NewSite})
}

// Site serves the generated pages.
type Site struct {
	dir    string
	page   string
	reload bool
	log    *zap.Logger
}

// NewSite creates the site module from the server configuration.
func NewSite(cfg *config.Config, log *zap.Logger) *Site {
	return &Site{
		dir:    cfg.Server.DistDir,
		page:   cfg.Server.PageName,
		reload: cfg.Server.LiveReload,
		log:    log.Named("site"),
	}
}

// Dir returns the served directory.
func (s *Site) Dir() string { return s.dir }

// OnBuild mounts the site on "$router". The main page answers "/", every
// other file is served as is. With live reload on, HTML responses carry the
// reload script.
func (s *Site) OnBuild() any {
	return []any{RouterName, func(r *routing.Router) {
		if info, err := os.Stat(s.dir); err != nil || !info.IsDir() {
			s.log.Warn("dist directory missing, pages will 404", zap.String("dir", s.dir))
		}

		r.Group(func(g *routing.Router) {
			if s.reload {
				g.Middleware(devserver.InjectReload(LiveReloadPath))
			}
			g.Get("/", s.servePage)
			g.Static("/", s.dir)
		})

		s.log.Info("site mounted",
			zap.String("dir", s.dir),
			zap.String("page", s.page),
			zap.Bool("live_reload", s.reload),
		)
	}}
}

func (s *Site) servePage(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.dir, s.page))
}
