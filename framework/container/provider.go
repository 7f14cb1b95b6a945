package container

// ── Provider ──────────────────────────────────────────────────────────────────

// Provider groups the registration of related modules, so an application
// can pull in a whole feature with one Container.Use call.
//
//	type SiteProvider struct{ Dir string }
//
//	func (p *SiteProvider) Register(c *container.Container) error {
//	    return c.Register("$site", []any{"$router", func(r *routing.Router) *Site {
//	        return &Site{dir: p.Dir, router: r}
//	    }})
//	}
type Provider interface {
	Register(c *Container) error
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(c *Container) error

func (f ProviderFunc) Register(c *Container) error { return f(c) }
