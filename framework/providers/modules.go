package providers

import (
	"net/http"

	"github.com/christux/bambo/framework/container"
	gohttp "github.com/christux/bambo/framework/http"
	"github.com/christux/bambo/framework/routing"
	"github.com/christux/bambo/framework/validation"
)

// InspectorPrefix is the mount point of the introspection endpoints.
const InspectorPrefix = "/_bambo"

// ModulesProvider registers the introspection endpoints.
//
// Modules:
//   - "$modules" → *Inspector, needs "$injector" (startup module)
//
// Routes:
//
//	GET /_bambo/modules[?state=instantiated|pending]
//	GET /_bambo/modules/{name}
//	GET /_bambo/routes
type ModulesProvider struct{}

func (p *ModulesProvider) Register(c *container.Container) error {
	return c.Register(ModulesName, container.Inject(NewInspector, container.InjectorName))
}

// Inspector reports the state of the registry over HTTP.
type Inspector struct {
	registry *container.Registry
	router   *routing.Router
}

func NewInspector(r *container.Registry) *Inspector {
	return &Inspector{registry: r}
}

func (i *Inspector) OnBuild() any {
	return []any{RouterName, func(r *routing.Router) {
		i.router = r
		r.Prefix(InspectorPrefix, func(api *routing.Router) {
			api.Get("/modules", i.list)
			api.Get("/modules/{name}", i.show)
			api.Get("/routes", i.routes)
		})
	}}
}

func (i *Inspector) list(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	v := validation.Make(req.QueryMap(), validation.Rules{"state": "nullable|in:instantiated,pending"})
	if v.Fails() {
		res.ValidationError(v.Errors())
		return
	}

	state := req.Query("state")
	out := make([]container.ModuleInfo, 0)
	for _, m := range i.registry.Modules() {
		switch {
		case state == "instantiated" && !m.Instantiated,
			state == "pending" && m.Instantiated:
			continue
		}
		out = append(out, m)
	}
	res.Success(out)
}

func (i *Inspector) show(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	name := req.RouteParam("name")
	for _, m := range i.registry.Modules() {
		if m.Name == name {
			res.Success(m)
			return
		}
	}
	res.NotFound("Module " + name + " is not registered.")
}

func (i *Inspector) routes(w http.ResponseWriter, r *http.Request) {
	gohttp.NewResponse(w).Success(i.router.Routes())
}
