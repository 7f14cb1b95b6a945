package routing_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/christux/bambo/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Verbs(t *testing.T) {
	r := routing.New(nil)
	r.Get("/hello", okHandler)
	r.Post("/hello", okHandler)
	r.Delete("/hello/{id}", okHandler)
	r.Handle("/any", http.HandlerFunc(okHandler))

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/hello"},
		{http.MethodPost, "/hello"},
		{http.MethodDelete, "/hello/1"},
		{http.MethodPut, "/any"},
		{http.MethodPatch, "/any"},
	} {
		assert.Equal(t, http.StatusOK, do(t, r, tc.method, tc.path).Code, tc.method+" "+tc.path)
	}

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, r, http.MethodPut, "/hello").Code)
}

func TestRouter_NotFound(t *testing.T) {
	r := routing.New(nil)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/not-registered").Code)
}

func TestRouter_Param(t *testing.T) {
	r := routing.New(nil)
	r.Get("/modules/{name}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(routing.Param(req, "name")))
	})

	rr := do(t, r, http.MethodGet, "/modules/$site")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "$site", rr.Body.String())
}

// ── Prefix / Group ───────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := routing.New(nil)
	r.Prefix("/_bambo", func(api *routing.Router) {
		api.Get("/modules", okHandler)
	})

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/_bambo/modules").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/modules").Code)
}

func TestRouter_GroupMiddlewareIsLocal(t *testing.T) {
	calls := 0
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			next.ServeHTTP(w, r)
		})
	}

	r := routing.New(nil)
	r.Group(func(g *routing.Router) {
		g.Middleware(mw)
		g.Get("/inside", okHandler)
	})
	r.Get("/outside", okHandler)

	do(t, r, http.MethodGet, "/inside")
	do(t, r, http.MethodGet, "/outside")
	assert.Equal(t, 1, calls)
}

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New(nil)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodGet, "/boom").Code)
}

// ── Request logging ──────────────────────────────────────────────────────────

func TestRouter_LogsRequests(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := routing.New(zap.New(core))
	r.Get("/hello", okHandler)

	do(t, r, http.MethodGet, "/hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/hello", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.EqualValues(t, 2, fields["bytes"])
	assert.NotEmpty(t, fields["request_id"])
}

// ── Static files ─────────────────────────────────────────────────────────────

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html><body>home</body></html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "site.css"), []byte("body{}"), 0o644))
	return dir
}

func TestRouter_StaticRoot(t *testing.T) {
	r := routing.New(nil)
	r.Get("/api", okHandler)
	r.Static("/", writeSite(t))

	rr := do(t, r, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "home")

	assert.Equal(t, "body{}", do(t, r, http.MethodGet, "/css/site.css").Body.String())
	assert.Equal(t, "ok", do(t, r, http.MethodGet, "/api").Body.String())
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/missing.html").Code)
}

func TestRouter_StaticPrefixWithMiddleware(t *testing.T) {
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Static", "1")
			next.ServeHTTP(w, r)
		})
	}

	r := routing.New(nil)
	r.Static("/public/", writeSite(t), tag)

	rr := do(t, r, http.MethodGet, "/public/css/site.css")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("X-Static"))

	rr = do(t, r, http.MethodGet, "/public")
	assert.Equal(t, http.StatusMovedPermanently, rr.Code)
	assert.Equal(t, "/public/", rr.Header().Get("Location"))
}

// ── Introspection ────────────────────────────────────────────────────────────

func TestRouter_Routes(t *testing.T) {
	r := routing.New(nil)
	r.Get("/a", okHandler)
	r.Prefix("/_bambo", func(api *routing.Router) {
		api.Get("/modules", okHandler)
	})

	assert.ElementsMatch(t, []routing.Route{
		{Method: http.MethodGet, Pattern: "/a"},
		{Method: http.MethodGet, Pattern: "/_bambo/modules"},
	}, r.Routes())
}

func TestRouter_HandlerInterface(t *testing.T) {
	r := routing.New(nil)
	r.Get("/x", okHandler)

	var h http.Handler = r.Handler()
	assert.Equal(t, "ok", do(t, h, http.MethodGet, "/x").Body.String())
}
