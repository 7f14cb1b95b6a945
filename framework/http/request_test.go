package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	gohttp "github.com/christux/bambo/framework/http"
)

func TestRequest_Query(t *testing.T) {
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/modules?state=pending&x=1&x=2", nil))

	assert.Equal(t, "pending", req.Query("state"))
	assert.Equal(t, "all", req.Query("missing", "all"))
	assert.Equal(t, map[string]string{"state": "pending", "x": "1"}, req.QueryMap())
}

func TestRequest_RouteParam(t *testing.T) {
	raw := httptest.NewRequest(http.MethodGet, "/modules/$site", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("name", "$site")
	raw = raw.WithContext(context.WithValue(raw.Context(), chi.RouteCtxKey, rctx))

	assert.Equal(t, "$site", gohttp.NewRequest(raw).RouteParam("name"))
}
