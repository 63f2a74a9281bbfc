package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"wrld-names.backend/internal/interfaces/http/handlers"
)

func testRouteDeps(devRoutes bool) routeDeps {
	return routeDeps{
		authHandler:      &handlers.AuthHandler{},
		registrarHandler: &handlers.RegistrarHandler{},
		nameHandler:      &handlers.NameHandler{},
		resolverHandler:  &handlers.ResolverHandler{},
		adminHandler:     &handlers.AdminHandler{},
		devHandler:       &handlers.DevHandler{},
		ownerAuth:        func(c *gin.Context) { c.Next() },
		devRoutes:        devRoutes,
	}
}

func TestRegisterAPIV1Routes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerAPIV1Routes(r, testRouteDeps(true))

	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/auth/owner-token"},
		{"GET", "/api/v1/registrar/status"},
		{"POST", "/api/v1/registrar/register"},
		{"POST", "/api/v1/registrar/register-with-pass"},
		{"POST", "/api/v1/registrar/withdraw"},
		{"PUT", "/api/v1/registrar/prices/:bucket"},
		{"GET", "/api/v1/names/:name"},
		{"GET", "/api/v1/names/:name/records/:type/:key"},
		{"PUT", "/api/v1/names/:name/entries/:type/:key"},
		{"PUT", "/api/v1/names/:name/alternate-resolver"},
		{"POST", "/api/v1/names/:name/migrate"},
		{"GET", "/api/v1/tokens/:id/uri"},
		{"GET", "/api/v1/resolve/:name/:type/:key"},
		{"PUT", "/api/v1/admin/registrar"},
		{"POST", "/api/v1/dev/token/mint"},
	}

	routes := r.Routes()
	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterAPIV1Routes_DevRoutesGated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerAPIV1Routes(r, testRouteDeps(false))

	for _, route := range r.Routes() {
		if route.Path == "/api/v1/dev/token/mint" {
			t.Fatal("dev routes must not be registered outside development")
		}
	}
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerHealthRoute(r)
	registerMetricsRoute(r)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
}
