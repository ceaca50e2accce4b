package rest

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/sitemint/sitemint-backend/internal/infra/config"
)

func resolverTestApp() *fiber.App {
	cfg := &config.AppConfig{
		ProductionHost: "sitemint.vercel.app",
		LocalHost:      "localhost:3000",
	}
	app := fiber.New()
	app.Use(NewTenantResolver(cfg))
	app.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.SendString("api")
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("dashboard")
	})
	app.Get("/sites/:subdomain", func(c *fiber.Ctx) error {
		return c.SendString("site:" + c.Params("subdomain") + ":/")
	})
	app.Get("/sites/:subdomain/*", func(c *fiber.Ctx) error {
		return c.SendString("site:" + c.Params("subdomain") + ":/" + c.Params("*"))
	})
	return app
}

func body(t *testing.T, app *fiber.App, host, path string) string {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	req.Host = host
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestResolverRewritesTenantHostname(t *testing.T) {
	app := resolverTestApp()
	require.Equal(t, "site:nordsnekker:/", body(t, app, "nordsnekker.sitemint.vercel.app", "/"))
}

func TestResolverRewritesTenantSubpath(t *testing.T) {
	app := resolverTestApp()
	require.Equal(t, "site:nordsnekker:/om-oss", body(t, app, "nordsnekker.sitemint.vercel.app", "/om-oss"))
}

func TestResolverPassesProductionHostThrough(t *testing.T) {
	app := resolverTestApp()
	require.Equal(t, "dashboard", body(t, app, "sitemint.vercel.app", "/"))
}

func TestResolverPassesLocalhostThrough(t *testing.T) {
	app := resolverTestApp()
	require.Equal(t, "dashboard", body(t, app, "localhost:3000", "/"))
}

func TestResolverSkipsAPIPaths(t *testing.T) {
	app := resolverTestApp()
	require.Equal(t, "api", body(t, app, "nordsnekker.sitemint.vercel.app", "/api/ping"))
}

func TestResolverSkipsHealthz(t *testing.T) {
	app := resolverTestApp()
	require.Equal(t, "ok", body(t, app, "nordsnekker.sitemint.vercel.app", "/healthz"))
}

func TestResolverSkipsAlreadyScopedPaths(t *testing.T) {
	app := resolverTestApp()
	require.Equal(t, "site:other:/", body(t, app, "nordsnekker.sitemint.vercel.app", "/sites/other"))
}

func TestResolverSkipsRootLevelFiles(t *testing.T) {
	app := resolverTestApp()
	req := httptest.NewRequest(fiber.MethodGet, "/favicon.ico", nil)
	req.Host = "nordsnekker.sitemint.vercel.app"
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestResolverRewritesCustomDomains(t *testing.T) {
	app := resolverTestApp()
	require.Equal(t, "site:nordsnekker:/", body(t, app, "nordsnekker.no", "/"))
}
