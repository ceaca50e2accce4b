package rest

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sitemint/sitemint-backend/internal/infra/config"
)

// rootLevelFile matches requests like /favicon.ico that must never be
// treated as tenant pages.
var rootLevelFile = regexp.MustCompile(`^/[\w-]+\.\w+$`)

// NewTenantResolver rewrites requests arriving on a tenant hostname to the
// subdomain-scoped route. It is a pure per-request decision with no I/O and
// must be registered before any route handling.
func NewTenantResolver(cfg *config.AppConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hostname := c.Hostname()
		if hostname == cfg.ProductionHost || hostname == cfg.LocalHost {
			return c.Next()
		}
		path := c.Path()
		if excludedPath(path) {
			return c.Next()
		}

		subdomain := strings.Split(hostname, ".")[0]
		if subdomain == "" {
			return c.Next()
		}

		c.Path("/sites/" + subdomain + path)
		return c.RestartRouting()
	}
}

func excludedPath(path string) bool {
	switch {
	case path == "/api" || strings.HasPrefix(path, "/api/"):
		return true
	case path == "/metrics" || path == "/healthz":
		return true
	case strings.HasPrefix(path, "/static/"):
		return true
	case strings.HasPrefix(path, "/sites/"):
		// Already subdomain-scoped, nothing to rewrite.
		return true
	case rootLevelFile.MatchString(path):
		return true
	}
	return false
}
