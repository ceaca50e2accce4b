package config

import (
	"github.com/sitemint/sitemint-backend/pkg/env"
)

// AppConfig carries the process-wide knobs: where the server listens, which
// hostnames count as the dashboard rather than a tenant site, and the CORS
// origin for the dashboard frontend.
type AppConfig struct {
	Port           string
	ProductionHost string
	LocalHost      string
	CORSOrigin     string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		Port:           env.GetEnv("PORT", "8080"),
		ProductionHost: env.GetEnv("PRODUCTION_HOST", "sitemint.vercel.app"),
		LocalHost:      env.GetEnv("LOCAL_HOST", "localhost:3000"),
		CORSOrigin:     env.GetEnv("CORS_ORIGIN", "http://localhost:3000"),
	}
}
