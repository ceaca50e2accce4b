package github

import (
	"os"

	"github.com/sitemint/sitemint-backend/internal/application/errs"
	"github.com/sitemint/sitemint-backend/pkg/env"
)

type Config struct {
	Token        string
	Owner        string
	TemplateRepo string
	BaseURL      string
}

func NewConfig() Config {
	return Config{
		Token:        os.Getenv("GITHUB_TOKEN"),
		Owner:        os.Getenv("GITHUB_OWNER"),
		TemplateRepo: os.Getenv("GITHUB_TEMPLATE_REPO"),
		BaseURL:      env.GetEnv("GITHUB_API_URL", "https://api.github.com"),
	}
}

// Validate reports missing deployment credentials as a fatal
// ConfigurationError. Runs before any network call.
func (c Config) Validate() error {
	var missing []string
	if c.Token == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if c.Owner == "" {
		missing = append(missing, "GITHUB_OWNER")
	}
	if c.TemplateRepo == "" {
		missing = append(missing, "GITHUB_TEMPLATE_REPO")
	}
	if len(missing) > 0 {
		return errs.ConfigurationError{Missing: missing}
	}
	return nil
}
