package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sitemint/sitemint-backend/internal/application/dto"
	"github.com/sitemint/sitemint-backend/internal/application/errs"
	"github.com/sitemint/sitemint-backend/internal/infra/metrics"
	"github.com/sitemint/sitemint-backend/internal/infra/scraper"
)

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

type Extractor interface {
	ExtractSiteConfig(ctx context.Context, subdomain, html string) (*dto.SiteConfig, error)
}

// ScrapeSite runs the extraction pipeline: fetch the page, derive the tenant
// slug from the hostname, hand the HTML to the model. No persistence happens
// here, the caller decides whether to save the result.
type ScrapeSite struct {
	fetcher   Fetcher
	extractor Extractor
}

func NewScrapeSite(fetcher Fetcher, extractor Extractor) *ScrapeSite {
	return &ScrapeSite{
		fetcher:   fetcher,
		extractor: extractor,
	}
}

func (c *ScrapeSite) Execute(ctx context.Context, rawURL string) (*dto.SiteConfig, error) {
	subdomain, err := scraper.SlugFromURL(rawURL)
	if err != nil {
		metrics.ScrapesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	slog.Info("scraping website", "url", rawURL, "subdomain", subdomain)
	html, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		metrics.ScrapesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}
	slog.Info("scraped website", "url", rawURL, "htmlLength", len(html))

	config, err := c.extractor.ExtractSiteConfig(ctx, subdomain, html)
	if err != nil {
		outcome := metrics.OutcomeError
		var refused errs.ExtractionRefused
		if errors.As(err, &refused) {
			outcome = metrics.OutcomeRefused
		}
		metrics.ScrapesTotal.WithLabelValues(outcome).Inc()
		return nil, err
	}

	// The model's own subdomain suggestion is discarded so the slug stays
	// deterministic for a given hostname.
	config.Subdomain = subdomain

	slog.Info("extracted site configuration", "subdomain", config.Subdomain,
		"name", config.Name, "services", len(config.Services))
	metrics.ScrapesTotal.WithLabelValues(metrics.OutcomeOK).Inc()

	return config, nil
}
