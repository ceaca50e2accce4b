package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sitemint/sitemint-backend/internal/application/dto"
	"github.com/sitemint/sitemint-backend/internal/application/errs"
	"github.com/sitemint/sitemint-backend/internal/infra/cache"
	"github.com/sitemint/sitemint-backend/internal/infra/db"
	"github.com/sitemint/sitemint-backend/internal/infra/db/repo"
	"github.com/sitemint/sitemint-backend/internal/infra/metrics"
	dbs "github.com/sitemint/sitemint-backend/pkg/db"
)

// SaveConfig persists a full site configuration, creating the site or
// replacing an existing one keyed by subdomain. The whole save is one
// transaction.
type SaveConfig struct {
	uowFactory *dbs.UOWFactory
	siteCache  *cache.SiteCache
}

func NewSaveConfig(factory *dbs.UOWFactory, siteCache *cache.SiteCache) *SaveConfig {
	return &SaveConfig{uowFactory: factory, siteCache: siteCache}
}

func (c *SaveConfig) Execute(ctx context.Context, config *dto.SiteConfig) (site *db.SiteWithRelations, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, errs.PersistenceError{Err: err}
	}
	defer uow.Finalize(&err)

	site, err = repo.NewSiteRepo(tx).UpsertConfig(ctx, config)
	if err != nil {
		metrics.SavesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		err = wrapStorageError(err)
		return nil, err
	}

	slog.Info("saved site configuration", "siteID", site.ID, "subdomain", site.Subdomain,
		"services", len(site.Services))
	metrics.SavesTotal.WithLabelValues(metrics.OutcomeOK).Inc()

	c.siteCache.InvalidateSite(ctx, site.Subdomain)

	return site, nil
}

// wrapStorageError keeps the typed kinds intact and folds everything else
// into PersistenceError.
func wrapStorageError(err error) error {
	var notFound errs.NotFound
	var duplicate errs.DuplicateSubdomain
	if errors.As(err, &notFound) || errors.As(err, &duplicate) {
		return err
	}
	return errs.PersistenceError{Err: err}
}
