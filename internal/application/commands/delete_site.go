package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sitemint/sitemint-backend/internal/application/errs"
	"github.com/sitemint/sitemint-backend/internal/infra/cache"
	"github.com/sitemint/sitemint-backend/internal/infra/db/repo"
	dbs "github.com/sitemint/sitemint-backend/pkg/db"
)

// DeleteSite removes a site and all of its related rows in one transaction.
// A missing site returns NotFound with no writes performed.
type DeleteSite struct {
	uowFactory *dbs.UOWFactory
	siteCache  *cache.SiteCache
}

func NewDeleteSite(factory *dbs.UOWFactory, siteCache *cache.SiteCache) *DeleteSite {
	return &DeleteSite{uowFactory: factory, siteCache: siteCache}
}

func (c *DeleteSite) Execute(ctx context.Context, siteID uuid.UUID) (err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return errs.PersistenceError{Err: err}
	}
	defer uow.Finalize(&err)

	siteRepo := repo.NewSiteRepo(tx)

	site, err := siteRepo.GetSiteByID(ctx, siteID)
	if err != nil {
		err = wrapStorageError(err)
		return err
	}

	if err = siteRepo.DeleteSite(ctx, siteID); err != nil {
		err = wrapStorageError(err)
		return err
	}

	slog.Info("deleted site", "siteID", siteID, "subdomain", site.Subdomain)

	c.siteCache.InvalidateSite(ctx, site.Subdomain)

	return nil
}
