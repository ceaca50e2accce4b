package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sitemint/sitemint-backend/internal/application/dto"
	"github.com/sitemint/sitemint-backend/internal/application/errs"
	"github.com/sitemint/sitemint-backend/internal/infra/cache"
	"github.com/sitemint/sitemint-backend/internal/infra/db"
	"github.com/sitemint/sitemint-backend/internal/infra/db/repo"
	dbs "github.com/sitemint/sitemint-backend/pkg/db"
)

// UpdateSite applies a sparse dashboard payload to one site and returns the
// updated record with all relations loaded.
type UpdateSite struct {
	uowFactory *dbs.UOWFactory
	siteCache  *cache.SiteCache
}

func NewUpdateSite(factory *dbs.UOWFactory, siteCache *cache.SiteCache) *UpdateSite {
	return &UpdateSite{uowFactory: factory, siteCache: siteCache}
}

func (c *UpdateSite) Execute(ctx context.Context, siteID uuid.UUID, req *dto.UpdateSiteRequest) (site *db.SiteWithRelations, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, errs.PersistenceError{Err: err}
	}
	defer uow.Finalize(&err)

	siteRepo := repo.NewSiteRepo(tx)

	// The pre-update subdomain is needed to invalidate the old cache entry
	// when the payload renames it.
	previous, err := siteRepo.GetSiteByID(ctx, siteID)
	if err != nil {
		err = wrapStorageError(err)
		return nil, err
	}

	site, err = siteRepo.UpdateSite(ctx, siteID, req)
	if err != nil {
		err = wrapStorageError(err)
		return nil, err
	}

	slog.Info("updated site details", "siteID", siteID, "subdomain", site.Subdomain)

	c.siteCache.InvalidateSite(ctx, previous.Subdomain)
	if site.Subdomain != previous.Subdomain {
		c.siteCache.InvalidateSite(ctx, site.Subdomain)
	}

	return site, nil
}
