package query

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sitemint/sitemint-backend/internal/application/errs"
	"github.com/sitemint/sitemint-backend/internal/infra/cache"
	"github.com/sitemint/sitemint-backend/internal/infra/db"
	"github.com/sitemint/sitemint-backend/internal/infra/db/repo"
	dbs "github.com/sitemint/sitemint-backend/pkg/db"
)

// GetSite loads one site with every relation. Subdomain lookups go through
// the cache since they sit on the public rendering path.
type GetSite struct {
	uowFactory *dbs.UOWFactory
	siteCache  *cache.SiteCache
}

func NewGetSite(factory *dbs.UOWFactory, siteCache *cache.SiteCache) *GetSite {
	return &GetSite{uowFactory: factory, siteCache: siteCache}
}

func (c *GetSite) ByID(ctx context.Context, siteID uuid.UUID) (site *db.SiteWithRelations, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, errs.PersistenceError{Err: err}
	}
	defer uow.Finalize(&err)

	site, err = repo.NewSiteRepo(tx).GetSiteByID(ctx, siteID)
	if err != nil {
		err = wrapStorageError(err)
		return nil, err
	}
	return site, nil
}

func (c *GetSite) BySubdomain(ctx context.Context, subdomain string) (site *db.SiteWithRelations, err error) {
	if cached, ok := c.siteCache.GetSite(ctx, subdomain); ok {
		return cached, nil
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, errs.PersistenceError{Err: err}
	}
	defer uow.Finalize(&err)

	site, err = repo.NewSiteRepo(tx).GetSiteBySubdomain(ctx, subdomain)
	if err != nil {
		err = wrapStorageError(err)
		return nil, err
	}

	c.siteCache.SetSite(ctx, site)

	return site, nil
}

func wrapStorageError(err error) error {
	var notFound errs.NotFound
	var duplicate errs.DuplicateSubdomain
	if errors.As(err, &notFound) || errors.As(err, &duplicate) {
		return err
	}
	return errs.PersistenceError{Err: err}
}
