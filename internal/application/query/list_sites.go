package query

import (
	"context"

	"github.com/sitemint/sitemint-backend/internal/application/errs"
	"github.com/sitemint/sitemint-backend/internal/infra/db"
	"github.com/sitemint/sitemint-backend/internal/infra/db/repo"
	dbs "github.com/sitemint/sitemint-backend/pkg/db"
)

// ListSites backs the dashboard's project table.
type ListSites struct {
	uowFactory *dbs.UOWFactory
}

func NewListSites(factory *dbs.UOWFactory) *ListSites {
	return &ListSites{uowFactory: factory}
}

func (c *ListSites) Query(ctx context.Context) (sites []db.SiteWithRelations, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, errs.PersistenceError{Err: err}
	}
	defer uow.Finalize(&err)

	sites, err = repo.NewSiteRepo(tx).ListSites(ctx)
	if err != nil {
		err = wrapStorageError(err)
		return nil, err
	}
	return sites, nil
}
