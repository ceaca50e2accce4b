package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/sitemint/sitemint-backend/internal/application/dto"
	"github.com/sitemint/sitemint-backend/internal/application/errs"
)

const fkSelect = "SELECT id, owner_id, theme_id, contact_id, social_media_id, hero_id FROM sitemint.sites WHERE id = $1"

func fkColumns() []string {
	return []string{"id", "owner_id", "theme_id", "contact_id", "social_media_id", "hero_id"}
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *SiteRepo) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	mock.ExpectBegin()
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	return mock, NewSiteRepo(tx)
}

// expectReload registers the row queries issued when a mutation re-reads the
// site at the end, for a site with no relations left.
func expectReload(mock pgxmock.PgxPoolIface, id uuid.UUID) {
	now := time.Now()
	mock.ExpectQuery("SELECT " + siteColumns + " FROM sitemint.sites WHERE id = $1").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "subdomain", "name", "description", "github_repo_url", "vercel_project_url",
			"owner_id", "theme_id", "contact_id", "social_media_id", "hero_id", "created_at", "updated_at",
		}).AddRow(id, "nordsnekker", "Nord Snekker AS", "Snekker i Tromsø",
			(*string)(nil), (*string)(nil),
			(*uuid.UUID)(nil), (*uuid.UUID)(nil), (*uuid.UUID)(nil), (*uuid.UUID)(nil), (*uuid.UUID)(nil),
			now, now))
	mock.ExpectQuery("SELECT id, site_id, title, description, price FROM sitemint.services WHERE site_id = $1 ORDER BY id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "site_id", "title", "description", "price"}))
}

func TestDeleteSiteMissingIsNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery(fkSelect).WithArgs(id).WillReturnError(pgx.ErrNoRows)

	err := repo.DeleteSite(context.Background(), id)
	var notFound errs.NotFound
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "site", notFound.Resource)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSiteRemovesRelatedRows(t *testing.T) {
	mock, repo := newMockRepo(t)
	id := uuid.New()
	ownerID := uuid.New()
	contactID := uuid.New()

	mock.ExpectQuery(fkSelect).WithArgs(id).
		WillReturnRows(pgxmock.NewRows(fkColumns()).
			AddRow(id, &ownerID, (*uuid.UUID)(nil), &contactID, (*uuid.UUID)(nil), (*uuid.UUID)(nil)))
	mock.ExpectExec("DELETE FROM sitemint.sites WHERE id = $1").WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM sitemint.owners WHERE id = $1").WithArgs(ownerID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM sitemint.contacts WHERE id = $1").WithArgs(contactID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.DeleteSite(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSiteRemovesContactOnExplicitNull(t *testing.T) {
	mock, repo := newMockRepo(t)
	id := uuid.New()
	contactID := uuid.New()

	mock.ExpectQuery(fkSelect).WithArgs(id).
		WillReturnRows(pgxmock.NewRows(fkColumns()).
			AddRow(id, (*uuid.UUID)(nil), (*uuid.UUID)(nil), &contactID, (*uuid.UUID)(nil), (*uuid.UUID)(nil)))
	mock.ExpectExec("UPDATE sitemint.sites SET contact_id = NULL WHERE id = $1").WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("DELETE FROM sitemint.contacts WHERE id = $1").WithArgs(contactID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("UPDATE sitemint.sites SET updated_at = $1 WHERE id = $2").
		WithArgs(pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	expectReload(mock, id)

	var req dto.UpdateSiteRequest
	req.Contact = dto.PatchRemove[dto.ContactInput]()

	site, err := repo.UpdateSite(context.Background(), id, &req)
	require.NoError(t, err)
	require.Nil(t, site.Contact)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSiteLeavesRelationsWhenAbsent(t *testing.T) {
	mock, repo := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery(fkSelect).WithArgs(id).
		WillReturnRows(pgxmock.NewRows(fkColumns()).
			AddRow(id, (*uuid.UUID)(nil), (*uuid.UUID)(nil), (*uuid.UUID)(nil), (*uuid.UUID)(nil), (*uuid.UUID)(nil)))
	mock.ExpectExec("UPDATE sitemint.sites SET name = $1 WHERE id = $2").
		WithArgs("Nord Snekker AS", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE sitemint.sites SET updated_at = $1 WHERE id = $2").
		WithArgs(pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	expectReload(mock, id)

	name := "Nord Snekker AS"
	req := dto.UpdateSiteRequest{Name: &name}

	_, err := repo.UpdateSite(context.Background(), id, &req)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSiteMapsSubdomainConflict(t *testing.T) {
	mock, repo := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery(fkSelect).WithArgs(id).
		WillReturnRows(pgxmock.NewRows(fkColumns()).
			AddRow(id, (*uuid.UUID)(nil), (*uuid.UUID)(nil), (*uuid.UUID)(nil), (*uuid.UUID)(nil), (*uuid.UUID)(nil)))
	mock.ExpectExec("UPDATE sitemint.sites SET subdomain = $1 WHERE id = $2").
		WithArgs("taken", id).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "sites_subdomain_key"})

	sub := "taken"
	req := dto.UpdateSiteRequest{Subdomain: &sub}

	_, err := repo.UpdateSite(context.Background(), id, &req)
	var dup errs.DuplicateSubdomain
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "taken", dup.Subdomain)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceServicesDeletesThenInserts(t *testing.T) {
	mock, repo := newMockRepo(t)
	siteID := uuid.New()

	mock.ExpectExec("DELETE FROM sitemint.services WHERE site_id = $1").WithArgs(siteID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("INSERT INTO sitemint.services(site_id, title, description, price) VALUES ($1, $2, $3, $4)").
		WithArgs(siteID, "Taktekking", "Nytt tak og omtekking", "fra 25 000 kr").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO sitemint.services(site_id, title, description, price) VALUES ($1, $2, $3, $4)").
		WithArgs(siteID, "Terrasse", "Bygging av terrasse", "N/A").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	price := "fra 25 000 kr"
	services := []dto.ServiceInput{
		{Title: "Taktekking", Description: "Nytt tak og omtekking", Price: &price},
		{Title: "Terrasse", Description: "Bygging av terrasse"},
	}

	require.NoError(t, repo.ReplaceServices(context.Background(), siteID, services))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertConfigCreatesNewSite(t *testing.T) {
	mock, repo := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT id, owner_id, theme_id, contact_id, social_media_id, hero_id FROM sitemint.sites WHERE subdomain = $1").
		WithArgs("nordsnekker").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO sitemint.sites(subdomain, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $4) RETURNING id").
		WithArgs("nordsnekker", "Nord Snekker AS", "Snekker i Tromsø", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))
	expectReload(mock, id)

	cfg := &dto.SiteConfig{
		Subdomain:   "nordsnekker",
		Name:        "Nord Snekker AS",
		Description: "Snekker i Tromsø",
	}

	site, err := repo.UpsertConfig(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, id, site.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
