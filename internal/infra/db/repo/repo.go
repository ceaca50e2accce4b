package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sitemint/sitemint-backend/internal/application/dto"
	"github.com/sitemint/sitemint-backend/internal/application/errs"
	"github.com/sitemint/sitemint-backend/internal/infra/db"
)

// SiteRepo owns every SQL statement touching a site and its relations. All
// methods run on the caller's transaction, one logical save per tx.
type SiteRepo struct {
	tx pgx.Tx
}

func NewSiteRepo(tx pgx.Tx) *SiteRepo {
	return &SiteRepo{tx: tx}
}

const siteColumns = "id, subdomain, name, description, github_repo_url, vercel_project_url, owner_id, theme_id, contact_id, social_media_id, hero_id, created_at, updated_at"

func (r *SiteRepo) scanSite(row pgx.Row) (db.Site, error) {
	var site db.Site
	err := row.Scan(&site.ID, &site.Subdomain, &site.Name, &site.Description,
		&site.GithubRepoURL, &site.VercelProjectURL,
		&site.OwnerID, &site.ThemeID, &site.ContactID, &site.SocialMediaID, &site.HeroID,
		&site.CreatedAt, &site.UpdatedAt)
	return site, err
}

func (r *SiteRepo) GetSiteByID(ctx context.Context, id uuid.UUID) (*db.SiteWithRelations, error) {
	row := r.tx.QueryRow(ctx, "SELECT "+siteColumns+" FROM sitemint.sites WHERE id = $1", id)
	site, err := r.scanSite(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound{Resource: "site", Key: id.String()}
		}
		return nil, err
	}
	return r.loadRelations(ctx, site)
}

func (r *SiteRepo) GetSiteBySubdomain(ctx context.Context, subdomain string) (*db.SiteWithRelations, error) {
	row := r.tx.QueryRow(ctx, "SELECT "+siteColumns+" FROM sitemint.sites WHERE subdomain = $1", subdomain)
	site, err := r.scanSite(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound{Resource: "site", Key: subdomain}
		}
		return nil, err
	}
	return r.loadRelations(ctx, site)
}

func (r *SiteRepo) ListSites(ctx context.Context) ([]db.SiteWithRelations, error) {
	rows, err := r.tx.Query(ctx, "SELECT "+siteColumns+" FROM sitemint.sites ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []db.Site
	for rows.Next() {
		site, err := r.scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]db.SiteWithRelations, 0, len(sites))
	for _, site := range sites {
		loaded, err := r.loadRelations(ctx, site)
		if err != nil {
			return nil, err
		}
		result = append(result, *loaded)
	}
	return result, nil
}

func (r *SiteRepo) loadRelations(ctx context.Context, site db.Site) (*db.SiteWithRelations, error) {
	loaded := &db.SiteWithRelations{Site: site, Services: []db.Service{}}

	if site.OwnerID != nil {
		var owner db.Owner
		err := r.tx.QueryRow(ctx, "SELECT id, name, email, phone FROM sitemint.owners WHERE id = $1", *site.OwnerID).
			Scan(&owner.ID, &owner.Name, &owner.Email, &owner.Phone)
		if err != nil {
			return nil, fmt.Errorf("err loading owner, %v", err)
		}
		loaded.Owner = &owner
	}
	if site.ThemeID != nil {
		var theme db.Theme
		err := r.tx.QueryRow(ctx, "SELECT id, primary_color, secondary_color FROM sitemint.themes WHERE id = $1", *site.ThemeID).
			Scan(&theme.ID, &theme.PrimaryColor, &theme.SecondaryColor)
		if err != nil {
			return nil, fmt.Errorf("err loading theme, %v", err)
		}
		loaded.Theme = &theme
	}
	if site.ContactID != nil {
		var contact db.Contact
		err := r.tx.QueryRow(ctx, "SELECT id, address, city, phone, email, working_hours, areas FROM sitemint.contacts WHERE id = $1", *site.ContactID).
			Scan(&contact.ID, &contact.Address, &contact.City, &contact.Phone, &contact.Email, &contact.WorkingHours, &contact.Areas)
		if err != nil {
			return nil, fmt.Errorf("err loading contact, %v", err)
		}
		loaded.Contact = &contact
	}
	if site.SocialMediaID != nil {
		var social db.SocialMedia
		err := r.tx.QueryRow(ctx, "SELECT id, facebook, instagram, linkedin FROM sitemint.social_media WHERE id = $1", *site.SocialMediaID).
			Scan(&social.ID, &social.Facebook, &social.Instagram, &social.Linkedin)
		if err != nil {
			return nil, fmt.Errorf("err loading social media, %v", err)
		}
		loaded.SocialMedia = &social
	}
	if site.HeroID != nil {
		var hero db.Hero
		err := r.tx.QueryRow(ctx, "SELECT id, main_title, subtitle, highlights, cta_primary, cta_secondary FROM sitemint.heroes WHERE id = $1", *site.HeroID).
			Scan(&hero.ID, &hero.MainTitle, &hero.Subtitle, &hero.Highlights, &hero.CtaPrimary, &hero.CtaSecondary)
		if err != nil {
			return nil, fmt.Errorf("err loading hero, %v", err)
		}
		loaded.Hero = &hero
	}

	rows, err := r.tx.Query(ctx, "SELECT id, site_id, title, description, price FROM sitemint.services WHERE site_id = $1 ORDER BY id", site.ID)
	if err != nil {
		return nil, fmt.Errorf("err loading services, %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var service db.Service
		if err := rows.Scan(&service.ID, &service.SiteID, &service.Title, &service.Description, &service.Price); err != nil {
			return nil, err
		}
		loaded.Services = append(loaded.Services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return loaded, nil
}

// UpsertConfig creates a site by subdomain or fully replaces an existing one.
// Supplied relations are upserted, omitted relations stay untouched, the
// services collection is replaced wholesale inside the save's transaction.
func (r *SiteRepo) UpsertConfig(ctx context.Context, cfg *dto.SiteConfig) (*db.SiteWithRelations, error) {
	var site db.Site
	err := r.tx.QueryRow(ctx,
		"SELECT id, owner_id, theme_id, contact_id, social_media_id, hero_id FROM sitemint.sites WHERE subdomain = $1",
		cfg.Subdomain).Scan(&site.ID, &site.OwnerID, &site.ThemeID, &site.ContactID, &site.SocialMediaID, &site.HeroID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		err = r.tx.QueryRow(ctx,
			"INSERT INTO sitemint.sites(subdomain, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $4) RETURNING id",
			cfg.Subdomain, cfg.Name, cfg.Description, time.Now()).Scan(&site.ID)
		if err != nil {
			return nil, mapSubdomainConflict(err, cfg.Subdomain)
		}
	} else {
		_, err = r.tx.Exec(ctx, "UPDATE sitemint.sites SET name = $1, description = $2, updated_at = $3 WHERE id = $4",
			cfg.Name, cfg.Description, time.Now(), site.ID)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Owner != nil {
		if err := r.upsertOwner(ctx, site.ID, site.OwnerID, db.MapOwnerInput(*cfg.Owner)); err != nil {
			return nil, err
		}
	}
	if cfg.Theme != nil {
		if err := r.upsertTheme(ctx, site.ID, site.ThemeID, db.MapThemeInput(*cfg.Theme)); err != nil {
			return nil, err
		}
	}
	if cfg.Contact != nil {
		if err := r.upsertContact(ctx, site.ID, site.ContactID, db.MapContactInput(*cfg.Contact)); err != nil {
			return nil, err
		}
	}
	if cfg.SocialMedia != nil {
		if err := r.upsertSocialMedia(ctx, site.ID, site.SocialMediaID, db.MapSocialMediaInput(*cfg.SocialMedia)); err != nil {
			return nil, err
		}
	}
	if cfg.Hero != nil {
		if err := r.upsertHero(ctx, site.ID, site.HeroID, db.MapHeroInput(*cfg.Hero)); err != nil {
			return nil, err
		}
	}
	if cfg.Services != nil {
		if err := r.ReplaceServices(ctx, site.ID, cfg.Services); err != nil {
			return nil, err
		}
	}

	return r.GetSiteByID(ctx, site.ID)
}

// UpdateSite applies a sparse dashboard payload. Relation fields are
// tri-state: untouched when absent, removed on explicit null, upserted
// otherwise.
func (r *SiteRepo) UpdateSite(ctx context.Context, id uuid.UUID, req *dto.UpdateSiteRequest) (*db.SiteWithRelations, error) {
	var site db.Site
	err := r.tx.QueryRow(ctx,
		"SELECT id, owner_id, theme_id, contact_id, social_media_id, hero_id FROM sitemint.sites WHERE id = $1",
		id).Scan(&site.ID, &site.OwnerID, &site.ThemeID, &site.ContactID, &site.SocialMediaID, &site.HeroID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound{Resource: "site", Key: id.String()}
		}
		return nil, err
	}

	if req.Name != nil {
		if _, err := r.tx.Exec(ctx, "UPDATE sitemint.sites SET name = $1 WHERE id = $2", *req.Name, id); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if _, err := r.tx.Exec(ctx, "UPDATE sitemint.sites SET description = $1 WHERE id = $2", *req.Description, id); err != nil {
			return nil, err
		}
	}
	if req.Subdomain != nil {
		if _, err := r.tx.Exec(ctx, "UPDATE sitemint.sites SET subdomain = $1 WHERE id = $2", *req.Subdomain, id); err != nil {
			return nil, mapSubdomainConflict(err, *req.Subdomain)
		}
	}
	if !req.GithubRepoURL.IsUnset() {
		url, _ := req.GithubRepoURL.Get()
		if _, err := r.tx.Exec(ctx, "UPDATE sitemint.sites SET github_repo_url = $1 WHERE id = $2", url, id); err != nil {
			return nil, err
		}
	}
	if !req.VercelProjectURL.IsUnset() {
		url, _ := req.VercelProjectURL.Get()
		if _, err := r.tx.Exec(ctx, "UPDATE sitemint.sites SET vercel_project_url = $1 WHERE id = $2", url, id); err != nil {
			return nil, err
		}
	}

	if owner, ok := req.Owner.Get(); ok {
		if err := r.upsertOwner(ctx, id, site.OwnerID, db.MapOwnerInput(*owner)); err != nil {
			return nil, err
		}
	} else if req.Owner.IsRemove() && site.OwnerID != nil {
		if err := r.removeRelation(ctx, id, "owner_id", "sitemint.owners", *site.OwnerID); err != nil {
			return nil, err
		}
	}
	if contact, ok := req.Contact.Get(); ok {
		if err := r.upsertContact(ctx, id, site.ContactID, db.MapContactInput(*contact)); err != nil {
			return nil, err
		}
	} else if req.Contact.IsRemove() && site.ContactID != nil {
		if err := r.removeRelation(ctx, id, "contact_id", "sitemint.contacts", *site.ContactID); err != nil {
			return nil, err
		}
	}
	if social, ok := req.SocialMedia.Get(); ok {
		if err := r.upsertSocialMedia(ctx, id, site.SocialMediaID, db.MapSocialMediaInput(*social)); err != nil {
			return nil, err
		}
	} else if req.SocialMedia.IsRemove() && site.SocialMediaID != nil {
		if err := r.removeRelation(ctx, id, "social_media_id", "sitemint.social_media", *site.SocialMediaID); err != nil {
			return nil, err
		}
	}
	if hero, ok := req.Hero.Get(); ok {
		if err := r.upsertHero(ctx, id, site.HeroID, db.MapHeroInput(*hero)); err != nil {
			return nil, err
		}
	} else if req.Hero.IsRemove() && site.HeroID != nil {
		if err := r.removeRelation(ctx, id, "hero_id", "sitemint.heroes", *site.HeroID); err != nil {
			return nil, err
		}
	}

	if _, err := r.tx.Exec(ctx, "UPDATE sitemint.sites SET updated_at = $1 WHERE id = $2", time.Now(), id); err != nil {
		return nil, err
	}

	return r.GetSiteByID(ctx, id)
}

// DeleteSite removes the site row and every one-to-one related row. Services
// go with the site via ON DELETE CASCADE.
func (r *SiteRepo) DeleteSite(ctx context.Context, id uuid.UUID) error {
	var site db.Site
	err := r.tx.QueryRow(ctx,
		"SELECT id, owner_id, theme_id, contact_id, social_media_id, hero_id FROM sitemint.sites WHERE id = $1",
		id).Scan(&site.ID, &site.OwnerID, &site.ThemeID, &site.ContactID, &site.SocialMediaID, &site.HeroID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.NotFound{Resource: "site", Key: id.String()}
		}
		return err
	}

	if _, err := r.tx.Exec(ctx, "DELETE FROM sitemint.sites WHERE id = $1", id); err != nil {
		return fmt.Errorf("err deleting site, %v", err)
	}

	related := []struct {
		table string
		id    *uuid.UUID
	}{
		{"sitemint.owners", site.OwnerID},
		{"sitemint.themes", site.ThemeID},
		{"sitemint.contacts", site.ContactID},
		{"sitemint.social_media", site.SocialMediaID},
		{"sitemint.heroes", site.HeroID},
	}
	for _, rel := range related {
		if rel.id == nil {
			continue
		}
		if _, err := r.tx.Exec(ctx, "DELETE FROM "+rel.table+" WHERE id = $1", *rel.id); err != nil {
			return fmt.Errorf("err deleting from %v, %v", rel.table, err)
		}
	}

	return nil
}

// ReplaceServices swaps the full collection: prior rows are never retained,
// service ids are not stable across saves.
func (r *SiteRepo) ReplaceServices(ctx context.Context, siteID uuid.UUID, services []dto.ServiceInput) error {
	if _, err := r.tx.Exec(ctx, "DELETE FROM sitemint.services WHERE site_id = $1", siteID); err != nil {
		return fmt.Errorf("err deleting services, %v", err)
	}
	for _, in := range services {
		service := db.MapServiceInput(in)
		_, err := r.tx.Exec(ctx, "INSERT INTO sitemint.services(site_id, title, description, price) VALUES ($1, $2, $3, $4)",
			siteID, service.Title, service.Description, service.Price)
		if err != nil {
			return fmt.Errorf("err inserting service, %v", err)
		}
	}
	return nil
}

func (r *SiteRepo) upsertOwner(ctx context.Context, siteID uuid.UUID, ownerID *uuid.UUID, owner db.Owner) error {
	if ownerID == nil {
		var id uuid.UUID
		err := r.tx.QueryRow(ctx, "INSERT INTO sitemint.owners(name, email, phone) VALUES ($1, $2, $3) RETURNING id",
			owner.Name, owner.Email, owner.Phone).Scan(&id)
		if err != nil {
			return err
		}
		return r.linkRelation(ctx, siteID, "owner_id", id)
	}
	_, err := r.tx.Exec(ctx, "UPDATE sitemint.owners SET name = $1, email = $2, phone = $3 WHERE id = $4",
		owner.Name, owner.Email, owner.Phone, *ownerID)
	return err
}

func (r *SiteRepo) upsertTheme(ctx context.Context, siteID uuid.UUID, themeID *uuid.UUID, theme db.Theme) error {
	if themeID == nil {
		var id uuid.UUID
		err := r.tx.QueryRow(ctx, "INSERT INTO sitemint.themes(primary_color, secondary_color) VALUES ($1, $2) RETURNING id",
			theme.PrimaryColor, theme.SecondaryColor).Scan(&id)
		if err != nil {
			return err
		}
		return r.linkRelation(ctx, siteID, "theme_id", id)
	}
	_, err := r.tx.Exec(ctx, "UPDATE sitemint.themes SET primary_color = $1, secondary_color = $2 WHERE id = $3",
		theme.PrimaryColor, theme.SecondaryColor, *themeID)
	return err
}

func (r *SiteRepo) upsertContact(ctx context.Context, siteID uuid.UUID, contactID *uuid.UUID, contact db.Contact) error {
	if contactID == nil {
		var id uuid.UUID
		err := r.tx.QueryRow(ctx,
			"INSERT INTO sitemint.contacts(address, city, phone, email, working_hours, areas) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
			contact.Address, contact.City, contact.Phone, contact.Email, contact.WorkingHours, contact.Areas).Scan(&id)
		if err != nil {
			return err
		}
		return r.linkRelation(ctx, siteID, "contact_id", id)
	}
	_, err := r.tx.Exec(ctx,
		"UPDATE sitemint.contacts SET address = $1, city = $2, phone = $3, email = $4, working_hours = $5, areas = $6 WHERE id = $7",
		contact.Address, contact.City, contact.Phone, contact.Email, contact.WorkingHours, contact.Areas, *contactID)
	return err
}

func (r *SiteRepo) upsertSocialMedia(ctx context.Context, siteID uuid.UUID, socialID *uuid.UUID, social db.SocialMedia) error {
	if socialID == nil {
		var id uuid.UUID
		err := r.tx.QueryRow(ctx,
			"INSERT INTO sitemint.social_media(facebook, instagram, linkedin) VALUES ($1, $2, $3) RETURNING id",
			social.Facebook, social.Instagram, social.Linkedin).Scan(&id)
		if err != nil {
			return err
		}
		return r.linkRelation(ctx, siteID, "social_media_id", id)
	}
	_, err := r.tx.Exec(ctx, "UPDATE sitemint.social_media SET facebook = $1, instagram = $2, linkedin = $3 WHERE id = $4",
		social.Facebook, social.Instagram, social.Linkedin, *socialID)
	return err
}

func (r *SiteRepo) upsertHero(ctx context.Context, siteID uuid.UUID, heroID *uuid.UUID, hero db.Hero) error {
	if heroID == nil {
		var id uuid.UUID
		err := r.tx.QueryRow(ctx,
			"INSERT INTO sitemint.heroes(main_title, subtitle, highlights, cta_primary, cta_secondary) VALUES ($1, $2, $3, $4, $5) RETURNING id",
			hero.MainTitle, hero.Subtitle, hero.Highlights, hero.CtaPrimary, hero.CtaSecondary).Scan(&id)
		if err != nil {
			return err
		}
		return r.linkRelation(ctx, siteID, "hero_id", id)
	}
	_, err := r.tx.Exec(ctx,
		"UPDATE sitemint.heroes SET main_title = $1, subtitle = $2, highlights = $3, cta_primary = $4, cta_secondary = $5 WHERE id = $6",
		hero.MainTitle, hero.Subtitle, hero.Highlights, hero.CtaPrimary, hero.CtaSecondary, *heroID)
	return err
}

func (r *SiteRepo) linkRelation(ctx context.Context, siteID uuid.UUID, column string, relationID uuid.UUID) error {
	_, err := r.tx.Exec(ctx, "UPDATE sitemint.sites SET "+column+" = $1 WHERE id = $2", relationID, siteID)
	if err != nil {
		return fmt.Errorf("err linking %v, %v", column, err)
	}
	return nil
}

// removeRelation disconnects the foreign key and deletes the related row.
// One-to-one rows are never shared between sites, so a disconnect is a delete.
func (r *SiteRepo) removeRelation(ctx context.Context, siteID uuid.UUID, column, table string, relationID uuid.UUID) error {
	if _, err := r.tx.Exec(ctx, "UPDATE sitemint.sites SET "+column+" = NULL WHERE id = $1", siteID); err != nil {
		return fmt.Errorf("err disconnecting %v, %v", column, err)
	}
	if _, err := r.tx.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", relationID); err != nil {
		return fmt.Errorf("err deleting from %v, %v", table, err)
	}
	return nil
}

func mapSubdomainConflict(err error, subdomain string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "subdomain") {
		return errs.DuplicateSubdomain{Subdomain: subdomain}
	}
	return err
}
