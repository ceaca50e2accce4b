package db

import (
	"time"

	"github.com/google/uuid"
)

type Site struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	Subdomain        string     `db:"subdomain" json:"subdomain"`
	Name             string     `db:"name" json:"name"`
	Description      string     `db:"description" json:"description"`
	GithubRepoURL    *string    `db:"github_repo_url" json:"githubRepoUrl"`
	VercelProjectURL *string    `db:"vercel_project_url" json:"vercelProjectUrl"`
	OwnerID          *uuid.UUID `db:"owner_id" json:"-"`
	ThemeID          *uuid.UUID `db:"theme_id" json:"-"`
	ContactID        *uuid.UUID `db:"contact_id" json:"-"`
	SocialMediaID    *uuid.UUID `db:"social_media_id" json:"-"`
	HeroID           *uuid.UUID `db:"hero_id" json:"-"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

type Owner struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Name  string    `db:"name" json:"name"`
	Email string    `db:"email" json:"email"`
	Phone *string   `db:"phone" json:"phone"`
}

type Theme struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PrimaryColor   string    `db:"primary_color" json:"primaryColor"`
	SecondaryColor string    `db:"secondary_color" json:"secondaryColor"`
}

type Contact struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Address      *string   `db:"address" json:"address"`
	City         *string   `db:"city" json:"city"`
	Phone        *string   `db:"phone" json:"phone"`
	Email        string    `db:"email" json:"email"`
	WorkingHours *string   `db:"working_hours" json:"workingHours"`
	Areas        []string  `db:"areas" json:"areas"`
}

type SocialMedia struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Facebook  *string   `db:"facebook" json:"facebook"`
	Instagram *string   `db:"instagram" json:"instagram"`
	Linkedin  *string   `db:"linkedin" json:"linkedin"`
}

type Hero struct {
	ID           uuid.UUID `db:"id" json:"id"`
	MainTitle    *string   `db:"main_title" json:"mainTitle"`
	Subtitle     *string   `db:"subtitle" json:"subtitle"`
	Highlights   []string  `db:"highlights" json:"highlights"`
	CtaPrimary   *string   `db:"cta_primary" json:"ctaPrimary"`
	CtaSecondary *string   `db:"cta_secondary" json:"ctaSecondary"`
}

type Service struct {
	ID          uuid.UUID `db:"id" json:"id"`
	SiteID      uuid.UUID `db:"site_id" json:"-"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Price       string    `db:"price" json:"price"`
}

// SiteWithRelations is a site row with every relation eagerly loaded. This is
// the shape the dashboard, the renderer and the deployment trigger consume.
type SiteWithRelations struct {
	Site
	Owner       *Owner       `json:"owner"`
	Theme       *Theme       `json:"theme"`
	Contact     *Contact     `json:"contact"`
	SocialMedia *SocialMedia `json:"socialMedia"`
	Hero        *Hero        `json:"hero"`
	Services    []Service    `json:"services"`
}
