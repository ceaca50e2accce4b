package dto

// SiteConfig is the canonical shape of a tenant site as produced by the
// extraction pipeline and consumed by the save path. Relation pointers are
// nil when the source page gave nothing to fill them with.
type SiteConfig struct {
	Subdomain   string            `json:"subdomain"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Owner       *OwnerInput       `json:"owner,omitempty"`
	Theme       *ThemeInput       `json:"theme,omitempty"`
	Contact     *ContactInput     `json:"contact,omitempty"`
	Services    []ServiceInput    `json:"services"`
	SocialMedia *SocialMediaInput `json:"socialMedia,omitempty"`
	Hero        *HeroInput        `json:"hero,omitempty"`
}

type OwnerInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

type ThemeInput struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
}

type ContactInput struct {
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Email        *string  `json:"email,omitempty"`
	WorkingHours *string  `json:"workingHours,omitempty"`
	Areas        []string `json:"areas,omitempty"`
}

type ServiceInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       *string `json:"price,omitempty"`
}

type SocialMediaInput struct {
	Facebook  *string `json:"facebook,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	Linkedin  *string `json:"linkedin,omitempty"`
}

type HeroInput struct {
	MainTitle    *string  `json:"mainTitle,omitempty"`
	Subtitle     *string  `json:"subtitle,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
	CtaPrimary   *string  `json:"ctaPrimary,omitempty"`
	CtaSecondary *string  `json:"ctaSecondary,omitempty"`
}

// UpdateSiteRequest is the dashboard's sparse payload. Scalar pointers follow
// present-overwrite semantics; relation fields are tri-state (see Patch).
type UpdateSiteRequest struct {
	Name             *string                 `json:"name"`
	Description      *string                 `json:"description"`
	Subdomain        *string                 `json:"subdomain"`
	GithubRepoURL    Patch[string]           `json:"githubRepoUrl"`
	VercelProjectURL Patch[string]           `json:"vercelProjectUrl"`
	Owner            Patch[OwnerInput]       `json:"owner"`
	Contact          Patch[ContactInput]     `json:"contact"`
	SocialMedia      Patch[SocialMediaInput] `json:"socialMedia"`
	Hero             Patch[HeroInput]        `json:"hero"`
}

type ScrapeSiteRequest struct {
	URL  string `json:"url"`
	Save bool   `json:"save"`
}

type DeploySiteResponse struct {
	RepoHTMLURL string `json:"repoHtmlUrl"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ResultResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
