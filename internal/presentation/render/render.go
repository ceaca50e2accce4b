package render

import (
	"embed"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/sitemint/sitemint-backend/internal/application/errs"
	"github.com/sitemint/sitemint-backend/internal/application/query"
	"github.com/sitemint/sitemint-backend/internal/infra/db"
	"github.com/sitemint/sitemint-backend/internal/infra/metrics"
)

//go:embed views/*.html
var viewsFS embed.FS

// NewEngine builds the fiber view engine over the embedded templates.
func NewEngine() *html.Engine {
	return html.NewFileSystem(http.FS(viewsFS), ".html")
}

// SiteRenderer serves the public marketing page for a resolved subdomain.
type SiteRenderer struct {
	getSite *query.GetSite
}

func NewSiteRenderer(getSite *query.GetSite) *SiteRenderer {
	return &SiteRenderer{getSite: getSite}
}

func (r *SiteRenderer) RenderSite(c *fiber.Ctx) error {
	subdomain := c.Params("subdomain")

	site, err := r.getSite.BySubdomain(c.Context(), subdomain)
	if err != nil {
		var notFound errs.NotFound
		if errors.As(err, &notFound) {
			metrics.RendersTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
			return c.Status(fiber.StatusNotFound).Render("views/notfound", fiber.Map{
				"Subdomain": subdomain,
			})
		}
		metrics.RendersTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return err
	}

	metrics.RendersTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	return c.Render("views/site", buildSiteView(site))
}

// siteView flattens the loaded record so templates only see plain strings.
// Empty string means "omit the fragment".
type siteView struct {
	Name         string
	Description  string
	Primary      string
	Secondary    string
	HeroTitle    string
	HeroSubtitle string
	Highlights   []string
	CtaPrimary   string
	CtaSecondary string
	Services     []db.Service
	HasContact   bool
	Address      string
	City         string
	ContactPhone string
	ContactEmail string
	WorkingHours string
	AreasLine    string
	Facebook     string
	Instagram    string
	Linkedin     string
	Year         int
}

func buildSiteView(site *db.SiteWithRelations) siteView {
	view := siteView{
		Name:        site.Name,
		Description: site.Description,
		Primary:     "#1f2937",
		Secondary:   "#6b7280",
		HeroTitle:   site.Name,
		Services:    site.Services,
		Year:        time.Now().Year(),
	}
	if site.Theme != nil {
		view.Primary = site.Theme.PrimaryColor
		view.Secondary = site.Theme.SecondaryColor
	}
	if hero := site.Hero; hero != nil {
		view.HeroTitle = deref(hero.MainTitle, site.Name)
		view.HeroSubtitle = deref(hero.Subtitle, "")
		view.Highlights = hero.Highlights
		view.CtaPrimary = deref(hero.CtaPrimary, "")
		view.CtaSecondary = deref(hero.CtaSecondary, "")
	}
	if contact := site.Contact; contact != nil {
		view.HasContact = true
		view.Address = deref(contact.Address, "")
		view.City = deref(contact.City, "")
		view.ContactPhone = deref(contact.Phone, "")
		view.ContactEmail = contact.Email
		view.WorkingHours = deref(contact.WorkingHours, "")
		if len(contact.Areas) > 0 {
			view.AreasLine = "Vi dekker " + strings.Join(contact.Areas, ", ")
		}
	}
	if social := site.SocialMedia; social != nil {
		view.Facebook = deref(social.Facebook, "")
		view.Instagram = deref(social.Instagram, "")
		view.Linkedin = deref(social.Linkedin, "")
	}
	return view
}

func deref(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}
