package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sitemint/sitemint-backend/internal/infra/db"
)

func TestBuildSiteViewAppliesThemeDefaults(t *testing.T) {
	view := buildSiteView(&db.SiteWithRelations{
		Site: db.Site{Name: "Nord Snekker AS", Description: "Snekker i Tromsø"},
	})

	require.Equal(t, "#1f2937", view.Primary)
	require.Equal(t, "#6b7280", view.Secondary)
	require.Equal(t, "Nord Snekker AS", view.HeroTitle)
	require.False(t, view.HasContact)
}

func TestBuildSiteViewUsesStoredTheme(t *testing.T) {
	view := buildSiteView(&db.SiteWithRelations{
		Site:  db.Site{Name: "Nord Snekker AS"},
		Theme: &db.Theme{PrimaryColor: "#112233", SecondaryColor: "#445566"},
	})

	require.Equal(t, "#112233", view.Primary)
	require.Equal(t, "#445566", view.Secondary)
}

func TestBuildSiteViewHeroFallsBackToSiteName(t *testing.T) {
	subtitle := "Kvalitet siden 1998"
	view := buildSiteView(&db.SiteWithRelations{
		Site: db.Site{Name: "Nord Snekker AS"},
		Hero: &db.Hero{Subtitle: &subtitle, Highlights: []string{"Gratis befaring"}},
	})

	require.Equal(t, "Nord Snekker AS", view.HeroTitle)
	require.Equal(t, "Kvalitet siden 1998", view.HeroSubtitle)
	require.Equal(t, []string{"Gratis befaring"}, view.Highlights)
}

func TestBuildSiteViewContactAreasLine(t *testing.T) {
	phone := "+47 123 45 678"
	view := buildSiteView(&db.SiteWithRelations{
		Site: db.Site{Name: "Nord Snekker AS"},
		Contact: &db.Contact{
			Phone: &phone,
			Email: "post@nordsnekker.no",
			Areas: []string{"Tromsø", "Balsfjord"},
		},
	})

	require.True(t, view.HasContact)
	require.Equal(t, "Vi dekker Tromsø, Balsfjord", view.AreasLine)
	require.Equal(t, "post@nordsnekker.no", view.ContactEmail)
}
