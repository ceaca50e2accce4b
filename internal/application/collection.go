package application

import (
	"github.com/sitemint/sitemint-backend/internal/application/commands"
	"github.com/sitemint/sitemint-backend/internal/application/query"
)

type Handlers struct {
	ScrapeSite *commands.ScrapeSite
	SaveConfig *commands.SaveConfig
	UpdateSite *commands.UpdateSite
	DeleteSite *commands.DeleteSite
	DeploySite *commands.DeploySite
	GetSite    *query.GetSite
	ListSites  *query.ListSites
}
