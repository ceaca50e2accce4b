package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sitemint/sitemint-backend/internal/application/dto"
	"github.com/sitemint/sitemint-backend/internal/application/errs"
	"github.com/sitemint/sitemint-backend/internal/domain/consts"
	"github.com/sitemint/sitemint-backend/internal/infra/client/github"
	"github.com/sitemint/sitemint-backend/internal/infra/db"
	"github.com/sitemint/sitemint-backend/internal/infra/db/repo"
	"github.com/sitemint/sitemint-backend/internal/infra/metrics"
	dbs "github.com/sitemint/sitemint-backend/pkg/db"
)

// DeploySite pushes a site's full serialized record into its companion GitHub
// repository, creating the repository from the configured template when it
// does not exist yet, then writes the repository URL back onto the site row.
type DeploySite struct {
	uowFactory *dbs.UOWFactory
	ghClient   *github.Client
	ghConfig   github.Config
}

func NewDeploySite(factory *dbs.UOWFactory, ghClient *github.Client, ghConfig github.Config) *DeploySite {
	return &DeploySite{uowFactory: factory, ghClient: ghClient, ghConfig: ghConfig}
}

func (c *DeploySite) Execute(ctx context.Context, siteID uuid.UUID) (*dto.DeploySiteResponse, error) {
	// Fatal misconfiguration stops deployment before any network I/O.
	if err := c.ghConfig.Validate(); err != nil {
		return nil, err
	}

	site, err := c.loadSite(ctx, siteID)
	if err != nil {
		metrics.DeploysTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	repoName := consts.RepoNamePrefix + site.Subdomain
	slog.Info("ensuring repository exists", "owner", c.ghConfig.Owner, "repo", repoName)

	ghRepo, err := c.ghClient.GetRepo(ctx, repoName)
	if err != nil {
		if !errors.Is(err, github.ErrRepoNotFound) {
			metrics.DeploysTotal.WithLabelValues(metrics.OutcomeError).Inc()
			return nil, errs.DeploymentError{Err: err}
		}
		slog.Info("repository not found, creating from template",
			"repo", repoName, "template", c.ghConfig.TemplateRepo)
		ghRepo, err = c.ghClient.CreateRepoFromTemplate(ctx, repoName)
		if err != nil {
			metrics.DeploysTotal.WithLabelValues(metrics.OutcomeError).Inc()
			return nil, errs.DeploymentError{Err: err}
		}
	}

	content, err := json.MarshalIndent(site, "", "  ")
	if err != nil {
		metrics.DeploysTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, errs.DeploymentError{Err: fmt.Errorf("err serializing site record, %v", err)}
	}

	sha, err := c.ghClient.GetFileSHA(ctx, repoName, consts.ConfigFilePath)
	if err != nil {
		metrics.DeploysTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, errs.DeploymentError{Err: err}
	}

	commitMessage := "feat: update site configuration for " + site.Subdomain
	if err := c.ghClient.PutFile(ctx, repoName, consts.ConfigFilePath, commitMessage, content, sha); err != nil {
		metrics.DeploysTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, errs.DeploymentError{Err: err}
	}
	slog.Info("pushed site configuration", "repo", repoName, "path", consts.ConfigFilePath)

	// Not transactional with the repository writes above: when this save
	// fails the repository stays orphaned from the site record, so the URL
	// travels with the error for manual reconciliation.
	if err := c.saveRepoURL(ctx, siteID, ghRepo.HTMLURL); err != nil {
		metrics.DeploysTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, errs.DeploymentError{Err: err, OrphanedRepoURL: ghRepo.HTMLURL}
	}

	slog.Info("deployment finished", "siteID", siteID, "repoURL", ghRepo.HTMLURL)
	metrics.DeploysTotal.WithLabelValues(metrics.OutcomeOK).Inc()

	return &dto.DeploySiteResponse{RepoHTMLURL: ghRepo.HTMLURL}, nil
}

func (c *DeploySite) loadSite(ctx context.Context, siteID uuid.UUID) (site *db.SiteWithRelations, err error) {
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

func (c *DeploySite) saveRepoURL(ctx context.Context, siteID uuid.UUID, repoURL string) (err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	_, err = tx.Exec(ctx, "UPDATE sitemint.sites SET github_repo_url = $1 WHERE id = $2", repoURL, siteID)
	return err
}
