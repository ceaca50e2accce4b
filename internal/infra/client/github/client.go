package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrRepoNotFound marks the expected 404 on the repository existence check.
var ErrRepoNotFound = errors.New("repository not found")

type Repository struct {
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

type fileContent struct {
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

type apiError struct {
	Message string `json:"message"`
}

type Client struct {
	httpClient *resty.Client
	cfg        Config
}

func NewClient(cfg Config) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30 * time.Second).
		SetAuthToken(cfg.Token).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("X-GitHub-Api-Version", "2022-11-28")

	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

// GetRepo checks repository existence by owner+name. A 404 comes back as
// ErrRepoNotFound so callers can branch into template creation.
func (c *Client) GetRepo(ctx context.Context, name string) (*Repository, error) {
	var repo Repository
	var apiErr apiError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&repo).
		SetError(&apiErr).
		Get(fmt.Sprintf("/repos/%s/%s", c.cfg.Owner, name))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrRepoNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get repo %v: status %d, %v", name, resp.StatusCode(), apiErr.Message)
	}
	return &repo, nil
}

// CreateRepoFromTemplate generates a private repository from the configured
// template.
func (c *Client) CreateRepoFromTemplate(ctx context.Context, name string) (*Repository, error) {
	var repo Repository
	var apiErr apiError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"owner":                c.cfg.Owner,
			"name":                 name,
			"private":              true,
			"include_all_branches": false,
		}).
		SetResult(&repo).
		SetError(&apiErr).
		Post(fmt.Sprintf("/repos/%s/%s/generate", c.cfg.Owner, c.cfg.TemplateRepo))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create repo %v from template %v: status %d, %v",
			name, c.cfg.TemplateRepo, resp.StatusCode(), apiErr.Message)
	}
	return &repo, nil
}

// GetFileSHA returns the content hash needed to update an existing file, or
// empty when the file does not exist yet.
func (c *Client) GetFileSHA(ctx context.Context, repo, path string) (string, error) {
	var file fileContent
	var apiErr apiError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&file).
		SetError(&apiErr).
		Get(fmt.Sprintf("/repos/%s/%s/contents/%s", c.cfg.Owner, repo, path))
	if err != nil {
		return "", err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", nil
	}
	if resp.IsError() {
		return "", fmt.Errorf("get contents %v/%v: status %d, %v", repo, path, resp.StatusCode(), apiErr.Message)
	}
	if file.Type != "file" {
		return "", fmt.Errorf("contents %v/%v is not a file", repo, path)
	}
	return file.SHA, nil
}

// PutFile creates or updates a file. sha must be the current content hash
// when the file exists, empty when it is being created.
func (c *Client) PutFile(ctx context.Context, repo, path, message string, content []byte, sha string) error {
	body := map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
	}
	if sha != "" {
		body["sha"] = sha
	}

	var apiErr apiError
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetError(&apiErr).
		Put(fmt.Sprintf("/repos/%s/%s/contents/%s", c.cfg.Owner, repo, path))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("put contents %v/%v: status %d, %v", repo, path, resp.StatusCode(), apiErr.Message)
	}
	return nil
}
