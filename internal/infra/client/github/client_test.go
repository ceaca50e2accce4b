package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		Token:        "test-token",
		Owner:        "acme",
		TemplateRepo: "site-template",
		BaseURL:      server.URL,
	})
}

func TestGetRepoReturnsRepository(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/acme/site-nordsnekker", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Repository{
			Name:    "site-nordsnekker",
			HTMLURL: "https://github.com/acme/site-nordsnekker",
		})
	})

	repo, err := client.GetRepo(context.Background(), "site-nordsnekker")
	require.NoError(t, err)
	require.Equal(t, "https://github.com/acme/site-nordsnekker", repo.HTMLURL)
}

func TestGetRepoMissingIsSentinel(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetRepo(context.Background(), "site-missing")
	require.ErrorIs(t, err, ErrRepoNotFound)
}

func TestCreateRepoFromTemplate(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/repos/acme/site-template/generate", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "site-nordsnekker", body["name"])
		require.Equal(t, true, body["private"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Repository{
			Name:    "site-nordsnekker",
			HTMLURL: "https://github.com/acme/site-nordsnekker",
		})
	})

	repo, err := client.CreateRepoFromTemplate(context.Background(), "site-nordsnekker")
	require.NoError(t, err)
	require.Equal(t, "site-nordsnekker", repo.Name)
}

func TestGetFileSHAMissingFile(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	sha, err := client.GetFileSHA(context.Background(), "site-nordsnekker", "site-config.json")
	require.NoError(t, err)
	require.Empty(t, sha)
}

func TestGetFileSHAExistingFile(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/acme/site-nordsnekker/contents/site-config.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"type": "file", "sha": "abc123"})
	})

	sha, err := client.GetFileSHA(context.Background(), "site-nordsnekker", "site-config.json")
	require.NoError(t, err)
	require.Equal(t, "abc123", sha)
}

func TestPutFileEncodesContentAndSendsSHA(t *testing.T) {
	content := []byte(`{"subdomain":"nordsnekker"}`)
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, base64.StdEncoding.EncodeToString(content), body["content"])
		require.Equal(t, "abc123", body["sha"])

		w.WriteHeader(http.StatusOK)
	})

	err := client.PutFile(context.Background(), "site-nordsnekker", "site-config.json",
		"feat: update site configuration for nordsnekker", content, "abc123")
	require.NoError(t, err)
}

func TestPutFileOmitsSHAOnCreate(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasSHA := body["sha"]
		require.False(t, hasSHA)

		w.WriteHeader(http.StatusCreated)
	})

	err := client.PutFile(context.Background(), "site-nordsnekker", "site-config.json",
		"feat: add site configuration", []byte("{}"), "")
	require.NoError(t, err)
}
