package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatchAbsentFieldIsUnset(t *testing.T) {
	var req UpdateSiteRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ny Bedrift"}`), &req))

	require.True(t, req.Contact.IsUnset())
	require.False(t, req.Contact.IsRemove())
	_, ok := req.Contact.Get()
	require.False(t, ok)
}

func TestPatchExplicitNullIsRemove(t *testing.T) {
	var req UpdateSiteRequest
	require.NoError(t, json.Unmarshal([]byte(`{"contact":null}`), &req))

	require.False(t, req.Contact.IsUnset())
	require.True(t, req.Contact.IsRemove())
	_, ok := req.Contact.Get()
	require.False(t, ok)
}

func TestPatchObjectIsUpsert(t *testing.T) {
	var req UpdateSiteRequest
	require.NoError(t, json.Unmarshal([]byte(`{"contact":{"email":"post@example.no"}}`), &req))

	require.False(t, req.Contact.IsUnset())
	require.False(t, req.Contact.IsRemove())
	contact, ok := req.Contact.Get()
	require.True(t, ok)
	require.NotNil(t, contact.Email)
	require.Equal(t, "post@example.no", *contact.Email)
}

func TestPatchScalarString(t *testing.T) {
	var req UpdateSiteRequest
	require.NoError(t, json.Unmarshal([]byte(`{"githubRepoUrl":"https://github.com/acme/site-example"}`), &req))

	url, ok := req.GithubRepoURL.Get()
	require.True(t, ok)
	require.Equal(t, "https://github.com/acme/site-example", *url)
}

func TestPatchMarshalRoundTrip(t *testing.T) {
	set := PatchOf("hello")
	data, err := json.Marshal(set)
	require.NoError(t, err)
	require.JSONEq(t, `"hello"`, string(data))

	removed := PatchRemove[string]()
	data, err = json.Marshal(removed)
	require.NoError(t, err)
	require.Equal(t, "null", string(data))
}
