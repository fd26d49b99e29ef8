package dataiku

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pubcheck/pkg/errors"
	"github.com/agentstation/pubcheck/pkg/sources"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(Config{
		BaseURL:    server.URL,
		APIToken:   "dss-token",
		ProjectKey: "ML_PROJECT",
	})
	return client, server
}

func TestListSavedModels(t *testing.T) {
	var gotPath, gotUser string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, _, _ = r.BasicAuth()
		_, _ = w.Write([]byte(`[
			{"id": "m1", "name": "Churn Model", "type": "PREDICTION"},
			{"id": "m2", "name": "Fraud Model", "type": "PREDICTION"}
		]`))
	}))

	refs, err := client.ListSavedModels(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/public/api/projects/ML_PROJECT/savedmodels/", gotPath)
	assert.Equal(t, "dss-token", gotUser)
	assert.Equal(t, []sources.SavedModelRef{{ID: "m1"}, {ID: "m2"}}, refs)
}

func TestListSavedModelsEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	refs, err := client.ListSavedModels(context.Background())

	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestListSavedModelsUnauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))

	_, err := client.ListSavedModels(context.Background())

	require.Error(t, err)
	var authErr *errors.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, Platform, authErr.Platform)
}

func TestActiveVersion(t *testing.T) {
	var gotPath string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[
			{"id": "v40", "active": false},
			{"id": "v42", "active": true},
			{"id": "v41", "active": false}
		]`))
	}))

	versionID, err := client.ActiveVersion(context.Background(), "m1")

	require.NoError(t, err)
	assert.Equal(t, "/public/api/projects/ML_PROJECT/savedmodels/m1/versions", gotPath)
	assert.Equal(t, "v42", versionID)
}

func TestActiveVersionNoneActive(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "v40", "active": false}]`))
	}))

	_, err := client.ActiveVersion(context.Background(), "m1")

	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	var lookupErr *errors.LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "m1", lookupErr.ID)
}

func TestActiveVersionServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.ActiveVersion(context.Background(), "m1")

	require.Error(t, err)
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}
