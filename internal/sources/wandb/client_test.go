package wandb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pubcheck/pkg/errors"
	"github.com/agentstation/pubcheck/pkg/sources"
)

// decodeRequest pulls the query and variables out of a GraphQL call.
func decodeRequest(t *testing.T, r *http.Request) (string, map[string]any) {
	t.Helper()
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
	return req.Query, req.Variables
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(Config{
		BaseURL: server.URL,
		APIKey:  "wandb-key",
		Entity:  "acme",
	})
}

func TestListCollectionsPaginates(t *testing.T) {
	var gotUser, gotPass string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		_, variables := decodeRequest(t, r)

		assert.Equal(t, "acme", variables["entity"])

		// Two pages: nil cursor then "page2".
		page := `{
			"data": {"entity": {"artifactCollections": {
				"edges": [{"node": {"name": "collection-a"}}, {"node": {"name": "collection-b"}}],
				"pageInfo": {"endCursor": "page2", "hasNextPage": true}
			}}}
		}`
		if cursor, ok := variables["after"].(string); ok && cursor == "page2" {
			page = `{
				"data": {"entity": {"artifactCollections": {
					"edges": [{"node": {"name": "collection-c"}}],
					"pageInfo": {"endCursor": "", "hasNextPage": false}
				}}}
			}`
		}
		_, _ = w.Write([]byte(page))
	}))

	collections, err := client.ListCollections(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "api", gotUser)
	assert.Equal(t, "wandb-key", gotPass)
	assert.Equal(t, []sources.Collection{
		{Name: "collection-a"},
		{Name: "collection-b"},
		{Name: "collection-c"},
	}, collections)
}

func TestListArtifacts(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query, variables := decodeRequest(t, r)

		require.True(t, strings.Contains(query, "CollectionArtifacts"))
		assert.Equal(t, "registered-models", variables["collection"])

		_, _ = w.Write([]byte(`{
			"data": {"entity": {"artifactCollection": {"artifacts": {
				"edges": [
					{"node": {
						"sourceName": "dataiku-m1-v42:v0",
						"qualifiedName": "acme/registry/dataiku-m1-v42:v0",
						"artifactType": {"name": "model"}
					}},
					{"node": {
						"sourceName": "training-set:v3",
						"qualifiedName": "acme/registry/training-set:v3",
						"artifactType": {"name": "dataset"}
					}}
				],
				"pageInfo": {"endCursor": "", "hasNextPage": false}
			}}}}
		}`))
	}))

	artifacts, err := client.ListArtifacts(context.Background(), "registered-models")

	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	// The catalog returns everything; type filtering is the
	// collector's job.
	assert.Equal(t, "registered-models", artifacts[0].Collection)
	assert.Equal(t, "dataiku-m1-v42:v0", artifacts[0].SourceName)
	assert.Equal(t, "acme/registry/dataiku-m1-v42:v0", artifacts[0].QualifiedName)
	assert.Equal(t, "model", artifacts[0].Type)
	assert.Equal(t, "dataset", artifacts[1].Type)
}

func TestListArtifactsPaginates(t *testing.T) {
	calls := 0

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, variables := decodeRequest(t, r)
		calls++

		cursor, _ := variables["after"].(string)
		hasNext := cursor == ""
		name := fmt.Sprintf("dataiku-m%d-v1:v0", calls)

		fmt.Fprintf(w, `{
			"data": {"entity": {"artifactCollection": {"artifacts": {
				"edges": [{"node": {
					"sourceName": %q,
					"qualifiedName": "acme/registry/%s",
					"artifactType": {"name": "model"}
				}}],
				"pageInfo": {"endCursor": "next", "hasNextPage": %t}
			}}}}
		}`, name, name, hasNext)
	}))

	artifacts, err := client.ListArtifacts(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "dataiku-m1-v1:v0", artifacts[0].SourceName)
	assert.Equal(t, "dataiku-m2-v1:v0", artifacts[1].SourceName)
}

func TestGraphQLErrorBecomesAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": null, "errors": [{"message": "entity not found"}]}`))
	}))

	_, err := client.ListCollections(context.Background())

	require.Error(t, err)
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, Platform, apiErr.Platform)
	assert.Contains(t, apiErr.Message, "entity not found")
}

func TestUnauthorized(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))

	_, err := client.ListCollections(context.Background())

	require.Error(t, err)
	var authErr *errors.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, Platform, authErr.Platform)
}

func TestDefaultBaseURL(t *testing.T) {
	client := New(Config{APIKey: "key", Entity: "acme"})
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
