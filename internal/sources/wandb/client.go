// Package wandb implements the remote artifact catalog against the
// Weights & Biases GraphQL API. It enumerates the entity's registry
// collections and the artifacts within each, following pagination
// cursors until every listing is exhausted.
package wandb

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/agentstation/pubcheck/internal/transport"
	"github.com/agentstation/pubcheck/pkg/errors"
	"github.com/agentstation/pubcheck/pkg/logging"
	"github.com/agentstation/pubcheck/pkg/publication"
	"github.com/agentstation/pubcheck/pkg/sources"
)

// Platform is the collaborator name used in errors and logs.
const Platform = "wandb"

// DefaultBaseURL is the public W&B API endpoint.
const DefaultBaseURL = "https://api.wandb.ai"

// pageSize is the number of edges requested per GraphQL page.
const pageSize = 100

// basicAuthUser is the fixed basic-auth username the W&B API expects;
// the API key travels as the password.
const basicAuthUser = "api"

// Client implements the sources.ArtifactCatalog interface for W&B.
type Client struct {
	baseURL   string
	entity    string
	transport *transport.Client
}

// Config holds the connection parameters for the W&B API.
type Config struct {
	// BaseURL overrides the public API endpoint; empty means
	// DefaultBaseURL.
	BaseURL string

	// APIKey authenticates against the API.
	APIKey string

	// Entity is the organization or user whose registry is enumerated.
	Entity string
}

// New creates a new W&B client.
func New(cfg Config, opts ...transport.Option) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	auth := &transport.BasicAuth{Username: basicAuthUser, Password: cfg.APIKey}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		entity:    cfg.Entity,
		transport: transport.New(auth, opts...),
	}
}

// collectionsQuery pages through the entity's artifact collections.
const collectionsQuery = `
query ArtifactCollections($entity: String!, $first: Int!, $after: String) {
  entity(name: $entity) {
    artifactCollections(first: $first, after: $after) {
      edges { node { name } }
      pageInfo { endCursor hasNextPage }
    }
  }
}`

// artifactsQuery pages through one collection's artifacts.
const artifactsQuery = `
query CollectionArtifacts($entity: String!, $collection: String!, $first: Int!, $after: String) {
  entity(name: $entity) {
    artifactCollection(name: $collection) {
      artifacts(first: $first, after: $after) {
        edges {
          node {
            sourceName
            qualifiedName
            artifactType { name }
          }
        }
        pageInfo { endCursor hasNextPage }
      }
    }
  }
}`

// pageInfo is the relay-style pagination cursor.
type pageInfo struct {
	EndCursor   string `json:"endCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

// collectionsData is the response shape of collectionsQuery.
type collectionsData struct {
	Entity struct {
		ArtifactCollections struct {
			Edges []struct {
				Node struct {
					Name string `json:"name"`
				} `json:"node"`
			} `json:"edges"`
			PageInfo pageInfo `json:"pageInfo"`
		} `json:"artifactCollections"`
	} `json:"entity"`
}

// artifactsData is the response shape of artifactsQuery.
type artifactsData struct {
	Entity struct {
		ArtifactCollection struct {
			Artifacts struct {
				Edges []struct {
					Node struct {
						SourceName    string `json:"sourceName"`
						QualifiedName string `json:"qualifiedName"`
						ArtifactType  struct {
							Name string `json:"name"`
						} `json:"artifactType"`
					} `json:"node"`
				} `json:"edges"`
				PageInfo pageInfo `json:"pageInfo"`
			} `json:"artifacts"`
		} `json:"artifactCollection"`
	} `json:"entity"`
}

// ListCollections returns every artifact collection of the entity.
func (c *Client) ListCollections(ctx context.Context) ([]sources.Collection, error) {
	var collections []sources.Collection

	cursor := ""
	for {
		var data collectionsData
		err := c.query(ctx, collectionsQuery, map[string]any{
			"entity": c.entity,
			"first":  pageSize,
			"after":  cursorVariable(cursor),
		}, &data)
		if err != nil {
			return nil, err
		}

		page := data.Entity.ArtifactCollections
		for _, edge := range page.Edges {
			collections = append(collections, sources.Collection{Name: edge.Node.Name})
		}

		if !page.PageInfo.HasNextPage {
			break
		}
		cursor = page.PageInfo.EndCursor
	}

	logging.Ctx(ctx).Debug().
		Str("entity", c.entity).
		Int("collections", len(collections)).
		Msg("Listed W&B artifact collections")

	return collections, nil
}

// ListArtifacts returns every artifact of the named collection,
// regardless of type. Type filtering belongs to the collector.
func (c *Client) ListArtifacts(ctx context.Context, collection string) ([]publication.RemoteArtifact, error) {
	var artifacts []publication.RemoteArtifact

	cursor := ""
	for {
		var data artifactsData
		err := c.query(ctx, artifactsQuery, map[string]any{
			"entity":     c.entity,
			"collection": collection,
			"first":      pageSize,
			"after":      cursorVariable(cursor),
		}, &data)
		if err != nil {
			return nil, err
		}

		page := data.Entity.ArtifactCollection.Artifacts
		for _, edge := range page.Edges {
			artifacts = append(artifacts, publication.RemoteArtifact{
				Collection:    collection,
				SourceName:    edge.Node.SourceName,
				QualifiedName: edge.Node.QualifiedName,
				Type:          edge.Node.ArtifactType.Name,
			})
		}

		if !page.PageInfo.HasNextPage {
			break
		}
		cursor = page.PageInfo.EndCursor
	}

	return artifacts, nil
}

// graphqlRequest is the POST body of a GraphQL call.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// graphqlResponse is the GraphQL response envelope.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// query executes one GraphQL call and decodes its data into target.
func (c *Client) query(ctx context.Context, query string, variables map[string]any, target any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return errors.WrapParse("json", "graphql request", err)
	}

	endpoint := c.baseURL + "/graphql"
	resp, err := c.transport.Post(ctx, endpoint, body)
	if err != nil {
		return &errors.APIError{
			Platform: Platform,
			Endpoint: endpoint,
			Message:  "graphql request failed",
			Err:      err,
		}
	}

	var envelope graphqlResponse
	if err := transport.DecodeResponse(Platform, resp, &envelope); err != nil {
		return err
	}

	if len(envelope.Errors) > 0 {
		return &errors.APIError{
			Platform: Platform,
			Endpoint: endpoint,
			Message:  envelope.Errors[0].Message,
		}
	}

	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return errors.WrapParse("json", "graphql data", err)
	}

	return nil
}

// cursorVariable maps the empty first-page cursor to a GraphQL null.
func cursorVariable(cursor string) any {
	if cursor == "" {
		return nil
	}
	return cursor
}
