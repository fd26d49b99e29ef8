// Package dataiku implements the local model source against the
// Dataiku DSS public API. It lists a project's saved models and
// resolves each model's currently active version.
package dataiku

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/agentstation/pubcheck/internal/transport"
	"github.com/agentstation/pubcheck/pkg/errors"
	"github.com/agentstation/pubcheck/pkg/logging"
	"github.com/agentstation/pubcheck/pkg/sources"
)

// Platform is the collaborator name used in errors and logs.
const Platform = "dataiku"

// Client implements the sources.ModelSource interface for Dataiku DSS.
type Client struct {
	baseURL    string
	projectKey string
	transport  *transport.Client
}

// Config holds the connection parameters for one DSS instance.
type Config struct {
	// BaseURL is the DSS instance URL, e.g. "https://dss.example.com".
	BaseURL string

	// APIToken authenticates against the public API. DSS expects it as
	// the basic-auth username with an empty password.
	APIToken string

	// ProjectKey scopes the saved model listing to one project.
	ProjectKey string
}

// New creates a new DSS client for one project.
func New(cfg Config, opts ...transport.Option) *Client {
	auth := &transport.BasicAuth{Username: cfg.APIToken}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		projectKey: cfg.ProjectKey,
		transport:  transport.New(auth, opts...),
	}
}

// savedModelEntry is one element of the saved model listing response.
type savedModelEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// savedModelVersion is one element of the version listing response.
type savedModelVersion struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// ListSavedModels returns every saved model entry in the project.
func (c *Client) ListSavedModels(ctx context.Context) ([]sources.SavedModelRef, error) {
	listURL := c.projectURL("savedmodels/")

	resp, err := c.transport.Get(ctx, listURL)
	if err != nil {
		return nil, &errors.APIError{
			Platform: Platform,
			Endpoint: listURL,
			Message:  "saved model listing request failed",
			Err:      err,
		}
	}

	var entries []savedModelEntry
	if err := transport.DecodeResponse(Platform, resp, &entries); err != nil {
		return nil, err
	}

	refs := make([]sources.SavedModelRef, 0, len(entries))
	for _, entry := range entries {
		refs = append(refs, sources.SavedModelRef{ID: entry.ID})
	}

	logging.Ctx(ctx).Debug().
		Str("project", c.projectKey).
		Int("models", len(refs)).
		Msg("Listed Dataiku saved models")

	return refs, nil
}

// ActiveVersion returns the version ID currently marked active for the
// given saved model. A model with no active version is a lookup
// failure, not an empty result.
func (c *Client) ActiveVersion(ctx context.Context, modelID string) (string, error) {
	versionsURL := c.projectURL(fmt.Sprintf("savedmodels/%s/versions", url.PathEscape(modelID)))

	resp, err := c.transport.Get(ctx, versionsURL)
	if err != nil {
		return "", &errors.APIError{
			Platform: Platform,
			Endpoint: versionsURL,
			Message:  "version listing request failed",
			Err:      err,
		}
	}

	var versions []savedModelVersion
	if err := transport.DecodeResponse(Platform, resp, &versions); err != nil {
		return "", err
	}

	for _, version := range versions {
		if version.Active {
			return version.ID, nil
		}
	}

	return "", &errors.LookupError{
		Resource: "active version",
		ID:       modelID,
		Err:      errors.ErrNotFound,
	}
}

// projectURL builds a public API URL scoped to the configured project.
func (c *Client) projectURL(path string) string {
	return fmt.Sprintf("%s/public/api/projects/%s/%s", c.baseURL, url.PathEscape(c.projectKey), path)
}
