// Package sources defines the collaborator interfaces the
// reconciliation run consumes (the local model source and the remote
// artifact catalog) and the collection logic that materializes their
// listings into the immutable snapshots the engine works on.
package sources

import (
	"context"

	"github.com/agentstation/pubcheck/pkg/publication"
)

// SavedModelRef is one entry of the local platform's saved model
// listing. Only the ID is carried; the active version is resolved per
// model in a second call.
type SavedModelRef struct {
	ID string
}

// ModelSource lists saved models on the internal platform and resolves
// each model's currently active version.
type ModelSource interface {
	// ListSavedModels returns every saved model entry in the configured
	// project, in the platform's listing order.
	ListSavedModels(ctx context.Context) ([]SavedModelRef, error)

	// ActiveVersion returns the version ID currently marked active for
	// the given saved model.
	ActiveVersion(ctx context.Context, modelID string) (string, error)
}

// Collection is one artifact collection of the remote registry.
type Collection struct {
	Name string
}

// ArtifactCatalog enumerates the remote registry's collections and the
// artifacts within each. Implementations handle pagination internally
// and always return complete listings.
type ArtifactCatalog interface {
	// ListCollections returns every collection in the registry.
	ListCollections(ctx context.Context) ([]Collection, error)

	// ListArtifacts returns every artifact of the named collection,
	// regardless of type.
	ListArtifacts(ctx context.Context, collection string) ([]publication.RemoteArtifact, error)
}
