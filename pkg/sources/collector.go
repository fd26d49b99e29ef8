package sources

import (
	"context"

	"github.com/agentstation/pubcheck/pkg/errors"
	"github.com/agentstation/pubcheck/pkg/logging"
	"github.com/agentstation/pubcheck/pkg/publication"
)

// CollectArtifacts materializes the complete set of model-typed
// artifacts across every collection in the registry, exactly once per
// run. Non-model artifacts are filtered out here, before any matching
// occurs. Order follows the registry's enumeration order.
//
// Any enumeration failure aborts collection with a CollectionError
// naming the failing call; no partial artifact set is returned.
func CollectArtifacts(ctx context.Context, catalog ArtifactCatalog) ([]publication.RemoteArtifact, error) {
	log := logging.Ctx(ctx)

	collections, err := catalog.ListCollections(ctx)
	if err != nil {
		return nil, errors.WrapCollection("list collections", "", err)
	}

	var artifacts []publication.RemoteArtifact
	for _, collection := range collections {
		entries, err := catalog.ListArtifacts(ctx, collection.Name)
		if err != nil {
			return nil, errors.WrapCollection("list artifacts", collection.Name, err)
		}

		for _, artifact := range entries {
			if !artifact.IsModelType() {
				continue
			}
			artifacts = append(artifacts, artifact)
		}
	}

	log.Debug().
		Int("collections", len(collections)).
		Int("model_artifacts", len(artifacts)).
		Msg("Collected remote artifact catalog")

	return artifacts, nil
}

// ResolveModels lists the local platform's saved models and resolves
// each one's active version, yielding the LocalModel snapshots the
// engine reconciles. A failure to resolve any model's active version
// is fatal; every model's identifier must be computable before
// matching starts.
func ResolveModels(ctx context.Context, source ModelSource) ([]publication.LocalModel, error) {
	log := logging.Ctx(ctx)

	refs, err := source.ListSavedModels(ctx)
	if err != nil {
		return nil, errors.WrapLookup("saved models", "", err)
	}

	models := make([]publication.LocalModel, 0, len(refs))
	for _, ref := range refs {
		versionID, err := source.ActiveVersion(ctx, ref.ID)
		if err != nil {
			return nil, errors.WrapLookup("active version", ref.ID, err)
		}
		models = append(models, publication.LocalModel{
			ID:              ref.ID,
			ActiveVersionID: versionID,
		})
	}

	log.Debug().
		Int("models", len(models)).
		Msg("Resolved local saved models")

	return models, nil
}
