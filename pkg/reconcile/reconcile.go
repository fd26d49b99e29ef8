// Package reconcile implements the reconciliation engine: it pairs
// local saved models with the remote artifacts that represent a
// publication of them and classifies each model as published or not.
//
// Matching is substring containment: an artifact is a candidate match
// for a model iff the model's canonical identifier occurs anywhere in
// the artifact's source name. The rule is unanchored on purpose so an
// artifact name carrying a registry version suffix ("...:v0", "...:v1")
// still matches. All candidates are kept; a model may have been
// published more than once.
package reconcile

import (
	"strings"

	"github.com/agentstation/pubcheck/pkg/publication"
)

// Reconcile computes, for every local model, the subset of collected
// artifacts whose source name contains the model's identifier, in
// collection order. It is stateless and side-effect-free: both inputs
// are read-only snapshots and the full artifact set must already be
// materialized before the first model is matched.
//
// A model with zero matches yields Published == false and an empty
// match list; that is a normal outcome, not an error. Empty inputs are
// valid: no models yields no results, and no artifacts yields one
// unpublished result per model.
func Reconcile(locals []publication.LocalModel, artifacts []publication.RemoteArtifact) []Result {
	results := make([]Result, 0, len(locals))

	for _, model := range locals {
		identifier := model.Identifier()

		var matches []publication.RemoteArtifact
		for _, artifact := range artifacts {
			if strings.Contains(artifact.SourceName, identifier) {
				matches = append(matches, artifact)
			}
		}

		results = append(results, Result{
			Model:      model,
			Identifier: identifier,
			Matches:    matches,
			Published:  len(matches) > 0,
		})
	}

	return results
}
