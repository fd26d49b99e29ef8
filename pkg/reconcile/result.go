package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/pubcheck/pkg/publication"
)

// Result is the reconciliation outcome for a single local model.
type Result struct {
	// Model is the local model this result refers to.
	Model publication.LocalModel `json:"model" yaml:"model"`

	// Identifier is the canonical matching key derived from the model.
	Identifier string `json:"identifier" yaml:"identifier"`

	// Matches holds every artifact whose source name contains the
	// identifier, in the order the artifacts were collected.
	Matches []publication.RemoteArtifact `json:"matches" yaml:"matches"`

	// Published is true iff Matches is non-empty.
	Published bool `json:"published" yaml:"published"`
}

// Summary is the aggregate publication verdict over a full run.
type Summary struct {
	// RunID correlates the summary with the run's log lines.
	RunID string `json:"run_id" yaml:"run_id"`

	// Results holds one entry per local model, in source listing order.
	Results []Result `json:"results" yaml:"results"`

	// AnyPublished is the OR over all results' Published flags. It is
	// the sole quantity the failure policy acts on.
	AnyPublished bool `json:"any_published" yaml:"any_published"`

	// ModelsChecked and ArtifactsScanned describe the run's inputs.
	ModelsChecked    int `json:"models_checked" yaml:"models_checked"`
	ArtifactsScanned int `json:"artifacts_scanned" yaml:"artifacts_scanned"`

	// Duration of the full run, collection included.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Summarize folds a result list into a Summary. AnyPublished is true
// iff at least one result has a non-empty match list.
func Summarize(runID string, results []Result, artifactsScanned int, duration time.Duration) Summary {
	summary := Summary{
		RunID:            runID,
		Results:          results,
		ModelsChecked:    len(results),
		ArtifactsScanned: artifactsScanned,
		Duration:         duration,
	}

	for _, result := range results {
		if result.Published {
			summary.AnyPublished = true
			break
		}
	}

	return summary
}

// PublishedCount returns the number of models with at least one match.
func (s Summary) PublishedCount() int {
	count := 0
	for _, result := range s.Results {
		if result.Published {
			count++
		}
	}
	return count
}

// String returns a one-line human-readable account of the run.
func (s Summary) String() string {
	if s.ModelsChecked == 0 {
		return "No saved models found; nothing to check."
	}
	return fmt.Sprintf("%d of %d saved models published (%d artifacts scanned)",
		s.PublishedCount(), s.ModelsChecked, s.ArtifactsScanned)
}

// Report renders a detailed multi-line account of every result, in the
// order the models were listed.
func (s Summary) Report() string {
	var b strings.Builder

	for _, result := range s.Results {
		fmt.Fprintf(&b, "Saved model %s (identifier %s)\n", result.Model.ID, result.Identifier)

		if !result.Published {
			b.WriteString("  not published\n")
			continue
		}

		for _, artifact := range result.Matches {
			version, ok := artifact.Version()
			if !ok {
				version = "-"
			}
			fmt.Fprintf(&b, "  published as %s (base %s, version %s) at %s [collection %s]\n",
				artifact.SourceName, artifact.BaseName(), version,
				artifact.QualifiedName, artifact.Collection)
		}
	}

	b.WriteString(s.String())
	b.WriteString("\n")

	return b.String()
}
