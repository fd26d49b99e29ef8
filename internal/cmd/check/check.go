// Package check orchestrates a single reconciliation run: it builds
// the two platform clients from validated configuration, gathers both
// snapshots, hands them to the reconciliation engine, and applies the
// failure policy to the verdict.
package check

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/pubcheck/internal/config"
	"github.com/agentstation/pubcheck/internal/sources/dataiku"
	"github.com/agentstation/pubcheck/internal/sources/wandb"
	"github.com/agentstation/pubcheck/pkg/errors"
	"github.com/agentstation/pubcheck/pkg/logging"
	"github.com/agentstation/pubcheck/pkg/publication"
	"github.com/agentstation/pubcheck/pkg/reconcile"
	"github.com/agentstation/pubcheck/pkg/sources"
)

// Runner executes reconciliation runs against a fixed pair of
// collaborators. Each Run builds fresh snapshots; no state is carried
// between runs.
type Runner struct {
	cfg     *config.Config
	source  sources.ModelSource
	catalog sources.ArtifactCatalog
}

// NewRunner builds a Runner and its platform clients from a validated
// configuration.
func NewRunner(cfg *config.Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dssOpts, err := cfg.DataikuTransportOptions()
	if err != nil {
		return nil, err
	}

	source := dataiku.New(dataiku.Config{
		BaseURL:    cfg.Dataiku.URL,
		APIToken:   cfg.Dataiku.APIToken,
		ProjectKey: cfg.Dataiku.ProjectKey,
	}, dssOpts...)

	catalog := wandb.New(wandb.Config{
		BaseURL: cfg.Wandb.BaseURL,
		APIKey:  cfg.Wandb.APIKey,
		Entity:  cfg.Wandb.Entity,
	})

	return &Runner{cfg: cfg, source: source, catalog: catalog}, nil
}

// NewRunnerWith builds a Runner around explicit collaborators. Used by
// tests to substitute fakes for the platform clients.
func NewRunnerWith(cfg *config.Config, source sources.ModelSource, catalog sources.ArtifactCatalog) *Runner {
	return &Runner{cfg: cfg, source: source, catalog: catalog}
}

// Run performs one full reconciliation pass. The two listings are
// gathered concurrently, but matching starts only after both snapshots
// are complete; any failure in either gathering phase aborts the run
// with no partial verdict.
func (r *Runner) Run(ctx context.Context) (reconcile.Summary, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	log := logging.Ctx(ctx)

	start := time.Now()

	var (
		locals    []publication.LocalModel
		artifacts []publication.RemoteArtifact
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		locals, err = sources.ResolveModels(gctx, r.source)
		return err
	})
	g.Go(func() error {
		var err error
		artifacts, err = sources.CollectArtifacts(gctx, r.catalog)
		return err
	})
	if err := g.Wait(); err != nil {
		return reconcile.Summary{}, err
	}

	if len(locals) == 0 {
		log.Info().Msg("No saved models found; nothing to check")
		return reconcile.Summarize(runID, nil, len(artifacts), time.Since(start)), nil
	}

	results := reconcile.Reconcile(locals, artifacts)
	summary := reconcile.Summarize(runID, results, len(artifacts), time.Since(start))

	log.Info().
		Int("models", summary.ModelsChecked).
		Int("published", summary.PublishedCount()).
		Int("artifacts", summary.ArtifactsScanned).
		Bool("any_published", summary.AnyPublished).
		Dur("duration", summary.Duration).
		Msg("Reconciliation complete")

	return summary, nil
}

// Verdict maps a run summary to the process-facing outcome. Zero
// publications is an error only under the opt-in fail-on-no-publish
// policy; a run with zero saved models is always a success.
func (r *Runner) Verdict(summary reconcile.Summary) error {
	if summary.ModelsChecked == 0 {
		return nil
	}
	if !summary.AnyPublished && r.cfg.FailOnNoPublish {
		return errors.ErrNoPublications
	}
	return nil
}
