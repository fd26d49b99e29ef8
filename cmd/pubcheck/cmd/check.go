package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/pubcheck/internal/cmd/check"
	"github.com/agentstation/pubcheck/internal/cmd/output"
	"github.com/agentstation/pubcheck/internal/config"
	"github.com/agentstation/pubcheck/pkg/logging"
)

// checkCmd runs one reconciliation pass and renders the verdict.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Reconcile saved models against the W&B registry",
	Long: `Check lists the configured Dataiku project's saved models, collects
every model-typed artifact from the W&B registry, and reports for each
saved model whether its active version has been published.

Credentials are read from the environment (or a .env file):
DATAIKU_INSTANCE_URL, DATAIKU_API_TOKEN, DATAIKU_PROJECT_KEY,
WANDB_API_KEY and WANDB_ENTITY are required.

By default a run with zero publications still exits successfully; set
FAIL_ON_NO_PUBLISH=true or pass --fail-on-no-publish to turn that
outcome into a failure.`,
	Example: `  pubcheck check
  pubcheck check --output json
  pubcheck check --fail-on-no-publish`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Bool("fail-on-no-publish", false,
		"Exit non-zero when no saved model is published")
	_ = viper.BindPFlag(config.EnvFailOnNoPublish, checkCmd.Flags().Lookup("fail-on-no-publish"))
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	runner, err := check.NewRunner(cfg)
	if err != nil {
		return err
	}

	summary, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	if !globalFlags.Quiet {
		format, err := output.ParseFormat(globalFlags.Output)
		if err != nil {
			return err
		}
		format = output.DetectFormat(string(format))

		formatter := output.NewFormatter(format)
		data := any(summary)
		if format == output.FormatTable {
			data = output.SummaryToTableData(summary)
		}
		if err := formatter.Format(os.Stdout, data); err != nil {
			return err
		}
	}

	if !summary.AnyPublished && summary.ModelsChecked > 0 {
		logging.Warn().Msg("No models are published to W&B for any saved model")
	}

	return runner.Verdict(summary)
}
