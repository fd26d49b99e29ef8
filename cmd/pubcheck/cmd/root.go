// Package cmd provides the main command structure for the pubcheck CLI.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/pubcheck/internal/cmd/globals"
	"github.com/agentstation/pubcheck/internal/config"
	"github.com/agentstation/pubcheck/pkg/logging"
)

var (
	globalFlags *globals.Flags

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pubcheck",
	Short: "Model publication reconciliation CLI",
	Long: `Pubcheck reconciles the saved models of a Dataiku DSS project
against the model artifacts published to a Weights & Biases registry.

For every saved model's active version it reports whether a matching
model artifact exists in the registry and under which published
identifiers. It is designed to run as a CI step or periodic check.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if globalFlags.Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		if globalFlags.Quiet {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute(version, commit, date string) error {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logging.Err(err).Msg("Run failed")
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)
	globalFlags = globals.AddFlags(rootCmd)
}

// initConfig loads .env files and binds environment variables.
func initConfig() {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Bind the credential variables explicitly so viper can see them
	// even without a config file.
	for _, key := range []string{
		config.EnvDataikuURL,
		config.EnvDataikuAPIToken,
		config.EnvDataikuProjectKey,
		config.EnvDataikuNoVerify,
		config.EnvDataikuClientCert,
		config.EnvDataikuClientKey,
		config.EnvWandbAPIKey,
		config.EnvWandbBaseURL,
		config.EnvWandbEntity,
		config.EnvFailOnNoPublish,
	} {
		_ = viper.BindEnv(key)
	}
}

// loadEnvFiles loads .env files from the working directory if present.
// Environment variables already set take precedence.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			if err := godotenv.Load(file); err != nil {
				logging.Warn().Str("file", file).Err(err).Msg("Failed to load env file")
			}
		}
	}
}
