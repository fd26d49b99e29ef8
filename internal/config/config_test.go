package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pubcheck/internal/config"
	"github.com/agentstation/pubcheck/pkg/errors"
)

func validConfig() *config.Config {
	return &config.Config{
		Dataiku: config.Dataiku{
			URL:        "https://dss.example.com",
			APIToken:   "token",
			ProjectKey: "ML_PROJECT",
		},
		Wandb: config.Wandb{
			APIKey: "key",
			Entity: "acme",
		},
	}
}

func TestValidateOK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateReportsMissingVariable(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*config.Config)
		wantVariable string
	}{
		{
			name:         "missing dataiku url",
			mutate:       func(c *config.Config) { c.Dataiku.URL = "" },
			wantVariable: config.EnvDataikuURL,
		},
		{
			name:         "missing dataiku token",
			mutate:       func(c *config.Config) { c.Dataiku.APIToken = "" },
			wantVariable: config.EnvDataikuAPIToken,
		},
		{
			name:         "missing project key",
			mutate:       func(c *config.Config) { c.Dataiku.ProjectKey = "" },
			wantVariable: config.EnvDataikuProjectKey,
		},
		{
			name:         "missing wandb api key",
			mutate:       func(c *config.Config) { c.Wandb.APIKey = "" },
			wantVariable: config.EnvWandbAPIKey,
		},
		{
			name:         "missing wandb entity",
			mutate:       func(c *config.Config) { c.Wandb.Entity = "" },
			wantVariable: config.EnvWandbEntity,
		},
		{
			name:         "client cert without key",
			mutate:       func(c *config.Config) { c.Dataiku.ClientCertificate = "/tmp/cert.pem" },
			wantVariable: config.EnvDataikuClientCert,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			var configErr *errors.ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.wantVariable, configErr.Variable)
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv(config.EnvDataikuURL, "https://dss.example.com")
	t.Setenv(config.EnvDataikuAPIToken, "dss-token")
	t.Setenv(config.EnvDataikuProjectKey, "ML_PROJECT")
	t.Setenv(config.EnvWandbAPIKey, "wandb-key")
	t.Setenv(config.EnvWandbEntity, "acme")
	t.Setenv(config.EnvFailOnNoPublish, "true")
	viper.AutomaticEnv()

	cfg := config.Load()

	assert.Equal(t, "https://dss.example.com", cfg.Dataiku.URL)
	assert.Equal(t, "dss-token", cfg.Dataiku.APIToken)
	assert.Equal(t, "ML_PROJECT", cfg.Dataiku.ProjectKey)
	assert.Equal(t, "wandb-key", cfg.Wandb.APIKey)
	assert.Equal(t, "acme", cfg.Wandb.Entity)
	assert.True(t, cfg.FailOnNoPublish)
	require.NoError(t, cfg.Validate())
}

func TestDataikuTransportOptionsMissingCertificate(t *testing.T) {
	cfg := validConfig()
	cfg.Dataiku.ClientCertificate = "/nonexistent/cert.pem"
	cfg.Dataiku.ClientCertificateKey = "/nonexistent/key.pem"

	_, err := cfg.DataikuTransportOptions()

	require.Error(t, err)
	var configErr *errors.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, config.EnvDataikuClientCert, configErr.Variable)
}

func TestDataikuTransportOptionsInsecure(t *testing.T) {
	cfg := validConfig()
	cfg.Dataiku.NoVerifyTLS = true

	opts, err := cfg.DataikuTransportOptions()

	require.NoError(t, err)
	assert.Len(t, opts, 1)
}
