// Package config builds the run configuration from environment
// variables, .env files, and flags via viper. The configuration is
// constructed once at run start, validated before any network call,
// and discarded when the run ends; there is no process-wide mutable
// credential state.
package config

import (
	"crypto/tls"
	"os"

	"github.com/spf13/viper"

	"github.com/agentstation/pubcheck/internal/transport"
	"github.com/agentstation/pubcheck/pkg/errors"
)

// Environment variable names understood by Load. They match the
// secrets the CI pipeline injects.
const (
	EnvDataikuURL        = "DATAIKU_INSTANCE_URL"
	EnvDataikuAPIToken   = "DATAIKU_API_TOKEN"
	EnvDataikuProjectKey = "DATAIKU_PROJECT_KEY"
	EnvDataikuNoVerify   = "DATAIKU_NO_CHECK_CERTIFICATE"
	EnvDataikuClientCert = "DATAIKU_CLIENT_CERTIFICATE"
	EnvDataikuClientKey  = "DATAIKU_CLIENT_CERTIFICATE_KEY"

	EnvWandbAPIKey  = "WANDB_API_KEY"
	EnvWandbBaseURL = "WANDB_BASE_URL"
	EnvWandbEntity  = "WANDB_ENTITY"

	EnvFailOnNoPublish = "FAIL_ON_NO_PUBLISH"
)

// Config holds everything a single check run needs: independent
// credentials for both platforms plus the failure policy.
type Config struct {
	Dataiku         Dataiku
	Wandb           Wandb
	FailOnNoPublish bool
}

// Dataiku holds the DSS connection parameters.
type Dataiku struct {
	URL        string
	APIToken   string
	ProjectKey string

	// NoVerifyTLS disables certificate verification for self-signed
	// DSS instances.
	NoVerifyTLS bool

	// ClientCertificate and ClientCertificateKey are PEM file paths for
	// instances requiring mutual TLS. Both are optional but must be set
	// together.
	ClientCertificate    string
	ClientCertificateKey string
}

// Wandb holds the W&B connection parameters.
type Wandb struct {
	BaseURL string
	APIKey  string
	Entity  string
}

// Load reads the configuration from viper. Callers are expected to
// have set up AutomaticEnv (and optionally a .env file) beforehand.
func Load() *Config {
	return &Config{
		Dataiku: Dataiku{
			URL:                  viper.GetString(EnvDataikuURL),
			APIToken:             viper.GetString(EnvDataikuAPIToken),
			ProjectKey:           viper.GetString(EnvDataikuProjectKey),
			NoVerifyTLS:          viper.GetBool(EnvDataikuNoVerify),
			ClientCertificate:    viper.GetString(EnvDataikuClientCert),
			ClientCertificateKey: viper.GetString(EnvDataikuClientKey),
		},
		Wandb: Wandb{
			BaseURL: viper.GetString(EnvWandbBaseURL),
			APIKey:  viper.GetString(EnvWandbAPIKey),
			Entity:  viper.GetString(EnvWandbEntity),
		},
		FailOnNoPublish: viper.GetBool(EnvFailOnNoPublish),
	}
}

// Validate checks every required credential and identifier before any
// collection work begins. The returned error names the exact missing
// variable so operators can tell which platform's wiring is broken.
func (c *Config) Validate() error {
	if c.Dataiku.URL == "" {
		return errors.NewConfigError("dataiku", EnvDataikuURL, "instance URL is required")
	}
	if c.Dataiku.APIToken == "" {
		return errors.NewConfigError("dataiku", EnvDataikuAPIToken, "API token is required")
	}
	if c.Dataiku.ProjectKey == "" {
		return errors.NewConfigError("dataiku", EnvDataikuProjectKey, "project key is required")
	}
	if (c.Dataiku.ClientCertificate == "") != (c.Dataiku.ClientCertificateKey == "") {
		return errors.NewConfigError("dataiku", EnvDataikuClientCert,
			"client certificate and key must be set together")
	}
	if c.Wandb.APIKey == "" {
		return errors.NewConfigError("wandb", EnvWandbAPIKey, "API key is required")
	}
	if c.Wandb.Entity == "" {
		return errors.NewConfigError("wandb", EnvWandbEntity, "registry entity is required")
	}
	return nil
}

// DataikuTransportOptions translates the DSS TLS settings into
// transport options.
func (c *Config) DataikuTransportOptions() ([]transport.Option, error) {
	var opts []transport.Option

	if c.Dataiku.NoVerifyTLS {
		opts = append(opts, transport.WithInsecureTLS())
	}

	if c.Dataiku.ClientCertificate != "" {
		if _, err := os.Stat(c.Dataiku.ClientCertificate); err != nil {
			return nil, &errors.ConfigError{
				Component: "dataiku",
				Variable:  EnvDataikuClientCert,
				Message:   "client certificate not readable",
				Err:       err,
			}
		}
		cert, err := tls.LoadX509KeyPair(c.Dataiku.ClientCertificate, c.Dataiku.ClientCertificateKey)
		if err != nil {
			return nil, &errors.ConfigError{
				Component: "dataiku",
				Variable:  EnvDataikuClientCert,
				Message:   "failed to load client certificate",
				Err:       err,
			}
		}
		opts = append(opts, transport.WithClientCertificate(cert))
	}

	return opts, nil
}
