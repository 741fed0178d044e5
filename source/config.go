package source

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/thbteam/patient-dashboard/config"
)

type Config struct {
	ExcelLink string        `envconfig:"ONEDRIVE_EXCEL_LINK" required:"true"`
	LogoLink  string        `envconfig:"ONEDRIVE_LOGO_LINK" required:"true"`
	Timeout   time.Duration `envconfig:"DASHBOARD_SOURCE_TIMEOUT" default:"30s"`

	// Optional client credentials for share links that need a bearer token
	TokenUrl     string   `envconfig:"DASHBOARD_SOURCE_TOKEN_URL"`
	ClientId     string   `envconfig:"DASHBOARD_SOURCE_CLIENT_ID"`
	ClientSecret string   `envconfig:"DASHBOARD_SOURCE_CLIENT_SECRET"`
	Scopes       []string `envconfig:"DASHBOARD_SOURCE_SCOPES"`
}

// NewConfig depends on the root config so that the env file is loaded first.
func NewConfig(_ *config.Config) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) UsesClientCredentials() bool {
	return c.TokenUrl != ""
}
