package dataset

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/thbteam/patient-dashboard/config"
)

type Config struct {
	LayoutFile      string        `envconfig:"DASHBOARD_LAYOUT_FILE"`
	CacheSize       int           `envconfig:"DASHBOARD_SESSION_CACHE_SIZE" default:"64"`
	CacheExpiration time.Duration `envconfig:"DASHBOARD_SESSION_TTL" default:"8h"`
}

// NewConfig depends on the root config so that the env file is loaded first.
func NewConfig(_ *config.Config) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func NewLayout(config *Config) (Layout, error) {
	return LoadLayout(config.LayoutFile)
}
