package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultReferenceYear is the year ages are derived from unless configured otherwise.
const DefaultReferenceYear = 2025

type Config struct {
	HttpPort      uint16 `envconfig:"DASHBOARD_HTTP_PORT" default:"8080" required:"true"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	EnvFile       string `envconfig:"DASHBOARD_ENV_FILE" default:".env"`
	ReferenceYear int    `envconfig:"DASHBOARD_REFERENCE_YEAR" default:"2025"`
}

func New() *Config {
	return &Config{}
}

// NewConfig loads the optional env file and then the process environment.
// Variables already present in the environment take precedence over the file.
func NewConfig() (*Config, error) {
	c := New()
	if err := c.LoadFromEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) LoadFromEnv() error {
	if err := envconfig.Process("", c); err != nil {
		return err
	}
	if err := LoadEnvFile(c.EnvFile); err != nil {
		return err
	}
	return envconfig.Process("", c)
}

// GetReferenceYear returns the year used to derive ages from years of birth.
func (c *Config) GetReferenceYear() int {
	if c.ReferenceYear > 0 {
		return c.ReferenceYear
	}
	return DefaultReferenceYear
}

// LoadEnvFile populates the environment from a dotenv file. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
