package app

import (
	"errors"
	"fmt"
	"net/url"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GridPath string // hcl files declaring which scenarios to run

	MapServiceURL string // base URL of the mapping service
	ConfigURL     string // default catalog configuration document

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GridPath == "" {
		return nil, errors.New("GridPath is a required configuration field and cannot be empty")
	}
	if cfg.MapServiceURL == "" {
		return nil, errors.New("MapServiceURL is a required configuration field and cannot be empty")
	}
	if _, err := url.ParseRequestURI(cfg.MapServiceURL); err != nil {
		return nil, fmt.Errorf("MapServiceURL is not a valid URL: %w", err)
	}
	if cfg.ConfigURL != "" {
		if _, err := url.ParseRequestURI(cfg.ConfigURL); err != nil {
			return nil, fmt.Errorf("ConfigURL is not a valid URL: %w", err)
		}
	}

	return &cfg, nil
}
