package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if necessary
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Probe.Interval == 0 {
		cfg.Probe.Interval = 10 * time.Second
	}

	for i := range cfg.Dependencies {
		if cfg.Dependencies[i].Threshold == 0 {
			cfg.Dependencies[i].Threshold = 5
		}
		if cfg.Dependencies[i].ResetTimeout == 0 {
			cfg.Dependencies[i].ResetTimeout = 30 * time.Second
		}
		if cfg.Dependencies[i].Interval == 0 {
			cfg.Dependencies[i].Interval = cfg.Probe.Interval
		}
	}

	return &cfg, nil
}
