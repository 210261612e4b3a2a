package config

import (
	"time"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server       ServerConfig       `yaml:"server"`
	Logging      LoggingConfig      `yaml:"logging"`
	Probe        ProbeConfig        `yaml:"probe"`
	Dependencies []DependencyConfig `yaml:"dependencies"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// ProbeConfig holds default probe loop settings.
type ProbeConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// DependencyConfig holds breaker and probe settings for one external
// dependency. Threshold and reset timeout are read once at registration.
type DependencyConfig struct {
	Name         string        `yaml:"name"`
	Type         string        `yaml:"type"` // http, redis, postgres, grpc
	URL          string        `yaml:"url"`
	Threshold    int           `yaml:"threshold"`
	ResetTimeout time.Duration `yaml:"reset_timeout"`
	Interval     time.Duration `yaml:"interval"` // overrides probe.interval
}
