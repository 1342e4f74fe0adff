// Package config reads service settings from the environment
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/celestiaorg/cadence/internal/constants"
)

// Defaults used when the environment leaves a setting empty
const (
	DefaultPort       = "8080"
	DefaultRunTimeout = 5 * time.Minute
)

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetEnvBool retrieves a boolean environment variable with a fallback value if not set
func GetEnvBool(key string, fallback bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

// Database holds the database connection settings
type Database struct {
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLEnabled bool
}

// Server holds every setting of the API server process
type Server struct {
	Port             string
	LogLevel         string
	RunTimeout       time.Duration
	SchedulerEnabled bool
	DB               Database
}

// Load builds the server configuration from the environment
func Load() (*Server, error) {
	cfg := &Server{
		Port:       GetEnv(constants.EnvPort, DefaultPort),
		LogLevel:   GetEnv(constants.EnvLogLevel, ""),
		RunTimeout: DefaultRunTimeout,
		DB: Database{
			Host:     GetEnv(constants.EnvDBHost, ""),
			User:     GetEnv(constants.EnvDBUser, ""),
			Password: GetEnv(constants.EnvDBPassword, ""),
			Name:     GetEnv(constants.EnvDBName, ""),
		},
	}

	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}

	if port := GetEnv(constants.EnvDBPort, ""); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", constants.EnvDBPort, err)
		}
		cfg.DB.Port = p
	}

	switch mode := GetEnv(constants.EnvDBSSLMode, "disable"); mode {
	case "", "disable":
	case "require", "enable":
		cfg.DB.SSLEnabled = true
	default:
		return nil, fmt.Errorf("invalid %s: %s", constants.EnvDBSSLMode, mode)
	}

	if timeout := GetEnv(constants.EnvRunTimeout, ""); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", constants.EnvRunTimeout, err)
		}
		cfg.RunTimeout = d
	}

	enabled, err := GetEnvBool(constants.EnvSchedulerEnabled, true)
	if err != nil {
		return nil, err
	}
	cfg.SchedulerEnabled = enabled

	return cfg, cfg.Validate()
}

// Validate checks the loaded configuration
func (c *Server) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.RunTimeout <= 0 {
		return fmt.Errorf("run timeout must be positive")
	}
	return nil
}
