// Package constants provides centralized definitions of constants used throughout the application
package constants

// Environment variable names
const (
	// EnvPort is the port the API server listens on
	EnvPort = "CADENCE_PORT"
	// EnvLogLevel is the logrus level name
	EnvLogLevel = "LOG_LEVEL"
	// EnvRunTimeout bounds a single schedule run, as a Go duration
	EnvRunTimeout = "CADENCE_RUN_TIMEOUT"
	// EnvSchedulerEnabled turns the cron scheduler on or off
	EnvSchedulerEnabled = "CADENCE_SCHEDULER_ENABLED"
	// EnvServerAddress is the API address used by the CLI
	EnvServerAddress = "CADENCE_SERVER_ADDRESS"

	// EnvDBHost is the database host
	EnvDBHost = "DB_HOST"
	// EnvDBPort is the database port
	EnvDBPort = "DB_PORT"
	// EnvDBUser is the database user
	EnvDBUser = "DB_USER"
	// EnvDBPassword is the database password
	EnvDBPassword = "DB_PASSWORD"
	// EnvDBName is the database name
	EnvDBName = "DB_NAME"
	// EnvDBSSLMode is the postgres sslmode, "disable" or "require"
	EnvDBSSLMode = "DB_SSL_MODE"
)
