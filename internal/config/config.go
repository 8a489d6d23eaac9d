package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	// Address is the host:port the HTTP listener binds to.
	Address  string `mapstructure:"address"   validate:"required,hostname_port"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds how long in-flight requests may run after SIGINT/SIGTERM.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// URL selects both the driver and the target: postgres:// and postgresql://
	// go through pgx, sqlite:// and file: through the embedded SQLite driver.
	URL string `mapstructure:"url" validate:"required"`
	// MaxConns is the pool capacity. Requests beyond it wait for a free connection.
	MaxConns int `mapstructure:"max_conns" validate:"gt=0,lte=1000"`
	// ConnectTimeoutSeconds bounds the startup ping.
	ConnectTimeoutSeconds int `mapstructure:"connect_timeout" validate:"gt=0"`
}
