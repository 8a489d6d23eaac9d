// Package config handles configuration loading, parsing, and validation
// from environment variables, an optional .env file, an optional config file
// and command-line flags. It provides type-safe access to application settings
// while keeping configuration details separate from the request path.
package config
