// Package config loads application configuration from defaults, an optional
// librarian.yaml file, and LIBRARIAN_-prefixed environment variables, with
// the environment taking precedence over the file.
package config

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Logging LoggingConfig `mapstructure:"logging" validate:"required"`
}

// StorageConfig contains the persistence settings.
type StorageConfig struct {
	// DataFile is the path of the persisted JSON document.
	DataFile string `mapstructure:"data_file" validate:"required"`
}

// LoggingConfig contains the logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}
