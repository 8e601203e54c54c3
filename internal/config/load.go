package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	defaultDataFile = "library_data.json"
	defaultLogLevel = "info"

	envPrefix      = "LIBRARIAN"
	configFileName = "librarian"
)

// Load reads the configuration. A missing config file is fine - defaults
// and environment variables cover everything; a malformed file or a value
// failing validation is an error.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("storage.data_file", defaultDataFile)
	v.SetDefault("logging.level", defaultLogLevel)

	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
