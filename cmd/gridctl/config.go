package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the grid client configuration.
type Config struct {
	API struct {
		BaseURL        string `mapstructure:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"api"`
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// LoadConfig reads gridctl.yml from the working directory, falling back to
// defaults when no file is present.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("gridctl")
	viper.SetConfigType("yaml")

	viper.SetDefault("api.base_url", "http://localhost:5000/api/orders")
	viper.SetDefault("api.timeout_seconds", 10)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
