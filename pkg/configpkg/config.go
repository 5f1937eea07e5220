// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress     string `mapstructure:"SERVER_ADDRESS"`
	Environment       string `mapstructure:"GO_ENV"`
	AccountCodePrefix string `mapstructure:"ACCOUNT_CODE_PREFIX"`
	AccountCodeWidth  int    `mapstructure:"ACCOUNT_CODE_WIDTH"`
}

// Development is the GO_ENV value that enables human friendly logs.
const Development = "development"

// Load reads configuration from path/app.env and environment variables.
//
// A missing app.env is not an error: defaults and the environment are used instead.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("GO_ENV", "production")
	v.SetDefault("ACCOUNT_CODE_PREFIX", "CPT")
	v.SetDefault("ACCOUNT_CODE_WIDTH", 5)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}
