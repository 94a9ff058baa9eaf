// Package config provides Viper-based application configuration and the
// loaders for the category rule and limit files. Everything here is read
// once at startup and treated as immutable for the run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var envOnce sync.Once

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Database struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"database" yaml:"database"`

	Import struct {
		Directory     string `mapstructure:"directory" yaml:"directory"`
		FilterCredits bool   `mapstructure:"filter_credits" yaml:"filter_credits"`
	} `mapstructure:"import" yaml:"import"`

	Files struct {
		Rules      string `mapstructure:"rules" yaml:"rules"`
		Budgets    string `mapstructure:"budgets" yaml:"budgets"`
		Thresholds string `mapstructure:"thresholds" yaml:"thresholds"`
	} `mapstructure:"files" yaml:"files"`
}

// Load initializes Viper configuration: defaults, then an optional
// config.yaml, then EXPENSE_-prefixed environment variables.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.expense-etl")
	v.AddConfigPath(".expense-etl")
	v.AddConfigPath(".")

	v.SetEnvPrefix("EXPENSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("database.path", "expense.db")

	v.SetDefault("import.directory", "data")
	v.SetDefault("import.filter_credits", true)

	v.SetDefault("files.rules", filepath.Join("config", "categories.yaml"))
	v.SetDefault("files.budgets", filepath.Join("config", "budget.yaml"))
	v.SetDefault("files.thresholds", filepath.Join("config", "thresholds.yaml"))
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if strings.TrimSpace(config.Database.Path) == "" {
		return fmt.Errorf("database path must not be empty")
	}
	return nil
}

// LoadEnv loads environment variables from a .env file if one exists in
// the working directory or its parent.
func LoadEnv() {
	envOnce.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}
		_ = godotenv.Load(envFile)
	})
}

// ConfigureLogging builds the logrus logger described by the config.
func ConfigureLogging(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	return logger
}
