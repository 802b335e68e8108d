// Package config loads linkharvest settings from defaults, an optional YAML
// file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. LINKHARVEST_DELAY.
const EnvPrefix = "LINKHARVEST"

// Reader names.
const (
	ReaderEndpoint = "jina"
	ReaderLocal    = "local"
)

// Config holds all application configuration.
type Config struct {
	APIKey        string        `mapstructure:"api_key"`
	Endpoint      string        `mapstructure:"endpoint" validate:"required,url"`
	Delay         time.Duration `mapstructure:"delay"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Reader        string        `mapstructure:"reader" validate:"oneof=jina local"`
	LocalFormat   string        `mapstructure:"local_format" validate:"oneof=markdown text"`
	RespectRobots bool          `mapstructure:"respect_robots"`
	UserAgent     string        `mapstructure:"user_agent"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json logfmt"`
}

// Load reads configuration. configPath may be empty, in which case
// linkharvest.yaml is looked up in ., ./config and $HOME/.linkharvest and
// a missing file is not an error. A .env file in the working directory is
// loaded into the environment first; variables already set win.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("linkharvest")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.linkharvest")
	}

	setDefaults(v)
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Reader = strings.ToLower(cfg.Reader)
	cfg.LocalFormat = strings.ToLower(cfg.LocalFormat)
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("endpoint", "https://r.jina.ai")
	v.SetDefault("delay", "1s")
	v.SetDefault("timeout", "60s")
	v.SetDefault("reader", ReaderEndpoint)
	v.SetDefault("local_format", "markdown")
	v.SetDefault("respect_robots", true)
	v.SetDefault("user_agent", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// bindEnvVars binds environment variables.
func bindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The reader API's own variable name is honoured as a fallback.
	_ = v.BindEnv("api_key", EnvPrefix+"_API_KEY", "JINA_API_KEY")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Delay < 0 {
		return fmt.Errorf("invalid configuration: delay must not be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid configuration: timeout must be positive")
	}
	return nil
}
