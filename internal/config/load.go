package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "TODO"

// envAliases are unprefixed variables honoured for compatibility with
// existing deployments. The prefixed form always wins.
var envAliases = map[string][]string{
	"server.port":        {"PORT"},
	"server.log_level":   {"LOG_LEVEL"},
	"database.url":       {"DATABASE_URL"},
	"remote.collection":  {"DYMA_COLLECTION"},
	"llm.openai_api_key": {"OPENAI_API_KEY"},
	"llm.gemini_api_key": {"GEMINI_API_KEY"},
}

// keys lists every configuration key so each can be bound to its
// environment variable; viper only unmarshals env values for known keys.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.environment",
	"server.body_limit_bytes",
	"server.shutdown_timeout_seconds",
	"store.driver",
	"remote.base_url",
	"remote.collection",
	"remote.timeout_seconds",
	"database.url",
	"sqlite.path",
	"llm.provider",
	"llm.openai_api_key",
	"llm.openai_model",
	"llm.openai_base_url",
	"llm.gemini_api_key",
	"llm.gemini_model",
	"llm.timeout_seconds",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.environment", EnvironmentDevelopment)
	v.SetDefault("server.body_limit_bytes", 16*1024)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("store.driver", DriverMemory)

	v.SetDefault("remote.base_url", "https://restapi.fr/api")
	v.SetDefault("remote.collection", "todos-hexago-demo")
	v.SetDefault("remote.timeout_seconds", 10)

	v.SetDefault("sqlite.path", "todos.db")

	v.SetDefault("llm.provider", ProviderNone)
	v.SetDefault("llm.openai_model", "gpt-4o")
	v.SetDefault("llm.openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.gemini_model", "gemini-2.0-flash")
	v.SetDefault("llm.timeout_seconds", 30)
}

func bindEnv(v *viper.Viper) error {
	for _, key := range keys {
		names := []string{envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}
		names = append(names, envAliases[key]...)

		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}
	return nil
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from the file. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Remote.Enabled = cfg.Store.Driver == DriverRemote
	cfg.Database.Enabled = cfg.Store.Driver == DriverPostgres
	cfg.SQLite.Enabled = cfg.Store.Driver == DriverSQLite

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
