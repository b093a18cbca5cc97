package config

// Environment names accepted by server.environment.
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Store drivers accepted by store.driver.
const (
	DriverMemory   = "memory"
	DriverRemote   = "remote"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// LLM providers accepted by llm.provider.
const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Store    StoreConfig    `mapstructure:"store"    validate:"required"`
	Remote   RemoteConfig   `mapstructure:"remote"`
	Database DatabaseConfig `mapstructure:"database"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	Environment            string `mapstructure:"environment"              validate:"required,oneof=development production"`
	BodyLimitBytes         int64  `mapstructure:"body_limit_bytes"         validate:"gt=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// StoreConfig selects the repository adapter.
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory remote postgres sqlite"`
}

// RemoteConfig configures the HTTP-backed repository.
type RemoteConfig struct {
	BaseURL        string `mapstructure:"base_url"        validate:"required_if=Enabled true,omitempty,url"`
	Collection     string `mapstructure:"collection"      validate:"required_if=Enabled true"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`

	// Enabled is derived from store.driver after loading.
	Enabled bool `mapstructure:"-"`
}

// DatabaseConfig contains PostgreSQL settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required_if=Enabled true,omitempty,url"`

	// Enabled is derived from store.driver after loading.
	Enabled bool `mapstructure:"-"`
}

// SQLiteConfig contains settings for the embedded SQLite store.
type SQLiteConfig struct {
	Path string `mapstructure:"path" validate:"required_if=Enabled true"`

	// Enabled is derived from store.driver after loading.
	Enabled bool `mapstructure:"-"`
}

// LLMConfig contains the title-suggestion provider settings.
type LLMConfig struct {
	Provider       string `mapstructure:"provider"        validate:"required,oneof=none openai gemini"`
	OpenAIAPIKey   string `mapstructure:"openai_api_key"  validate:"required_if=Provider openai"`
	OpenAIModel    string `mapstructure:"openai_model"    validate:"required_if=Provider openai"`
	OpenAIBaseURL  string `mapstructure:"openai_base_url" validate:"required_if=Provider openai,omitempty,url"`
	GeminiAPIKey   string `mapstructure:"gemini_api_key"  validate:"required_if=Provider gemini"`
	GeminiModel    string `mapstructure:"gemini_model"    validate:"required_if=Provider gemini"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// IsSQL reports whether the configured driver is backed by a SQL database.
func (c StoreConfig) IsSQL() bool {
	return c.Driver == DriverPostgres || c.Driver == DriverSQLite
}
