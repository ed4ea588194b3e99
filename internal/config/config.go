package config

import (
	"net"
	"strconv"
	"time"
)

// Host is the bind address. The server always listens on all interfaces;
// only the port is configurable.
const Host = "0.0.0.0"

// Provider identifiers accepted in Config.Provider.
const (
	ProviderVertex = "vertex"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderStub   = "stub"
)

// Config holds runtime parameters for the service.
// Values are layered: Defaults, then a config file, then the environment,
// then command-line flags.
type Config struct {
	Port     int    `json:"port" yaml:"port" toml:"port" env:"PORT" validate:"min=1,max=65535"`
	Provider string `json:"provider" yaml:"provider" toml:"provider" env:"WIREGEN_PROVIDER" validate:"oneof=vertex gemini openai stub"`

	// Vertex AI. Missing values leave the server up but not ready.
	Project  string `json:"project" yaml:"project" toml:"project" env:"GOOGLE_CLOUD_PROJECT"`
	Location string `json:"location" yaml:"location" toml:"location" env:"GOOGLE_CLOUD_LOCATION"`
	// Gemini API
	APIKey string `json:"api_key" yaml:"api_key" toml:"api_key" env:"GEMINI_API_KEY" validate:"required_if=Provider gemini"`
	// OpenAI
	OpenAIAPIKey string `json:"openai_api_key" yaml:"openai_api_key" toml:"openai_api_key" env:"OPENAI_API_KEY" validate:"required_if=Provider openai"`
	// Endpoint override for any provider (proxies, emulators).
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url" env:"WIREGEN_BASE_URL" validate:"omitempty,url"`

	DefaultModel   string   `json:"default_model" yaml:"default_model" toml:"default_model" env:"WIREGEN_DEFAULT_MODEL"`
	Models         []string `json:"models" yaml:"models" toml:"models" env:"WIREGEN_MODELS" envSeparator:","`
	ModelsFile     string   `json:"models_file" yaml:"models_file" toml:"models_file" env:"WIREGEN_MODELS_FILE"`
	RestrictModels bool     `json:"restrict_models" yaml:"restrict_models" toml:"restrict_models" env:"WIREGEN_RESTRICT_MODELS"`

	MaxUploadBytes  int64    `json:"max_upload_bytes" yaml:"max_upload_bytes" toml:"max_upload_bytes" env:"WIREGEN_MAX_UPLOAD_BYTES" validate:"gt=0"`
	GenerateTimeout Duration `json:"generate_timeout" yaml:"generate_timeout" toml:"generate_timeout" env:"WIREGEN_GENERATE_TIMEOUT"`
	MaxConcurrent   int      `json:"max_concurrent" yaml:"max_concurrent" toml:"max_concurrent" env:"WIREGEN_MAX_CONCURRENT" validate:"gte=0"`
	MaxQueueDepth   int      `json:"max_queue_depth" yaml:"max_queue_depth" toml:"max_queue_depth" env:"WIREGEN_MAX_QUEUE_DEPTH" validate:"gte=0"`
	MaxWait         Duration `json:"max_wait" yaml:"max_wait" toml:"max_wait" env:"WIREGEN_MAX_WAIT"`

	// Generation parameters. Zero leaves the provider default.
	Temperature       float32 `json:"temperature" yaml:"temperature" toml:"temperature" env:"WIREGEN_TEMPERATURE" validate:"gte=0,lte=2"`
	MaxOutputTokens   int32   `json:"max_output_tokens" yaml:"max_output_tokens" toml:"max_output_tokens" env:"WIREGEN_MAX_OUTPUT_TOKENS" validate:"gte=0"`
	SystemInstruction string  `json:"system_instruction" yaml:"system_instruction" toml:"system_instruction" env:"WIREGEN_SYSTEM_INSTRUCTION"`

	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins" env:"WIREGEN_CORS_ORIGINS" envSeparator:","`

	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level" env:"WIREGEN_LOG_LEVEL" validate:"oneof=trace debug info warn error disabled"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format" env:"WIREGEN_LOG_FORMAT" validate:"oneof=json console"`

	SentryDSN   string `json:"sentry_dsn" yaml:"sentry_dsn" toml:"sentry_dsn" env:"SENTRY_DSN"`
	Environment string `json:"environment" yaml:"environment" toml:"environment" env:"WIREGEN_ENV"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Port:            8080,
		Provider:        ProviderVertex,
		Location:        "us-central1",
		DefaultModel:    "gemini-1.0-pro-vision",
		MaxUploadBytes:  16 * 1024 * 1024,
		GenerateTimeout: Duration(2 * time.Minute),
		MaxConcurrent:   4,
		MaxQueueDepth:   32,
		MaxWait:         Duration(30 * time.Second),
		LogLevel:        "info",
		LogFormat:       "json",
		Environment:     "development",
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(Host, strconv.Itoa(c.Port))
}

// Duration is a time.Duration that reads "90s"-style strings from config
// files and the environment.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
