// Package config provides configuration loading and validation for the CLI, server and worker.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g.
// RESUME_MATCHER_SERVER_PORT for server.port.
const EnvPrefix = "RESUME_MATCHER"

// DefaultConfigName is looked up in the working directory when no config file is given.
const DefaultConfigName = "resume_matcher"

// Config is the full runtime configuration. Every field has a default, so an
// empty config file (or none at all) is valid.
type Config struct {
	VocabularyPath string        `mapstructure:"vocabulary_path"` // Skill vocabulary JSON; empty uses the built-in list
	ModelDir       string        `mapstructure:"model_dir"`       // Language model directory; empty uses the bundled model
	Log            LogConfig     `mapstructure:"log"`
	Server         ServerConfig  `mapstructure:"server"`
	Batch          BatchConfig   `mapstructure:"batch"`
	Fetch          FetchConfig   `mapstructure:"fetch"`
	Worker         WorkerConfig  `mapstructure:"worker"`
	Storage        StorageConfig `mapstructure:"storage"`
}

// LogConfig selects the log encoding and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int             `mapstructure:"port" validate:"min=1,max=65535"`
	MaxUploadBytes int64           `mapstructure:"max_upload_bytes" validate:"min=1"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig configures per-client request throttling.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute" validate:"min=1"`
	Burst             int  `mapstructure:"burst" validate:"min=1"`
}

// BatchConfig configures batch analysis.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency" validate:"min=1,max=64"`
}

// FetchConfig configures job posting retrieval from URLs.
type FetchConfig struct {
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UseBrowser bool          `mapstructure:"use_browser"`
}

// WorkerConfig configures the queue worker.
type WorkerConfig struct {
	AMQPURL         string `mapstructure:"amqp_url" validate:"omitempty,url"`
	Queue           string `mapstructure:"queue" validate:"required"`
	ResultsExchange string `mapstructure:"results_exchange" validate:"required"`
	Consumers       int    `mapstructure:"consumers" validate:"min=1,max=64"`
}

// StorageConfig configures the S3-compatible bucket resumes are downloaded from.
type StorageConfig struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint" validate:"omitempty,url"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// SetDefaults registers every key with its default value. Registering all keys
// also lets environment variables override keys absent from the config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("vocabulary_path", "")
	v.SetDefault("model_dir", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_bytes", int64(10<<20))
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.requests_per_minute", 60)
	v.SetDefault("server.rate_limit.burst", 10)
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.use_browser", false)
	v.SetDefault("worker.amqp_url", "")
	v.SetDefault("worker.queue", "resume_analysis")
	v.SetDefault("worker.results_exchange", "resume_analysis.results")
	v.SetDefault("worker.consumers", 2)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
}

// Configure prepares v with defaults and environment overrides.
func Configure(v *viper.Viper) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the config file at path (JSON, YAML or TOML by extension) into v,
// applying defaults and environment overrides, and validates the result.
// With an empty path, resume_matcher.{json,yaml,toml} in the working directory
// is used if present.
func Load(v *viper.Viper, path string) (*Config, error) {
	Configure(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads configuration using a fresh viper instance.
func LoadConfig(path string) (*Config, error) {
	return Load(viper.New(), path)
}

// Default returns the configuration with every key at its default.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

var validate = validator.New()

// Validate checks field ranges and formats.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// ValidateWorker checks the settings the queue worker needs on top of Validate.
func (c *Config) ValidateWorker() error {
	if err := validate.Var(c.Worker.AMQPURL, "required,url"); err != nil {
		return fmt.Errorf("config error: 'worker.amqp_url' must be a URL: %w", err)
	}
	if strings.TrimSpace(c.Storage.Bucket) == "" {
		return fmt.Errorf("config error: 'storage.bucket' is required for the worker")
	}
	return nil
}
