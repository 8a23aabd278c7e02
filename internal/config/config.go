// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Profiles  ProfilesConfig  `yaml:"profiles" mapstructure:"profiles"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures evaluation-record persistence.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ProfilesConfig configures the weight-profile backend.
type ProfilesConfig struct {
	// Driver selects the backend: memory, sqlite, or postgres.
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings for memo generation.
type AnthropicConfig struct {
	Key     string  `yaml:"key" mapstructure:"key"`
	Model   string  `yaml:"model" mapstructure:"model"`
	MemoRPS float64 `yaml:"memo_rps" mapstructure:"memo_rps"`
}

// BatchConfig configures batch scoring.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BIOSCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "bioscore.db")
	v.SetDefault("profiles.driver", "sqlite")
	v.SetDefault("profiles.path", "bioscore.db")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.memo_rps", 1.0)
	v.SetDefault("batch.max_concurrent", 5)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
