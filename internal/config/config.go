package config

import (
	"os"
	"strconv"
	"time"

	"strbrowser/internal/errors"

	"gopkg.in/yaml.v3"
)

// Data source kinds
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Profiling ProfilingConfig `yaml:"profiling"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `yaml:"port"`
	APIPort string `yaml:"api_port"`
	GinMode string `yaml:"gin_mode"`
}

// DataConfig holds the startup tables
type DataConfig struct {
	Source      string `yaml:"source"`
	AlleleTable string `yaml:"allele_table"`
	MotifTable  string `yaml:"motif_table"`
}

// DatabaseConfig holds the SQL table source connection
type DatabaseConfig struct {
	URL         string `yaml:"url"`
	AlleleTable string `yaml:"allele_table"`
	MotifTable  string `yaml:"motif_table"`
}

// SessionConfig holds per-browser selection settings
type SessionConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string `yaml:"port"`
	Enabled bool   `yaml:"enabled"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "8080",
			APIPort: "8081",
			GinMode: "debug",
		},
		Data: DataConfig{
			Source:      SourceFile,
			AlleleTable: "data/first_100_str_data_count.tsv",
			MotifTable:  "data/first_100_str_data_motif.tsv",
		},
		Database: DatabaseConfig{
			AlleleTable: "str_counts",
			MotifTable:  "str_motifs",
		},
		Session: SessionConfig{
			TTL: 30 * time.Minute,
		},
		Profiling: ProfilingConfig{
			Port:    "6060",
			Enabled: false,
		},
		Log: LogConfig{
			Level: "INFO",
		},
	}
}

// Load reads configuration from an optional YAML file (STRBROWSER_CONFIG) and environment
// variables, environment taking precedence, and validates it
func Load() (*Config, error) {
	config := Default()

	if path := os.Getenv("STRBROWSER_CONFIG"); path != "" {
		if err := loadFile(config, path); err != nil {
			return nil, errors.Wrapf(err, "failed to load configuration file %s", path)
		}
	}

	applyEnv(config)

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return nil
}

func applyEnv(config *Config) {
	config.Server.Port = getEnvOrDefault("PORT", config.Server.Port)
	config.Server.APIPort = getEnvOrDefault("API_PORT", config.Server.APIPort)
	config.Server.GinMode = getEnvOrDefault("GIN_MODE", config.Server.GinMode)

	config.Data.Source = getEnvOrDefault("DATA_SOURCE", config.Data.Source)
	config.Data.AlleleTable = getEnvOrDefault("ALLELE_TABLE", config.Data.AlleleTable)
	config.Data.MotifTable = getEnvOrDefault("MOTIF_TABLE", config.Data.MotifTable)

	config.Database.URL = getEnvOrDefault("DATABASE_URL", config.Database.URL)
	config.Database.AlleleTable = getEnvOrDefault("DB_ALLELE_TABLE", config.Database.AlleleTable)
	config.Database.MotifTable = getEnvOrDefault("DB_MOTIF_TABLE", config.Database.MotifTable)

	config.Session.TTL = getEnvDurationOrDefault("SESSION_TTL", config.Session.TTL)

	config.Profiling.Port = getEnvOrDefault("PPROF_PORT", config.Profiling.Port)
	config.Profiling.Enabled = getEnvBoolOrDefault("PPROF_ENABLED", config.Profiling.Enabled)

	config.Log.Level = getEnvOrDefault("LOG_LEVEL", config.Log.Level)
}

// Validate checks required fields and ranges
func Validate(config *Config) error {
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	switch config.Data.Source {
	case SourceFile:
		if config.Data.AlleleTable == "" || config.Data.MotifTable == "" {
			return errors.ConfigInvalid("ALLELE_TABLE and MOTIF_TABLE are required")
		}
	case SourcePostgres:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required when DATA_SOURCE=postgres")
		}
	default:
		return errors.ConfigInvalid("DATA_SOURCE must be file or postgres, got " + strconv.Quote(config.Data.Source))
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
