// Package config loads server configuration from an optional file and
// TIMELINE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"

	DefaultHost     = "0.0.0.0"
	DefaultPort     = 10000
	DefaultCSVPath  = "VisualDataTime.csv"
	DefaultRedis    = "localhost:6379"
	DefaultRedisKey = "timeline:rows"
	DefaultVariant  = "dropdown"
	DefaultLogLevel = "info"

	envPrefix = "TIMELINE"
)

type Config struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Source         string `mapstructure:"source"`
	CSVPath        string `mapstructure:"csv_path"`
	PostgresDSN    string `mapstructure:"postgres_dsn"`
	PostgresQuery  string `mapstructure:"postgres_query"`
	RedisAddr      string `mapstructure:"redis_addr"`
	RedisKey       string `mapstructure:"redis_key"`
	Variant        string `mapstructure:"variant"`
	LogLevel       string `mapstructure:"log_level"`
	LogDevelopment bool   `mapstructure:"log_development"`
}

// Load reads path when it is not empty, then applies environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := map[string]any{
		"host":            DefaultHost,
		"port":            DefaultPort,
		"source":          SourceCSV,
		"csv_path":        DefaultCSVPath,
		"postgres_dsn":    "",
		"postgres_query":  "",
		"redis_addr":      DefaultRedis,
		"redis_key":       DefaultRedisKey,
		"variant":         DefaultVariant,
		"log_level":       DefaultLogLevel,
		"log_development": false,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	switch c.Source {
	case SourceCSV:
		if c.CSVPath == "" {
			return errors.New("csv_path is required for the csv source")
		}
	case SourcePostgres:
		if c.PostgresDSN == "" {
			return errors.New("postgres_dsn is required for the postgres source")
		}
	case SourceRedis:
		if c.RedisAddr == "" {
			return errors.New("redis_addr is required for the redis source")
		}
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}

	switch c.Variant {
	case "dropdown", "search":
	default:
		return fmt.Errorf("unknown variant %q", c.Variant)
	}

	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
