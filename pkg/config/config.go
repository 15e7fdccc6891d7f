package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Transport names accepted in Config.Transport.
const (
	TransportHTTP      = "http"
	TransportWebSocket = "ws"
)

type Config struct {
	AgentURL        string        `mapstructure:"agent_url"`
	Transport       string        `mapstructure:"transport"`
	MaxIterations   int           `mapstructure:"max_iterations"`
	Timeout         time.Duration `mapstructure:"timeout"`
	FallbackMessage string        `mapstructure:"fallback_message"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFile         string        `mapstructure:"log_file"`

	// stub agent
	Port         string `mapstructure:"port"`
	ArxivURL     string `mapstructure:"arxiv_url"`
	WikipediaURL string `mapstructure:"wikipedia_url"`
}

// New returns a viper instance with defaults, SEARCH_* environment binding
// and the optional search-client config file search paths.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("agent_url", "http://127.0.0.1:8000")
	v.SetDefault("transport", TransportHTTP)
	v.SetDefault("max_iterations", 3)
	v.SetDefault("timeout", 5*time.Minute)
	v.SetDefault("fallback_message", "Search failed, please try again later")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "search-client.log")
	v.SetDefault("port", "8000")
	v.SetDefault("arxiv_url", "https://export.arxiv.org/api/query")
	v.SetDefault("wikipedia_url", "https://en.wikipedia.org/api/rest_v1/page/summary/")

	v.SetEnvPrefix("SEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	v.SetConfigName("search-client")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/search-client")
	return v
}

// Load reads the config file (if any) and decodes v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.AgentURL == "" {
		return errors.New("agent_url is required")
	}
	switch c.Transport {
	case TransportHTTP, TransportWebSocket:
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations)
	}
	return nil
}

// SlogLevel maps LogLevel onto slog, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
