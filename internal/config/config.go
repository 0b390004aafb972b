package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/vadimtrunov/tmdbapi/internal/transport"
)

// Config represents the main application configuration
type Config struct {
	// Metadata provider
	TMDb TMDbConfig `yaml:"tmdb"`

	// HTTP transport: timeouts and upstream proxy
	Transport TransportConfig `yaml:"transport"`

	// Frontends
	Telegram *TelegramConfig `yaml:"telegram,omitempty"`

	// Application settings
	App AppConfig `yaml:"app"`
}

// TMDbConfig holds TMDb API configuration
type TMDbConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Language string `yaml:"language,omitempty"` // e.g. "en-US"
}

// TransportConfig holds timeout and proxy settings
type TransportConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout,omitempty"`
	ReadTimeout    time.Duration `yaml:"read_timeout,omitempty"`
	Proxy          ProxyConfig   `yaml:"proxy,omitempty"`
}

// ProxyConfig holds upstream proxy settings
type ProxyConfig struct {
	Scheme   string `yaml:"scheme,omitempty"` // "http" or "socks5"
	Host     string `yaml:"host,omitempty"`
	Port     string `yaml:"port,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken       string  `yaml:"bot_token"`
	AllowedUserIDs []int64 `yaml:"allowed_user_ids,omitempty"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	LogLevel string `yaml:"log_level"` // "debug", "info", "warn", "error"
}

var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// TransportSettings converts the transport section into transport.Config.
func (c *Config) TransportSettings() transport.Config {
	return transport.Config{
		ConnectTimeout: c.Transport.ConnectTimeout,
		ReadTimeout:    c.Transport.ReadTimeout,
		Proxy: transport.ProxyConfig{
			Scheme:   c.Transport.Proxy.Scheme,
			Host:     c.Transport.Proxy.Host,
			Port:     c.Transport.Proxy.Port,
			Username: c.Transport.Proxy.Username,
			Password: c.Transport.Proxy.Password,
		},
	}
}

// Load loads configuration from a YAML file with environment variable overrides
func Load(path string) (*Config, error) {
	if err := validateConfigPath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func validateConfigPath(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path is a directory: %s", path)
	}
	return nil
}

// applyEnvOverrides overrides config values with environment variables
func (c *Config) applyEnvOverrides() {
	// TMDb
	setFromEnv(&c.TMDb.APIKey, "TMDBAPI_TMDB_API_KEY")
	setFromEnv(&c.TMDb.BaseURL, "TMDBAPI_TMDB_BASE_URL")
	setFromEnv(&c.TMDb.Language, "TMDBAPI_TMDB_LANGUAGE")

	// Transport
	durationFromEnv(&c.Transport.ConnectTimeout, "TMDBAPI_CONNECT_TIMEOUT")
	durationFromEnv(&c.Transport.ReadTimeout, "TMDBAPI_READ_TIMEOUT")
	setFromEnv(&c.Transport.Proxy.Scheme, "TMDBAPI_PROXY_SCHEME")
	setFromEnv(&c.Transport.Proxy.Host, "TMDBAPI_PROXY_HOST")
	setFromEnv(&c.Transport.Proxy.Port, "TMDBAPI_PROXY_PORT")
	setFromEnv(&c.Transport.Proxy.Username, "TMDBAPI_PROXY_USERNAME")
	setFromEnv(&c.Transport.Proxy.Password, "TMDBAPI_PROXY_PASSWORD")

	// Telegram
	if v := os.Getenv("TMDBAPI_TELEGRAM_BOT_TOKEN"); v != "" {
		if c.Telegram == nil {
			c.Telegram = &TelegramConfig{}
		}
		c.Telegram.BotToken = v
	}

	// App
	setFromEnv(&c.App.LogLevel, "TMDBAPI_LOG_LEVEL")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// durationFromEnv stores -1 for unparsable values so Validate rejects them.
func durationFromEnv(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		d = -1
	}
	*dst = d
}

// setDefaults fills in values left empty
func (c *Config) setDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Transport.ConnectTimeout == 0 {
		c.Transport.ConnectTimeout = transport.DefaultConnectTimeout
	}
	if c.Transport.ReadTimeout == 0 {
		c.Transport.ReadTimeout = transport.DefaultReadTimeout
	}
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	c.setDefaults()

	if c.TMDb.APIKey == "" {
		return fmt.Errorf("tmdb.api_key is required")
	}
	if c.TMDb.BaseURL != "" {
		if err := validateURL(c.TMDb.BaseURL, "tmdb.base_url"); err != nil {
			return err
		}
	}

	if err := c.Transport.validate(); err != nil {
		return err
	}

	if c.Telegram != nil && c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}

	if !slices.Contains(validLogLevels, strings.ToLower(c.App.LogLevel)) {
		return fmt.Errorf("app.log_level must be one of %s", strings.Join(validLogLevels, ", "))
	}

	return nil
}

func (t *TransportConfig) validate() error {
	if t.ConnectTimeout < 0 {
		return fmt.Errorf("transport.connect_timeout must be a positive duration")
	}
	if t.ReadTimeout < 0 {
		return fmt.Errorf("transport.read_timeout must be a positive duration")
	}

	p := t.Proxy
	switch strings.ToLower(p.Scheme) {
	case "", transport.ProxySchemeHTTP, transport.ProxySchemeSOCKS5:
	default:
		return fmt.Errorf("transport.proxy.scheme must be 'http' or 'socks5'")
	}
	if p.Port != "" {
		if p.Host == "" {
			return fmt.Errorf("transport.proxy.host is required when a port is set")
		}
		port, err := strconv.Atoi(p.Port)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("transport.proxy.port must be between 1 and 65535")
		}
	}
	return nil
}

// validateURL checks that raw is an absolute http(s) URL.
func validateURL(raw, field string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", field)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing host", field)
	}
	return nil
}
