package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	LogFormat  string `mapstructure:"LOG_FORMAT"`

	PostgresURL      string `mapstructure:"POSTGRES_URL"`
	PostgresMaxConns int32  `mapstructure:"POSTGRES_MAX_CONNS"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	UploadDir   string `mapstructure:"UPLOAD_DIR"`
	MaxUploadMB int64  `mapstructure:"MAX_UPLOAD_MB"`
	StaticDir   string `mapstructure:"STATIC_DIR"`
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	InboxDir      string `mapstructure:"INBOX_DIR"`
	IngestWorkers int    `mapstructure:"INGEST_WORKERS"`

	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	SessionTTLHours       int `mapstructure:"SESSION_TTL_HOURS"`
	SearchCacheTTLSeconds int `mapstructure:"SEARCH_CACHE_TTL_SECONDS"`
	RenderTimeoutSeconds  int `mapstructure:"RENDER_TIMEOUT_SECONDS"`
	RequestTimeoutSeconds int `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
}

var defaults = map[string]any{
	"SERVER_PORT":              "5000",
	"LOG_LEVEL":                "info",
	"LOG_FORMAT":               "json",
	"POSTGRES_URL":             "",
	"POSTGRES_MAX_CONNS":       10,
	"REDIS_ADDR":               "localhost:6379",
	"REDIS_PASSWORD":           "",
	"REDIS_DB":                 0,
	"UPLOAD_DIR":               "uploads",
	"MAX_UPLOAD_MB":            20,
	"STATIC_DIR":               "",
	"CORS_ORIGINS":             "*",
	"INBOX_DIR":                "",
	"INGEST_WORKERS":           2,
	"ADMIN_EMAIL":              "",
	"ADMIN_PASSWORD":           "",
	"SESSION_TTL_HOURS":        12,
	"SEARCH_CACHE_TTL_SECONDS": 30,
	"RENDER_TIMEOUT_SECONDS":   30,
	"REQUEST_TIMEOUT_SECONDS":  60,
}

// Load reads configuration from an optional .env file and the environment.
// Environment variables win over the file.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		// A missing file is fine, production runs on plain environment variables.
		_ = v.ReadInConfig()
	}
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	switch {
	case c.PostgresURL == "":
		return errors.New("config: POSTGRES_URL is required")
	case c.MaxUploadMB <= 0:
		return errors.New("config: MAX_UPLOAD_MB must be positive")
	case c.IngestWorkers <= 0:
		return errors.New("config: INGEST_WORKERS must be positive")
	case c.SessionTTLHours <= 0:
		return errors.New("config: SESSION_TTL_HOURS must be positive")
	case c.AdminEmail != "" && c.AdminPassword == "":
		return errors.New("config: ADMIN_PASSWORD is required when ADMIN_EMAIL is set")
	}
	return nil
}

func (c *Config) MaxUploadBytes() int64 { return c.MaxUploadMB << 20 }

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) SearchCacheTTL() time.Duration {
	return time.Duration(c.SearchCacheTTLSeconds) * time.Second
}

func (c *Config) RenderTimeout() time.Duration {
	return time.Duration(c.RenderTimeoutSeconds) * time.Second
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
