package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Placeholder credentials shipped in the sample .env file. A key still set to
// one of these counts as missing.
const (
	ClarifaiPATPlaceholder  = "your_clarifai_personal_access_token_here"
	SerperAPIKeyPlaceholder = "your_serper_api_key_here"
)

type Config struct {
	AppPort  int    `mapstructure:"APP_PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DatabasePath string        `mapstructure:"DATABASE_PATH"`
	SessionStore string        `mapstructure:"SESSION_STORE"`
	RedisAddr    string        `mapstructure:"REDIS_ADDR"`
	SessionTTL   time.Duration `mapstructure:"SESSION_TTL"`

	SerperAPIKey    string        `mapstructure:"SERPER_API_KEY"`
	SerperBaseURL   string        `mapstructure:"SERPER_BASE_URL"`
	SearchTimeout   time.Duration `mapstructure:"SEARCH_TIMEOUT"`
	SearchRateLimit float64       `mapstructure:"SEARCH_RATE_LIMIT"`
	NewsResults     int           `mapstructure:"NEWS_RESULTS"`

	ClarifaiPAT      string  `mapstructure:"CLARIFAI_PAT"`
	ClarifaiAPIBase  string  `mapstructure:"CLARIFAI_API_BASE"`
	DefaultModel     string  `mapstructure:"DEFAULT_MODEL"`
	ModelCatalogPath string  `mapstructure:"MODEL_CATALOG_PATH"`
	MaxTokens        int     `mapstructure:"MAX_TOKENS"`
	Temperature      float64 `mapstructure:"TEMPERATURE"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("DATABASE_PATH", ":memory:")
	viper.SetDefault("SESSION_STORE", "sqlite")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("SESSION_TTL", "24h")
	viper.SetDefault("SERPER_API_KEY", "")
	viper.SetDefault("SERPER_BASE_URL", "https://google.serper.dev")
	viper.SetDefault("SEARCH_TIMEOUT", "30s")
	viper.SetDefault("SEARCH_RATE_LIMIT", 0)
	viper.SetDefault("NEWS_RESULTS", 5)
	viper.SetDefault("CLARIFAI_PAT", "")
	viper.SetDefault("CLARIFAI_API_BASE", "https://api.clarifai.com/v2/ext/openai/v1")
	viper.SetDefault("DEFAULT_MODEL", "gpt-4o")
	viper.SetDefault("MODEL_CATALOG_PATH", "")
	viper.SetDefault("MAX_TOKENS", 800)
	viper.SetDefault("TEMPERATURE", 0.7)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ClarifaiConfigured reports whether a usable Clarifai PAT is set.
func (c *Config) ClarifaiConfigured() bool {
	return credentialSet(c.ClarifaiPAT, ClarifaiPATPlaceholder)
}

// SerperConfigured reports whether a usable Serper API key is set.
func (c *Config) SerperConfigured() bool {
	return credentialSet(c.SerperAPIKey, SerperAPIKeyPlaceholder)
}

func credentialSet(value, placeholder string) bool {
	v := strings.TrimSpace(value)
	return v != "" && v != placeholder
}
