package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	LMSBaseURL        string
	LMSToken          string
	GroqBaseURL       string
	GroqAPIKey        string
	GroqModel         string
	SaplingBaseURL    string
	SaplingAPIKey     string
	RedisURL          string
	AnalyticsCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
//
// Upstream credentials are optional at load time: routes needing a missing
// credential fail with a configuration error when invoked, so the service can
// boot with a partial set of integrations.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EDUAI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "EduAI API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("lms.base_url", "https://k12.instructure.com")
	v.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("groq.model", "llama-3.1-8b-instant")
	v.SetDefault("sapling.base_url", "https://api.sapling.ai")
	v.SetDefault("analytics.cache_ttl", "5m")

	ttlString := v.GetString("analytics.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid analytics cache ttl: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		LMSBaseURL:        strings.TrimRight(v.GetString("lms.base_url"), "/"),
		LMSToken:          v.GetString("lms.token"),
		GroqBaseURL:       strings.TrimRight(v.GetString("groq.base_url"), "/"),
		GroqAPIKey:        v.GetString("groq.api_key"),
		GroqModel:         v.GetString("groq.model"),
		SaplingBaseURL:    strings.TrimRight(v.GetString("sapling.base_url"), "/"),
		SaplingAPIKey:     v.GetString("sapling.api_key"),
		RedisURL:          v.GetString("redis.url"),
		AnalyticsCacheTTL: ttl,
	}

	if cfg.LMSBaseURL == "" {
		return Config{}, fmt.Errorf("lms base url must not be empty")
	}

	return cfg, nil
}
