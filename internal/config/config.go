package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	LogLevel       zerolog.Level
	AllowOrigins   string
	DatabaseURL    string
	RedisURL       string
	LookupCacheTTL time.Duration
	NATSURL        string
	NATSSubject    string
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	OpenAITimeout  time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional .env file.
// The OpenAI key may be absent; the refine endpoint then reports a failed status.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("REFINER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Prompt Refiner API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.allow_origins", "*")
	v.SetDefault("log.level", "info")
	v.SetDefault("lookup.cache_ttl", "1m")
	v.SetDefault("nats.subject", "refiner.feedback.submitted")
	v.SetDefault("openai.model", "gpt-4")
	v.SetDefault("openai.timeout", "60s")

	if err := v.BindEnv("openai.api_key", "REFINER_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind openai api key: %w", err)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("log.level")))
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}

	cacheTTL, err := parseDuration(v, "lookup.cache_ttl")
	if err != nil {
		return Config{}, err
	}

	timeout, err := parseDuration(v, "openai.timeout")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		LogLevel:       level,
		AllowOrigins:   v.GetString("app.allow_origins"),
		DatabaseURL:    v.GetString("database.url"),
		RedisURL:       v.GetString("redis.url"),
		LookupCacheTTL: cacheTTL,
		NATSURL:        v.GetString("nats.url"),
		NATSSubject:    v.GetString("nats.subject"),
		OpenAIAPIKey:   strings.TrimSpace(v.GetString("openai.api_key")),
		OpenAIModel:    v.GetString("openai.model"),
		OpenAIBaseURL:  v.GetString("openai.base_url"),
		OpenAITimeout:  timeout,
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4"
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
