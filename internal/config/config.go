package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config centraliza la configuración del cliente.
type Config struct {
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:"127.0.0.1:8080"`
	LLMProvider   string `env:"LLM_PROVIDER" envDefault:"gemini"`
	APIKey        string `env:"API_KEY"`
	LLMModel      string `env:"LLM_MODEL" envDefault:"gemini-2.5-flash"`
	LLMBaseURL    string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	StoreDriver   string `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"golf_advisor.db"`
	DatabaseURL   string `env:"DATABASE_URL"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	SessionSecret string `env:"SESSION_SECRET"`
}

// LoadConfig carga la configuración desde variables de entorno.
// La falta de API_KEY no es fatal: se avisa al arrancar y falla cada llamada.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate revisa combinaciones que no se pueden expresar con tags.
func (c *Config) Validate() error {
	c.LLMProvider = strings.ToLower(strings.TrimSpace(c.LLMProvider))
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))

	switch c.LLMProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	switch c.StoreDriver {
	case StoreSQLite, StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("STORE_DRIVER=redis requires REDIS_ADDR")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORE_DRIVER=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// HasAPIKey indica si hay credencial para el servicio generativo.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}
