package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds every runtime knob, populated from the environment. A .env
// file in the working directory is merged in first when present.
type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	DBPath      string `env:"DB_PATH" env-default:"./data/wordtrainer.db"`
	CORSOrigins string `env:"CORS_ORIGINS" env-default:"*"`

	SessionSecret string `env:"SESSION_SECRET" env-default:"wordtrainer-dev-secret"`
	IntegrityKey  string `env:"INTEGRITY_KEY" env-default:"wordtrainer-dev-integrity"`

	AIEnabled       bool          `env:"AI_ENABLED" env-default:"true"`
	OllamaURL       string        `env:"OLLAMA_URL" env-default:"http://localhost:11434"`
	OllamaModel     string        `env:"OLLAMA_MODEL" env-default:"llama3"`
	GenerateTimeout time.Duration `env:"GENERATE_TIMEOUT" env-default:"180s"`

	FallbackDictPath string `env:"FALLBACK_DICT" env-default:""`

	PrecacheOnStart bool `env:"PRECACHE_ON_START" env-default:"false"`
	PrecacheWorkers int  `env:"PRECACHE_WORKERS" env-default:"4"`

	TopUpEnabled  bool          `env:"TOPUP_ENABLED" env-default:"false"`
	TopUpInterval time.Duration `env:"TOPUP_INTERVAL" env-default:"30m"`
}

// Load reads configuration from .env (if present) and the process environment.
func Load() (*Config, error) {
	// Missing .env is not an error; the environment alone is enough.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	if cfg.PrecacheWorkers < 1 {
		cfg.PrecacheWorkers = 1
	}
	return &cfg, nil
}
