package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process configuration, read once at startup. The connection
// string and the session secret have no defaults: a process without them
// must not come up.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	DatabaseURL string `env:"DATABASE_URL, required"`

	SessionSecret string        `env:"SESSION_SECRET, required"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=168h"`

	CORSOrigin string `env:"CORS_ORIGIN, default=http://localhost:5173"`
	StaticDir  string `env:"STATIC_DIR,  default=static"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
