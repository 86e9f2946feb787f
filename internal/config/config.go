package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	Env             string        `env:"APP_ENV" envDefault:"dev"`
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	StoreDriver     string        `env:"STORE_DRIVER" envDefault:"memory"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	Migrate         bool          `env:"APP_MIGRATE"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	NATSURL         string        `env:"NATS_URL"`
	EventsSubject   string        `env:"EVENTS_SUBJECT" envDefault:"point.transactions"`
	EventWorkers    int           `env:"EVENT_WORKERS" envDefault:"4"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file, then the environment, then command line flags.
// Flags win over the environment when set.
func Load(args []string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env config")
	}

	fs := flag.NewFlagSet("point-service", flag.ContinueOnError)
	port := fs.String("port", "", "HTTP port, overrides HTTP_PORT")
	store := fs.String("store", "", "store driver (memory|postgres|redis), overrides STORE_DRIVER")
	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parse flags")
	}
	if *port != "" {
		cfg.HTTPPort = *port
	}
	if *store != "" {
		cfg.StoreDriver = *store
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.EventWorkers <= 0 {
		return fmt.Errorf("EVENT_WORKERS must be > 0, got %d", c.EventWorkers)
	}
	return nil
}
