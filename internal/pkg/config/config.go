package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=warn"`
	LogPretty bool   `env:"LOG_PRETTY, default=true"`
	// OpsAddr enables the health and metrics endpoint when set, e.g. ":9090".
	OpsAddr string `env:"OPS_ADDR"`

	Store StoreConfig
}

type StoreConfig struct {
	UsersFile   string `env:"STORE_USERS_FILE,   default=users.txt"`
	Persist     bool   `env:"STORE_PERSIST,      default=true"`
	SeedCatalog bool   `env:"STORE_SEED_CATALOG, default=true"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
