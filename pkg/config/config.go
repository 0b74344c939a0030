package config

import (
	"errors"
	"io/fs"
	"log"
	"sync"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var (
	once     sync.Once
	instance *Config
)

// DefaultEnvFile is read when present. Real environment variables take precedence.
const DefaultEnvFile = "./configs/.env"

type Config struct {
	APIAddress    string   `env:"API_ADDRESS" envDefault:":3000"`
	LogLevel      string   `env:"LOG_LEVEL" envDefault:"info"`
	MigrationsDir string   `env:"MIGRATIONS_DIR"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic    string   `env:"KAFKA_TOPIC" envDefault:"exercise.activities"`

	Postgres struct {
		Address  string `env:"POSTGRES_DB_ADDRESS" envDefault:"localhost:5432"`
		Username string `env:"POSTGRES_USER,required"`
		Password string `env:"POSTGRES_PASSWORD,required"`
		DB       string `env:"POSTGRES_DB,required"`
		Params   string `env:"POSTGRES_PARAMS"`
	}
}

// New returns the process-wide config, loading it on first use.
func New() *Config {
	once.Do(func() {
		cfg, err := Load(DefaultEnvFile)
		if err != nil {
			log.Fatal("loading envs error: ", err)
		}
		instance = cfg
	})
	return instance
}

// Load reads envFiles (missing ones are skipped) and parses the environment.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
