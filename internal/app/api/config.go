package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.temporal.io/sdk/client"
	"gopkg.in/yaml.v3"

	platformpostgres "github.com/Apurer/go-gin-backoffice/internal/platform/postgres"
)

// ConfigPathEnv names the optional YAML configuration file.
const ConfigPathEnv = "BACKOFFICE_CONFIG"

// Config carries the settings for the API and worker processes.
type Config struct {
	Port              string
	PostgresDSN       string
	Database          platformpostgres.Params
	Pool              platformpostgres.PoolConfig
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
}

// fileConfig is the YAML layout of BACKOFFICE_CONFIG.
type fileConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Name     string `yaml:"name"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
}

// LoadConfig reads the optional config file, applies environment overrides
// and defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	return LoadConfigFrom(strings.TrimSpace(os.Getenv(ConfigPathEnv)))
}

// LoadConfigFrom is LoadConfig with an explicit file path; "" skips the file.
func LoadConfigFrom(path string) (Config, error) {
	var file fileConfig
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg := Config{
		Port:        firstNonEmpty(os.Getenv("PORT"), file.Server.Port, "8080"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		Database: platformpostgres.Params{
			Host:     firstNonEmpty(os.Getenv("POSTGRES_HOST"), file.Database.Host),
			Port:     file.Database.Port,
			Name:     firstNonEmpty(os.Getenv("POSTGRES_DB"), file.Database.Name),
			User:     firstNonEmpty(os.Getenv("POSTGRES_USER"), file.Database.User),
			Password: firstNonEmpty(os.Getenv("POSTGRES_PASSWORD"), file.Database.Password),
			SSLMode:  firstNonEmpty(os.Getenv("POSTGRES_SSLMODE"), file.Database.SSLMode),
		},
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}

	var err error
	if cfg.Database.Port, err = positiveIntEnv("POSTGRES_PORT", cfg.Database.Port); err != nil {
		return Config{}, err
	}
	if cfg.Pool.MaxOpenConns, err = positiveIntEnv("DB_MAX_OPEN_CONNS", 0); err != nil {
		return Config{}, err
	}
	if cfg.Pool.MaxIdleConns, err = positiveIntEnv("DB_MAX_IDLE_CONNS", 0); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN returns POSTGRES_DSN when set, otherwise the DSN assembled from the
// discrete database settings. "" means no database is configured.
func (c Config) DSN() string {
	if c.PostgresDSN != "" {
		return c.PostgresDSN
	}
	return c.Database.DSN()
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func positiveIntEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return value, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
