package backoffice

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	apiclient "github.com/Apurer/go-gin-backoffice/internal/client/backoffice"
)

// DefaultAPIURL matches the API's default listen address.
const DefaultAPIURL = "http://localhost:8080/api"

// Config carries the settings of the terminal admin client.
type Config struct {
	APIURL  string
	Timeout time.Duration
	// LogFile receives the JSON logs; empty discards them.
	LogFile string
}

// LoadConfig reads BACKOFFICE_API_URL, BACKOFFICE_TIMEOUT_SECONDS and
// BACKOFFICE_LOG_FILE.
func LoadConfig() (Config, error) {
	cfg := Config{
		APIURL:  envDefault("BACKOFFICE_API_URL", DefaultAPIURL),
		Timeout: apiclient.DefaultTimeout,
		LogFile: strings.TrimSpace(os.Getenv("BACKOFFICE_LOG_FILE")),
	}
	if u, err := url.Parse(cfg.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("BACKOFFICE_API_URL must be an absolute URL, got %q", cfg.APIURL)
	}
	if raw := strings.TrimSpace(os.Getenv("BACKOFFICE_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("BACKOFFICE_TIMEOUT_SECONDS must be a positive integer, got %q", raw)
		}
		cfg.Timeout = time.Duration(seconds) * time.Second
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
