package glide

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variable names read once at startup.
const (
	envAPIKey      = "GLIDE_API_KEY"
	envAPIVersion  = "GLIDE_API_VERSION"
	envTimeout     = "GLIDE_TIMEOUT"
	envMetricsAddr = "METRICS_ADDR"
)

// Config holds process configuration read from the environment.
type Config struct {
	APIKey      string        // GLIDE_API_KEY
	APIVersion  string        // GLIDE_API_VERSION: "v1" or "v2"
	Timeout     time.Duration // GLIDE_TIMEOUT in seconds, default 30
	MetricsAddr string        // METRICS_ADDR; empty disables the listener
}

// LoadConfig reads configuration from environment variables. Credentials are
// optional: without both GLIDE_API_KEY and GLIDE_API_VERSION the server
// starts unconfigured and waits for set_api_version.
func LoadConfig() (*Config, error) {
	config := &Config{
		APIKey:      os.Getenv(envAPIKey),
		APIVersion:  os.Getenv(envAPIVersion),
		Timeout:     defaultTimeout,
		MetricsAddr: os.Getenv(envMetricsAddr),
	}

	if timeoutStr := os.Getenv(envTimeout); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid %s value %q: must be a positive integer (seconds)", envTimeout, timeoutStr)
		}
		config.Timeout = time.Duration(seconds) * time.Second
	}

	return config, nil
}

// HasCredentials reports whether both bootstrap variables are set. Their
// validity is decided by Session.SetVersion.
func (c *Config) HasCredentials() bool {
	return c.APIKey != "" && c.APIVersion != ""
}
