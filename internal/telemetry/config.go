package telemetry

import (
	"os"
	"strconv"
)

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// LoadConfig loads OTEL configuration from environment variables.
func LoadConfig() Config {
	enabled, _ := strconv.ParseBool(os.Getenv("HOOKR_OTEL_ENABLED"))
	insecure, _ := strconv.ParseBool(os.Getenv("HOOKR_OTEL_INSECURE"))

	return Config{
		Endpoint: os.Getenv("HOOKR_OTEL_ENDPOINT"),
		Enabled:  enabled,
		Insecure: insecure,
	}
}

// Active reports whether metrics should be exported.
func (c Config) Active() bool {
	return c.Enabled && c.Endpoint != ""
}
