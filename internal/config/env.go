package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by the overlay. Secrets are kept out
// of checked-in yaml by supplying them through the environment or a .env file.
const (
	EnvAPIToken   = "OSSGATE_API_TOKEN"
	EnvServiceURL = "OSSGATE_SERVICE_URL"
	EnvNATSURL    = "OSSGATE_NATS_URL"
	EnvProxyUser  = "OSSGATE_PROXY_USER"
	EnvProxyPass  = "OSSGATE_PROXY_PASSWORD"
)

// LoadEnvFiles loads .env then .env.local without overriding variables already
// present in the process environment.
func LoadEnvFiles() {
	for _, p := range []string{".env", ".env.local"} {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

// applyEnvOverlay lets environment variables supply or replace sensitive
// fields after the yaml file has been parsed.
func applyEnvOverlay(cfg *GlobalConfig) {
	if v := os.Getenv(EnvAPIToken); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv(EnvServiceURL); v != "" {
		cfg.ServiceURL = v
	}
	if v := os.Getenv(EnvNATSURL); v != "" {
		cfg.Events.NATSURL = v
	}
	if v := os.Getenv(EnvProxyUser); v != "" {
		cfg.Proxy.Username = v
	}
	if v := os.Getenv(EnvProxyPass); v != "" {
		cfg.Proxy.Password = v
	}
}
