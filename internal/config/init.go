package config

import (
	"fmt"
	"os"
)

const starterGlobalConfig = `# OSS gate host configuration.
service_url: https://oss-catalog.example.com
# api_token: set via OSSGATE_API_TOKEN or a .env file instead of here.

# disabled | new | all
check_policies: new
force_update: false
fail_on_error: true

# Minutes; blank or invalid falls back to 60.
connection_timeout: "60"

proxy:
  enabled: false
  # host: proxy.example.com
  # port: "8080"

history:
  enabled: false
  # path: ossgate-runs.db

events:
  enabled: false
  # nats_url: nats://localhost:4222
  # subject: ossgate.runs

metrics:
  enabled: false
  # path: ossgate-metrics.prom
`

// InitGlobal writes a starter global configuration file. Refuses to overwrite
// an existing file unless force is set.
func InitGlobal(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	}
	return os.WriteFile(path, []byte(starterGlobalConfig), 0o644)
}
