package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_SERVER_ADDR is the base URL of a running server, e.g. http://localhost:8080.
	// The suites are skipped when it is empty.
	ServerAddr string `envconfig:"E2E_SERVER_ADDR"`
	// AUTH_SECRET must match the server's so the suites can mint their own tokens
	AuthSecret string `envconfig:"AUTH_SECRET" default:"secret"`
	// E2E_DEBUG_JSON allows dumping full request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
