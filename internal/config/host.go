// Where: stackup/internal/config/host.go
// What: Host-level configuration parsed from the environment.
// Why: Let operators relocate files and binaries without flags on every run.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Host carries overridable paths and binaries for a stackup invocation.
// Relative paths are resolved against the working directory.
type Host struct {
	EnvFile     string `env:"STACKUP_ENV_FILE" envDefault:".env"`
	ComposeFile string `env:"STACKUP_COMPOSE_FILE" envDefault:"docker-compose.yml"`
	ComposeBin  string `env:"STACKUP_COMPOSE_BIN" envDefault:"docker"`
	Caddyfile   string `env:"STACKUP_CADDYFILE" envDefault:"Caddyfile"`
	Debug       bool   `env:"STACKUP_DEBUG" envDefault:"false"`
}

// ParseHost reads the STACKUP_* variables from the process environment.
func ParseHost() (Host, error) {
	var host Host
	if err := env.Parse(&host); err != nil {
		return Host{}, fmt.Errorf("parse host environment: %w", err)
	}
	return host, nil
}
