// Where: stackup/internal/compose/up.go
// What: Compose command construction for starting the stack.
// Why: Provide a minimal, testable wrapper around `docker compose up`.
package compose

import (
	"context"
	"fmt"
)

// Service names as defined in the stack's compose file.
const (
	ServiceBackend    = "backend"
	ServiceClient     = "client"
	ServiceClickhouse = "clickhouse"
	ServicePostgres   = "postgres"
	ServiceCaddy      = "caddy"
)

// CoreServices returns the services started when the bundled reverse proxy
// is disabled. Order matters only for readability of the invocation.
func CoreServices() []string {
	return []string{ServiceBackend, ServiceClient, ServiceClickhouse, ServicePostgres}
}

// AllServices returns every service in the stack, proxy included.
func AllServices() []string {
	return append(CoreServices(), ServiceCaddy)
}

// UpOptions contains configuration for starting the compose stack.
// An empty Services slice starts the compose file's full default set.
type UpOptions struct {
	RootDir     string
	Bin         string
	ComposeFile string
	EnvFile     string
	Detach      bool
	Services    []string
}

// UpStack invokes `<bin> compose up` with the stack's compose and env files.
// The call is fire-and-forget: process lifecycle, health, and restarts are
// the orchestrator's responsibility.
func UpStack(ctx context.Context, runner CommandRunner, opts UpOptions) error {
	if runner == nil {
		return fmt.Errorf("command runner is nil")
	}

	bin := opts.Bin
	if bin == "" {
		bin = "docker"
	}

	args := []string{"compose"}
	if opts.ComposeFile != "" {
		args = append(args, "-f", opts.ComposeFile)
	}
	if opts.EnvFile != "" {
		args = append(args, "--env-file", opts.EnvFile)
	}
	args = append(args, "up")
	if opts.Detach {
		args = append(args, "-d")
	}
	args = append(args, opts.Services...)

	return runner.Run(ctx, opts.RootDir, bin, args...)
}

// VerifyComposeBin checks that the compose plugin answers before any stack
// command is attempted.
func VerifyComposeBin(ctx context.Context, runner CommandRunner, dir, bin string) error {
	if runner == nil {
		return fmt.Errorf("command runner is nil")
	}
	if bin == "" {
		bin = "docker"
	}
	if _, err := runner.RunOutput(ctx, dir, bin, "compose", "version"); err != nil {
		return fmt.Errorf("%s compose is not available (is Docker installed?): %w", bin, err)
	}
	return nil
}
