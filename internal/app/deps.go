// Where: stackup/internal/app/deps.go
// What: Injected dependencies for CLI execution.
// Why: Enable swapping the secret source, runner, and Docker client in tests.
package app

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/relaylytics/stackup/internal/compose"
	"github.com/relaylytics/stackup/internal/config"
)

// SecretSource produces random alphanumeric strings of a given length.
type SecretSource interface {
	Generate(length int) (string, error)
}

// Dependencies holds everything the setup command needs at runtime.
type Dependencies struct {
	WorkDir string
	Out     io.Writer
	ErrOut  io.Writer
	Log     zerolog.Logger
	Host    config.Host
	Secrets SecretSource
	Up      UpDeps
}

// UpDeps groups the collaborators used to start the stack.
type UpDeps struct {
	Runner compose.CommandRunner
	Docker compose.DockerClient
}
