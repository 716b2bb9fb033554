// Where: stackup/internal/compose/runner.go
// What: Command execution abstraction for compose invocations.
// Why: Keep the shell-out behind an interface so commands can be faked in tests.
package compose

import (
	"context"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
)

// CommandRunner defines the interface for executing external commands.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
	RunOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner is a concrete implementation of CommandRunner using os/exec.
type ExecRunner struct {
	Log zerolog.Logger
}

// Run executes a command with inherited stdout/stderr.
func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	r.Log.Debug().Str("dir", dir).Str("cmd", name).Strs("args", args).Msg("exec")
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// RunOutput executes a command and returns its combined output.
func (r ExecRunner) RunOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	r.Log.Debug().Str("dir", dir).Str("cmd", name).Strs("args", args).Msg("exec (captured)")
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
