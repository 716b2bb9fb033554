// Where: stackup/cmd/stackup/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/relaylytics/stackup/internal/app"
	"github.com/relaylytics/stackup/internal/compose"
	"github.com/relaylytics/stackup/internal/config"
	"github.com/relaylytics/stackup/internal/secret"
)

var (
	getwd           = os.Getwd
	newDockerClient = func() (compose.DockerClient, error) { return compose.NewDockerClient() }
)

// buildDependencies constructs the runtime dependencies for the CLI:
// working directory, host configuration, logger, Docker client, secret
// generator, and command runner.
func buildDependencies() (app.Dependencies, io.Closer, error) {
	workDir, err := getwd()
	if err != nil {
		return app.Dependencies{}, nil, err
	}

	host, err := config.ParseHost()
	if err != nil {
		return app.Dependencies{}, nil, err
	}
	logger := newLogger(host)

	client, err := newDockerClient()
	if err != nil {
		return app.Dependencies{}, nil, err
	}

	deps := app.Dependencies{
		WorkDir: workDir,
		Out:     os.Stdout,
		ErrOut:  os.Stderr,
		Log:     logger,
		Host:    host,
		Secrets: secret.New(),
		Up: app.UpDeps{
			Runner: compose.ExecRunner{Log: logger},
			Docker: client,
		},
	}
	return deps, asCloser(client), nil
}

// newLogger builds the diagnostic logger. User-facing output goes through
// ui.Console; this logger only carries traces, raised to debug level by
// STACKUP_DEBUG.
func newLogger(host config.Host) zerolog.Logger {
	level := zerolog.WarnLevel
	if host.Debug {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// asCloser attempts to cast the Docker client to an io.Closer.
func asCloser(client compose.DockerClient) io.Closer {
	if closer, ok := client.(io.Closer); ok {
		return closer
	}
	return nil
}
