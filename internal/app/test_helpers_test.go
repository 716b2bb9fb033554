// Where: stackup/internal/app/test_helpers_test.go
// What: Shared fakes and fixtures for app tests.
package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/rs/zerolog"

	"github.com/relaylytics/stackup/internal/config"
)

const testStackYAML = `services:
  backend:
    image: relaylytics/backend
  client:
    image: relaylytics/client
  clickhouse:
    image: clickhouse/clickhouse-server
  postgres:
    image: postgres:17
  caddy:
    image: caddy:2
`

type runnerCall struct {
	dir  string
	name string
	args []string
}

type fakeRunner struct {
	calls     []runnerCall
	runErr    error
	outputErr error
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	f.calls = append(f.calls, runnerCall{dir: dir, name: name, args: append([]string{}, args...)})
	return f.runErr
}

func (f *fakeRunner) RunOutput(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, runnerCall{dir: dir, name: name, args: append([]string{}, args...)})
	return nil, f.outputErr
}

// upCall returns the recorded `compose ... up` invocation, if any.
func (f *fakeRunner) upCall() (runnerCall, bool) {
	for _, call := range f.calls {
		for _, arg := range call.args {
			if arg == "up" {
				return call, true
			}
		}
	}
	return runnerCall{}, false
}

type fakeDocker struct {
	err error
}

func (f fakeDocker) Ping(context.Context) (types.Ping, error) {
	return types.Ping{}, f.err
}

// fakeSecrets yields a different deterministic string on every call so
// regenerated files are distinguishable from the originals.
type fakeSecrets struct {
	calls int
}

func (f *fakeSecrets) Generate(length int) (string, error) {
	f.calls++
	return strings.Repeat(string(rune('a'+f.calls%26)), length), nil
}

type testEnv struct {
	deps   Dependencies
	runner *fakeRunner
	out    *bytes.Buffer
	errOut *bytes.Buffer
	dir    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "docker-compose.yml"), []byte(testStackYAML), 0o644); err != nil {
		t.Fatalf("write compose file: %v", err)
	}

	runner := &fakeRunner{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	deps := Dependencies{
		WorkDir: dir,
		Out:     out,
		ErrOut:  errOut,
		Log:     zerolog.Nop(),
		Host: config.Host{
			EnvFile:     ".env",
			ComposeFile: "docker-compose.yml",
			ComposeBin:  "docker",
			Caddyfile:   "Caddyfile",
		},
		Secrets: &fakeSecrets{},
		Up: UpDeps{
			Runner: runner,
			Docker: fakeDocker{},
		},
	}
	return &testEnv{deps: deps, runner: runner, out: out, errOut: errOut, dir: dir}
}

func (e *testEnv) envPath() string {
	return filepath.Join(e.dir, ".env")
}

func (e *testEnv) caddyfilePath() string {
	return filepath.Join(e.dir, "Caddyfile")
}
