// Where: stackup/internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher around kong.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/relaylytics/stackup/internal/version"
)

// CLI defines the command-line interface structure parsed by Kong.
// stackup has a single operation, so everything hangs off the root:
// one required domain argument plus mode flags.
type CLI struct {
	Domain      string           `arg:"" help:"Domain name the stack will be served from (e.g. analytics.example.com)."`
	NoWebserver bool             `name:"no-webserver" help:"Skip the bundled Caddy reverse proxy and publish service ports directly."`
	BackendPort int              `name:"backend-port" default:"3001" help:"Host port for the backend API."`
	ClientPort  int              `name:"client-port" default:"3002" help:"Host port for the web client."`
	Insecure    bool             `help:"Skip generating database passwords (local development only)."`
	Force       bool             `help:"Overwrite an existing environment file, regenerating every secret."`
	Version     kong.VersionFlag `help:"Show version information."`
}

// Run parses the arguments and executes setup. Returns the process exit
// code: 0 for success, help, or version; 1 for any error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := deps.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}

	cli := CLI{}
	// Kong wants to terminate the process for --help and --version; capture
	// the code instead so callers keep control.
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name("stackup"),
		kong.Description("Bootstrap a self-hosted analytics stack: generate secrets, write the environment file, and start the services."),
		kong.Writers(out, errOut),
		kong.Exit(func(code int) {
			if exitCode < 0 {
				exitCode = code
			}
		}),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	_, parseErr := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if parseErr != nil {
		return usageError(errOut, parseErr)
	}

	return runSetup(cli, deps, out, errOut)
}

func usageError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "stackup: %v\n", err)
	fmt.Fprintln(errOut, "Run 'stackup --help' for usage.")
	return 1
}

func fail(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "stackup: %v\n", err)
	return 1
}
