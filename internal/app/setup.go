// Where: stackup/internal/app/setup.go
// What: The setup flow: validate, lock, write the env file, start the stack.
// Why: Keep the whole sequence in one place so the ordering stays obvious.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/relaylytics/stackup/internal/compose"
	"github.com/relaylytics/stackup/internal/config"
	"github.com/relaylytics/stackup/internal/envfile"
	"github.com/relaylytics/stackup/internal/ui"
	"github.com/relaylytics/stackup/internal/webserver"
)

// runSetup executes the one-shot bootstrap. Every failure is fatal and the
// environment file is only ever written whole.
func runSetup(cli CLI, deps Dependencies, out, errOut io.Writer) int {
	settings := config.Settings{
		Domain:      strings.TrimSpace(cli.Domain),
		NoWebserver: cli.NoWebserver,
		Insecure:    cli.Insecure,
		BackendPort: cli.BackendPort,
		ClientPort:  cli.ClientPort,
	}
	if err := settings.Validate(); err != nil {
		return usageError(errOut, err)
	}

	console := ui.New(out)
	envPath := resolvePath(deps.WorkDir, deps.Host.EnvFile)

	// Hold an advisory lock across the exists-check and the write so two
	// concurrent invocations cannot race on the same file.
	lock := envfile.NewLock(envPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fail(errOut, fmt.Errorf("lock %s: %w", envPath, err))
	}
	if !locked {
		return fail(errOut, fmt.Errorf("another stackup invocation is already running (lock held on %s.lock)", envPath))
	}
	defer lock.Unlock()

	exists, err := envfile.Exists(envPath)
	if err != nil {
		return fail(errOut, err)
	}
	if exists && !cli.Force {
		console.Warn(fmt.Sprintf("%s already exists.", deps.Host.EnvFile))
		if existing, err := envfile.Load(envPath); err == nil {
			if domain := existing[config.KeyDomainName]; domain != "" {
				console.ItemPlain(fmt.Sprintf("The stack is currently configured for %s.", domain))
			}
		}
		console.ItemPlain("Running setup again would regenerate every secret and cut the running")
		console.ItemPlain("services off from their databases. Pass --force to overwrite anyway.")
		return 1
	}

	deps.Log.Debug().
		Str("domain", settings.Domain).
		Bool("webserver", !settings.NoWebserver).
		Bool("force", cli.Force).
		Msg("building environment record")

	record, err := settings.BuildRecord(deps.Secrets)
	if err != nil {
		return fail(errOut, err)
	}
	if err := envfile.Write(envPath, record); err != nil {
		return fail(errOut, fmt.Errorf("write %s: %w", envPath, err))
	}
	console.Success(fmt.Sprintf("Wrote %s", deps.Host.EnvFile))

	if !settings.NoWebserver {
		caddyPath := resolvePath(deps.WorkDir, deps.Host.Caddyfile)
		created, err := webserver.EnsureCaddyfile(caddyPath, settings.Domain)
		if err != nil {
			return fail(errOut, err)
		}
		if created {
			console.Success(fmt.Sprintf("Wrote %s", deps.Host.Caddyfile))
		}
	}

	ctx := context.Background()
	if err := compose.VerifyComposeBin(ctx, deps.Up.Runner, deps.WorkDir, deps.Host.ComposeBin); err != nil {
		return fail(errOut, err)
	}
	if err := compose.PingDaemon(ctx, deps.Up.Docker); err != nil {
		return fail(errOut, err)
	}

	composePath := resolvePath(deps.WorkDir, deps.Host.ComposeFile)
	var services []string
	required := compose.AllServices()
	if settings.NoWebserver {
		services = compose.CoreServices()
		required = compose.CoreServices()
	}
	if err := compose.VerifyStackFile(composePath, required); err != nil {
		return fail(errOut, err)
	}

	console.Info("Starting services in the background...")
	err = compose.UpStack(ctx, deps.Up.Runner, compose.UpOptions{
		RootDir:     deps.WorkDir,
		Bin:         deps.Host.ComposeBin,
		ComposeFile: composePath,
		EnvFile:     envPath,
		Detach:      true,
		Services:    services,
	})
	if err != nil {
		return fail(errOut, fmt.Errorf("start stack: %w", err))
	}

	printSummary(console, settings, deps.Host)
	return 0
}

func printSummary(console *ui.Console, settings config.Settings, host config.Host) {
	console.Blank()
	console.Success("Setup complete")
	console.Header("🌐", "Your stack:")
	console.Item("Domain", settings.Domain)
	console.Item("URL", "https://"+settings.Domain)
	if settings.NoWebserver {
		console.Item("Backend", fmt.Sprintf("port %d (all interfaces)", settings.BackendPort))
		console.Item("Client", fmt.Sprintf("port %d (all interfaces)", settings.ClientPort))
		console.ItemPlain("Point your own reverse proxy at these ports.")
	}
	console.Blank()
	console.ItemPlain("Secrets live in " + host.EnvFile + "; keep it out of version control.")
	console.ItemPlain("Next:")
	console.ItemPlain("  " + host.ComposeBin + " compose logs -f   # follow service logs")
	console.ItemPlain("  " + host.ComposeBin + " compose down      # stop the stack")
}

func resolvePath(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}
