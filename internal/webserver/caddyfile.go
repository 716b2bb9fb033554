// Where: stackup/internal/webserver/caddyfile.go
// What: Render the reverse-proxy Caddyfile from an embedded template.
// Why: A fresh install needs a working proxy config for the chosen domain.
package webserver

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/relaylytics/stackup/internal/config"
)

//go:embed templates/Caddyfile.tmpl
var templateFS embed.FS

type caddyfileData struct {
	Domain      string
	BackendPort int
	ClientPort  int
}

// Render produces the Caddyfile content for the given domain. The proxy
// always targets the fixed container-side ports.
func Render(domain string) (string, error) {
	tmpl, err := template.New("Caddyfile.tmpl").
		Funcs(sprig.FuncMap()).
		ParseFS(templateFS, "templates/Caddyfile.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse caddyfile template: %w", err)
	}

	data := caddyfileData{
		Domain:      domain,
		BackendPort: config.DefaultBackendPort,
		ClientPort:  config.DefaultClientPort,
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render caddyfile: %w", err)
	}
	return buf.String(), nil
}

// EnsureCaddyfile writes a rendered Caddyfile to path unless one already
// exists. A hand-edited file is never clobbered. Reports whether a file
// was created.
func EnsureCaddyfile(path, domain string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	content, err := Render(domain)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
