// Where: stackup/internal/config/settings.go
// What: Validated setup settings and environment record assembly.
// Why: Build the whole record in memory so the writer can persist it atomically.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/relaylytics/stackup/internal/envfile"
)

// Environment record keys consumed by the compose stack.
const (
	KeyDomainName         = "DOMAIN_NAME"
	KeyBaseURL            = "BASE_URL"
	KeyAuthSecret         = "BETTER_AUTH_SECRET"
	KeyDisableSignup      = "DISABLE_SIGNUP"
	KeyClickhousePassword = "CLICKHOUSE_PASSWORD"
	KeyPostgresPassword   = "POSTGRES_PASSWORD"
	KeyHostBackendPort    = "HOST_BACKEND_PORT"
	KeyHostClientPort     = "HOST_CLIENT_PORT"
	KeyUseWebserver       = "USE_WEBSERVER"
)

// Container-side ports the backend and client listen on behind the proxy.
const (
	DefaultBackendPort = 3001
	DefaultClientPort  = 3002
)

const (
	authSecretLength = 32
	passwordLength   = 16
)

// SecretSource produces random alphanumeric strings of a given length.
type SecretSource interface {
	Generate(length int) (string, error)
}

// Settings are the validated inputs of a single setup run.
type Settings struct {
	Domain      string
	NoWebserver bool
	Insecure    bool
	BackendPort int
	ClientPort  int
}

// Validate checks the domain shape and port ranges. Failures are usage
// errors and abort the run before anything touches the filesystem.
func (s Settings) Validate() error {
	domain := strings.TrimSpace(s.Domain)
	if domain == "" {
		return errors.New("domain name is required")
	}
	if strings.ContainsAny(domain, " \t") {
		return fmt.Errorf("domain must not contain whitespace: %q", s.Domain)
	}
	if strings.Contains(domain, "://") || strings.Contains(domain, "/") {
		return fmt.Errorf("domain must be a bare hostname without scheme or path: %q", s.Domain)
	}
	if err := validatePort("backend", s.BackendPort); err != nil {
		return err
	}
	return validatePort("client", s.ClientPort)
}

func validatePort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s port must be between 1 and 65535, got %d", name, port)
	}
	return nil
}

// BuildRecord assembles the complete environment record, generating fresh
// secrets from the given source. Key order is fixed; downstream tooling
// diffs these files.
func (s Settings) BuildRecord(secrets SecretSource) (*envfile.Record, error) {
	if secrets == nil {
		return nil, errors.New("secret source is nil")
	}

	domain := strings.TrimSpace(s.Domain)
	record := envfile.NewRecord()
	record.Set(KeyDomainName, domain)
	record.Set(KeyBaseURL, "https://"+domain)

	authSecret, err := secrets.Generate(authSecretLength)
	if err != nil {
		return nil, fmt.Errorf("generate auth secret: %w", err)
	}
	record.Set(KeyAuthSecret, authSecret)
	record.Set(KeyDisableSignup, "false")

	if !s.Insecure {
		clickhouse, err := secrets.Generate(passwordLength)
		if err != nil {
			return nil, fmt.Errorf("generate clickhouse password: %w", err)
		}
		postgres, err := secrets.Generate(passwordLength)
		if err != nil {
			return nil, fmt.Errorf("generate postgres password: %w", err)
		}
		record.Set(KeyClickhousePassword, clickhouse)
		record.Set(KeyPostgresPassword, postgres)
	}

	if backend := s.portMapping(s.BackendPort, DefaultBackendPort); backend != "" {
		record.Set(KeyHostBackendPort, backend)
	}
	if client := s.portMapping(s.ClientPort, DefaultClientPort); client != "" {
		record.Set(KeyHostClientPort, client)
	}

	if s.NoWebserver {
		record.Set(KeyUseWebserver, "false")
	}
	return record, nil
}

// portMapping implements the port-binding policy.
//
// Without the webserver the service itself is the public endpoint: it is
// published on all interfaces and the container follows the host port.
// With the webserver in front, a non-default host port is bound to loopback
// only and forwarded to the fixed container port; default ports emit nothing
// and the compose file's own defaults apply.
func (s Settings) portMapping(hostPort, containerPort int) string {
	if s.NoWebserver {
		return fmt.Sprintf("%d:%d", hostPort, hostPort)
	}
	if hostPort != containerPort {
		return fmt.Sprintf("127.0.0.1:%d:%d", hostPort, containerPort)
	}
	return ""
}
