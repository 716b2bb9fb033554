// Where: stackup/internal/webserver/caddyfile_test.go
// What: Tests for Caddyfile rendering.
package webserver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderTargetsDomainAndServices(t *testing.T) {
	content, err := Render("myapp.example.com")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(content, "myapp.example.com {") {
		t.Fatalf("expected site block for domain, got:\n%s", content)
	}
	if !strings.Contains(content, "reverse_proxy backend:3001") {
		t.Fatalf("missing backend proxy target:\n%s", content)
	}
	if !strings.Contains(content, "reverse_proxy client:3002") {
		t.Fatalf("missing client proxy target:\n%s", content)
	}
}

func TestEnsureCaddyfileCreatesWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Caddyfile")
	created, err := EnsureCaddyfile(path, "myapp.example.com")
	if err != nil {
		t.Fatalf("EnsureCaddyfile: %v", err)
	}
	if !created {
		t.Fatal("expected file to be created")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(content), "myapp.example.com") {
		t.Fatalf("rendered file missing domain:\n%s", content)
	}
}

func TestEnsureCaddyfilePreservesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Caddyfile")
	original := "# hand-edited\nexample.com {\n}\n"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	created, err := EnsureCaddyfile(path, "other.example.com")
	if err != nil {
		t.Fatalf("EnsureCaddyfile: %v", err)
	}
	if created {
		t.Fatal("expected existing file to be left alone")
	}
	content, _ := os.ReadFile(path)
	if string(content) != original {
		t.Fatalf("existing file was modified:\n%s", content)
	}
}
