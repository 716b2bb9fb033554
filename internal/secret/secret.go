// Where: stackup/internal/secret/secret.go
// What: Random secret generation for stack credentials.
// Why: Prefer crypto/rand, fall back to the OS entropy device, never degrade silently.
package secret

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoSecureSource is returned when neither the primary reader nor the
// entropy device can provide random bytes.
var ErrNoSecureSource = errors.New("no secure randomness available")

const entropyDevice = "/dev/urandom"

// Generator produces random alphanumeric strings. Primary is read first;
// EntropyPath names an OS entropy device used when the primary fails.
// Both fields are exported so tests can inject failing or deterministic
// sources.
type Generator struct {
	Primary     io.Reader
	EntropyPath string
}

// New returns a Generator backed by crypto/rand with /dev/urandom as fallback.
func New() *Generator {
	return &Generator{Primary: rand.Reader, EntropyPath: entropyDevice}
}

// Generate returns a string of exactly length characters drawn from
// [A-Za-z0-9]. A non-positive length is rejected. If no secure source is
// available the call fails with ErrNoSecureSource.
func (g *Generator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("secret length must be positive, got %d", length)
	}

	if s, err := g.fromPrimary(length); err == nil {
		return s, nil
	}
	if s, err := g.fromEntropyDevice(length); err == nil {
		return s, nil
	}
	return "", ErrNoSecureSource
}

func (g *Generator) fromPrimary(length int) (string, error) {
	if g.Primary == nil {
		return "", errors.New("no primary source configured")
	}
	buf := make([]byte, (length+1)/2)
	if _, err := io.ReadFull(g.Primary, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf)[:length], nil
}

// fromEntropyDevice reads raw bytes and keeps only alphanumeric ones until
// the requested length is reached.
func (g *Generator) fromEntropyDevice(length int) (string, error) {
	if g.EntropyPath == "" {
		return "", errors.New("no entropy device configured")
	}
	device, err := os.Open(g.EntropyPath)
	if err != nil {
		return "", err
	}
	defer device.Close()

	out := make([]byte, 0, length)
	buf := make([]byte, 256)
	for len(out) < length {
		n, err := device.Read(buf)
		if n == 0 {
			if err == nil {
				err = io.ErrNoProgress
			}
			return "", err
		}
		for _, b := range buf[:n] {
			if isAlphanumeric(b) {
				out = append(out, b)
				if len(out) == length {
					break
				}
			}
		}
	}
	return string(out), nil
}

func isAlphanumeric(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
