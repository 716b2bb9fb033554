// Where: stackup/internal/envfile/envfile.go
// What: Ordered KEY=VALUE environment file records and atomic persistence.
// Why: Downstream services read this file; a half-written record must never be observable.
package envfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"
)

// Pair is a single KEY=VALUE entry.
type Pair struct {
	Key   string
	Value string
}

// Record is an ordered list of environment entries. Keys keep their
// insertion order when encoded; setting an existing key updates it in place.
type Record struct {
	pairs []Pair
}

func NewRecord() *Record {
	return &Record{}
}

// Set adds the key or replaces its value without changing its position.
func (r *Record) Set(key, value string) {
	for i := range r.pairs {
		if r.pairs[i].Key == key {
			r.pairs[i].Value = value
			return
		}
	}
	r.pairs = append(r.pairs, Pair{Key: key, Value: value})
}

// Get returns the value for key and whether it is present.
func (r *Record) Get(key string) (string, bool) {
	for _, p := range r.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Pairs returns the entries in insertion order.
func (r *Record) Pairs() []Pair {
	return append([]Pair(nil), r.pairs...)
}

// Encode renders the record as newline-separated KEY=VALUE lines.
// Values containing a colon are double-quoted so compose port mappings
// survive shell-style parsing.
func (r *Record) Encode() string {
	var b strings.Builder
	for _, p := range r.pairs {
		value := p.Value
		if strings.Contains(value, ":") {
			value = `"` + value + `"`
		}
		fmt.Fprintf(&b, "%s=%s\n", p.Key, value)
	}
	return b.String()
}

// Write persists the record atomically: the content is written to a
// temporary file next to path and renamed over it. Callers either see the
// previous file or the complete new one.
func Write(path string, record *Record) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(record.Encode()), 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Exists reports whether an environment file is already present at path.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

// Load reads an existing environment file into a map.
func Load(path string) (map[string]string, error) {
	return godotenv.Read(path)
}

// NewLock returns an advisory lock guarding the check-then-write window for
// the environment file at path. The lock file lives next to the target so
// concurrent invocations contend on the same inode.
func NewLock(path string) *flock.Flock {
	return flock.New(path + ".lock")
}
