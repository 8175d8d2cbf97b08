// Package lockfile parses, sanitizes, and re-serializes Cargo lock artifacts.
package lockfile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// header matches the banner cargo writes on generated lock files.
const header = "# This file is automatically @generated by Cargo.\n# It is not intended for manual editing.\n"

// Package is one resolved [[package]] record. Source, checksum, and
// dependency metadata are carried opaquely.
type Package struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Source       string   `toml:"source,omitempty"`
	Checksum     string   `toml:"checksum,omitempty"`
	Dependencies []string `toml:"dependencies,omitempty"`
}

// File is an ordered lock artifact.
type File struct {
	Version  int       `toml:"version"`
	Packages []Package `toml:"package"`
}

// Load reads and parses a lock artifact from disk.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("load lock file (%s): %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("load lock file (%s): %w", path, err)
	}
	return f, nil
}

// Parse decodes lock-artifact text into ordered package records.
func Parse(data []byte) (File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse lock file: %w", err)
	}
	return f, nil
}

// Sanitize returns pkgs without any record named placeholder, relative order
// preserved. Pure and idempotent.
func Sanitize(pkgs []Package, placeholder string) []Package {
	out := make([]Package, 0, len(pkgs))
	for _, p := range pkgs {
		if p.Name == placeholder {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Encode renders the canonical lock-artifact text form.
func (f File) Encode() (string, error) {
	var buf bytes.Buffer
	buf.WriteString(header)
	buf.WriteString("\n")
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return "", fmt.Errorf("encode lock file: %w", err)
	}
	return buf.String(), nil
}
