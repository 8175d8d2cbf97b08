package lockfile

import (
	"reflect"
	"strings"
	"testing"

	"github.com/fox-it/PyOxidizer/internal/testutil/testlog"
)

func samplePackages() []Package {
	return []Package{
		{Name: "placeholder_project", Version: "0.1.0"},
		{
			Name:         "foo",
			Version:      "1.0.0",
			Source:       "registry+https://github.com/rust-lang/crates.io-index",
			Checksum:     "aaaa",
			Dependencies: []string{"bar"},
		},
		{Name: "bar", Version: "2.1.3"},
	}
}

func TestSanitizeRemovesPlaceholderPreservingOrder(t *testing.T) {
	testlog.Start(t)
	got := Sanitize(samplePackages(), "placeholder_project")
	if len(got) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(got))
	}
	if got[0].Name != "foo" || got[1].Name != "bar" {
		t.Fatalf("unexpected order: %q, %q", got[0].Name, got[1].Name)
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	testlog.Start(t)
	once := Sanitize(samplePackages(), "placeholder_project")
	twice := Sanitize(once, "placeholder_project")
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("sanitize not idempotent\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestParseOrderedRecords(t *testing.T) {
	testlog.Start(t)
	text := `
version = 3

[[package]]
name = "placeholder_project"
version = "0.1.0"

[[package]]
name = "pyembed"
version = "2.0.0-pre"
dependencies = ["foo"]

[[package]]
name = "foo"
version = "1.0.0"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "bbbb"
`
	f, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Version != 3 {
		t.Fatalf("unexpected lock format version: %d", f.Version)
	}
	names := []string{f.Packages[0].Name, f.Packages[1].Name, f.Packages[2].Name}
	if names[0] != "placeholder_project" || names[1] != "pyembed" || names[2] != "foo" {
		t.Fatalf("unexpected package order: %v", names)
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	testlog.Start(t)
	f := File{Version: 3, Packages: Sanitize(samplePackages(), "placeholder_project")}

	text, err := f.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(text, "# This file is automatically @generated by Cargo.") {
		t.Fatalf("missing generated-file header: %q", text)
	}
	back, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !reflect.DeepEqual(f, back) {
		t.Fatalf("round trip mismatch\nin:  %+v\nout: %+v", f, back)
	}
}

func TestEncodeOmitsEmptyMetadata(t *testing.T) {
	testlog.Start(t)
	f := File{Version: 3, Packages: []Package{{Name: "bar", Version: "2.1.3"}}}
	text, err := f.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.Contains(text, "source") || strings.Contains(text, "checksum") {
		t.Fatalf("empty metadata fields must be omitted: %q", text)
	}
}
