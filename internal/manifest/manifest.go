// Package manifest reads crate manifests and renders the dependency section
// injected into scaffold projects.
package manifest

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// crateManifest is the Cargo.toml subset needed for version resolution.
type crateManifest struct {
	Package struct {
		Version string `toml:"version"`
	} `toml:"package"`
}

// PackageVersion reads the [package] version field from a crate manifest.
func PackageVersion(path string) (string, error) {
	var m crateManifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return "", fmt.Errorf("resolve crate version (%s): %w", path, err)
	}
	if strings.TrimSpace(m.Package.Version) == "" {
		return "", fmt.Errorf("resolve crate version (%s): no [package] version", path)
	}
	return m.Package.Version, nil
}

// NeedsPathOverride decides whether the injected dependency must also point
// at in-tree source. Pre-releases are not published, so a version carrying
// the pre-release marker always locks against the local path.
func NeedsPathOverride(version string, force bool) bool {
	return force || strings.HasSuffix(version, "-pre")
}

// DependencySection renders the manifest fragment for one pinned dependency
// with its default feature set disabled. path is optional.
func DependencySection(name string, version string, path string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[dependencies.%s]\n", name)
	fmt.Fprintf(&b, "version = %q\n", version)
	b.WriteString("default-features = false\n")
	if path != "" {
		fmt.Fprintf(&b, "path = %q\n", path)
	}
	return b.String()
}
