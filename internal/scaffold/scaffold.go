package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/fox-it/PyOxidizer/internal/config"
	"github.com/fox-it/PyOxidizer/internal/lockfile"
	"github.com/fox-it/PyOxidizer/internal/manifest"
	"github.com/fox-it/PyOxidizer/internal/run"
)

// Builder generates the synthetic new-project lock artifact. Toolchain output
// is streamed to Sink as it is produced.
type Builder struct {
	RepoRoot string
	Config   config.Config
	Sink     io.Writer
}

// GenerateLock builds an ephemeral scaffold project, injects the embed crate
// dependency, resolves its lock file offline, and returns the sanitized lock
// text. The scaffold directory is removed on every exit path; the returned
// text is the only value that outlives the call.
func (b Builder) GenerateLock(forcePath bool) (string, error) {
	tempDir, err := os.MkdirTemp("", "releasectl-scaffold-")
	if err != nil {
		return "", fmt.Errorf("creating scaffold directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	projectDir := filepath.Join(tempDir, b.Config.PlaceholderName)
	if _, err := run.Run(run.Command{
		Label:   "cargo-init",
		Dir:     tempDir,
		Program: "cargo",
		Args:    []string{"init", "--bin", projectDir},
	}, b.Sink); err != nil {
		return "", fmt.Errorf("initializing scaffold project: %w", err)
	}

	embedDir := filepath.Join(b.RepoRoot, b.Config.EmbedCrate)
	version, err := manifest.PackageVersion(filepath.Join(embedDir, "Cargo.toml"))
	if err != nil {
		return "", err
	}

	// Published versions lock against registry metadata; unpublished ones
	// must reference the in-tree crate.
	depPath := ""
	if manifest.NeedsPathOverride(version, forcePath) {
		depPath = embedDir
	}
	section := manifest.DependencySection(b.Config.EmbedCrate, version, depPath)

	extra, err := os.ReadFile(filepath.Join(b.RepoRoot, b.Config.TemplatePath))
	if err != nil {
		return "", fmt.Errorf("reading manifest template fragment: %w", err)
	}

	if err := appendManifest(filepath.Join(projectDir, "Cargo.toml"), section, extra); err != nil {
		return "", err
	}

	if _, err := run.Run(run.Command{
		Label:   "cargo-lock",
		Dir:     projectDir,
		Program: "cargo",
		Args:    []string{"generate-lockfile", "--offline"},
	}, b.Sink); err != nil {
		return "", fmt.Errorf("generating lock file: %w", err)
	}

	lock, err := lockfile.Load(filepath.Join(projectDir, "Cargo.lock"))
	if err != nil {
		return "", err
	}
	lock.Packages = lockfile.Sanitize(lock.Packages, b.Config.PlaceholderName)

	log.Info().
		Str("version", version).
		Bool("path_override", depPath != "").
		Int("packages", len(lock.Packages)).
		Msg("scaffold lock generated")

	return lock.Encode()
}

// appendManifest appends the dependency section and the shared template
// fragment to the scaffold manifest. The template is handlebars on disk but
// contains no substitutions, so it is appended verbatim.
func appendManifest(path string, section string, extra []byte) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading scaffold manifest: %w", err)
	}
	data = append(data, section...)
	data = append(data, extra...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing scaffold manifest: %w", err)
	}
	return nil
}
