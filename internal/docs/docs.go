// Package docs regenerates the Sphinx documentation tree.
package docs

import (
	"fmt"
	"io"

	"github.com/fox-it/PyOxidizer/internal/config"
	"github.com/fox-it/PyOxidizer/internal/run"
)

// toleratedSphinxErrors lists sphinx-build output that produces a non-zero
// exit status without invalidating the generated pages.
var toleratedSphinxErrors = []string{
	"WARNING: html_static_path entry",
	"failed to reach any of the inventories",
}

// GenerateSphinxFiles rebuilds the documentation under repoRoot, streaming
// build output to sink.
func GenerateSphinxFiles(repoRoot string, cfg config.Config, sink io.Writer) error {
	if _, err := run.Run(run.Command{
		Label:           "sphinx",
		Dir:             repoRoot,
		Program:         "sphinx-build",
		Args:            []string{"-b", "html", cfg.DocsSource, cfg.DocsBuildDir},
		ToleratedErrors: toleratedSphinxErrors,
	}, sink); err != nil {
		return fmt.Errorf("generating documentation: %w", err)
	}
	return nil
}
