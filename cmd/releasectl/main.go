package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fox-it/PyOxidizer/internal/config"
	"github.com/fox-it/PyOxidizer/internal/docs"
	"github.com/fox-it/PyOxidizer/internal/logging"
	"github.com/fox-it/PyOxidizer/internal/scaffold"
	"github.com/fox-it/PyOxidizer/internal/vcs"
)

func main() {
	logging.ConfigureRuntime()
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "releasectl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "releasectl",
		Short:         "Perform releases from the PyOxidizer repository",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var forcePath bool
	generate := &cobra.Command{
		Use:   "generate-new-project-cargo-lock",
		Short: "Emit a Cargo.lock file for a newly generated project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commandGenerateLock(cmd, forcePath)
		},
	}
	generate.Flags().BoolVar(&forcePath, "force-path", false,
		"always reference the embed crate by local path")

	sync := &cobra.Command{
		Use:   "synchronize-generated-files",
		Short: "Write out generated files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commandSynchronize()
		},
	}

	root.AddCommand(generate, sync)
	return root
}

// newBuilder resolves the repository root from the working directory and
// assembles the scaffold builder. Toolchain output streams to stderr so
// stdout stays reserved for the lock artifact.
func newBuilder() (scaffold.Builder, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return scaffold.Builder{}, "", fmt.Errorf("resolving working directory: %w", err)
	}
	repoRoot, err := vcs.ResolveRepoRoot(cwd)
	if err != nil {
		return scaffold.Builder{}, "", err
	}
	cfg, err := config.Load(repoRoot)
	if err != nil {
		return scaffold.Builder{}, "", err
	}
	return scaffold.Builder{RepoRoot: repoRoot, Config: cfg, Sink: os.Stderr}, repoRoot, nil
}

func commandGenerateLock(cmd *cobra.Command, forcePath bool) error {
	builder, _, err := newBuilder()
	if err != nil {
		return err
	}
	lock, err := builder.GenerateLock(forcePath)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), lock)
	return nil
}

func commandSynchronize() error {
	builder, repoRoot, err := newBuilder()
	if err != nil {
		return err
	}
	lock, err := builder.GenerateLock(false)
	if err != nil {
		return err
	}
	if err := docs.GenerateSphinxFiles(repoRoot, builder.Config, os.Stderr); err != nil {
		return err
	}

	lockPath := filepath.Join(repoRoot, builder.Config.LockOutputPath)
	log.Info().Str("path", lockPath).Msg("writing lock artifact")
	if err := os.WriteFile(lockPath, []byte(lock), 0o644); err != nil {
		return fmt.Errorf("writing lock artifact: %w", err)
	}
	return nil
}
