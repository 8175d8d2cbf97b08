// Package vcs locates the repository root the release pipeline operates on.
package vcs

import (
	"errors"
	"os/exec"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// ErrNoRepoRoot reports that neither discovery strategy found a checkout.
var ErrNoRepoRoot = errors.New("vcs: could not find VCS root")

// ResolveRepoRoot locates the repository checkout containing dir. Git
// worktree discovery runs first, a Sapling `sl root` probe second. Callers
// only consume the resulting path.
func ResolveRepoRoot(dir string) (string, error) {
	if root, err := gitRoot(dir); err == nil {
		return root, nil
	}
	if root, err := slRoot(dir); err == nil {
		return root, nil
	}
	return "", ErrNoRepoRoot
}

func gitRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	tree, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return tree.Filesystem.Root(), nil
}

func slRoot(dir string) (string, error) {
	cmd := exec.Command("sl", "root")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", ErrNoRepoRoot
	}
	return root, nil
}
