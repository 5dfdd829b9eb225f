// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

type (
	// BuildIdentifier supplies the identifier stamped into a package's sources.
	// An empty identifier leaves the sources untouched.
	BuildIdentifier interface {
		BuildID(root string) (string, error)
	}

	// GitBuildIdentifier reads the commit hash HEAD points to in the Git
	// repository at the package root. Only root/.git is consulted; parent
	// directories are not searched. The repository is always opened on the
	// OS filesystem.
	GitBuildIdentifier struct{}

	// StaticBuildIdentifier stamps the same identifier into every package.
	StaticBuildIdentifier string
)

// BuildID implements BuildIdentifier.
func (GitBuildIdentifier) BuildID(root string) (string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", nil
		}
		return "", fmt.Errorf("opening repository at %s: %w", root, err)
	}

	head, err := repo.Head()
	if err != nil {
		// A freshly initialized repository has no commits yet.
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading HEAD of %s: %w", root, err)
	}

	return head.Hash().String(), nil
}

// BuildID implements BuildIdentifier.
func (s StaticBuildIdentifier) BuildID(string) (string, error) {
	return string(s), nil
}
