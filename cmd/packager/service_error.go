// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"packager-cli/internal/dag"
	"packager-cli/internal/issue"
	"packager-cli/pkg/manifest"
	"packager-cli/pkg/packager"
)

// ServiceError is an error that carries an issue catalog entry for the CLI
// layer. The entry is rendered after the error message itself.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// issueFor maps domain sentinels to catalog entries. Zero means no entry.
func issueFor(err error) issue.Id {
	switch {
	case errors.Is(err, manifest.ErrManifestNotFound):
		return issue.ManifestNotFoundId
	case errors.Is(err, manifest.ErrInvalidManifest):
		return issue.ManifestInvalidId
	case errors.Is(err, manifest.ErrInvalidDescriptor):
		return issue.DescriptorInvalidId
	case errors.Is(err, packager.ErrCircularDependency), errors.Is(err, dag.ErrCycle):
		return issue.CircularDependencyId
	case errors.Is(err, packager.ErrDuplicateProvider):
		return issue.DuplicateProviderId
	case errors.Is(err, packager.ErrDuplicateFile):
		return issue.DuplicateFileId
	case errors.Is(err, packager.ErrFileNotFound),
		errors.Is(err, packager.ErrComponentNotFound),
		errors.Is(err, packager.ErrPackageNotFound):
		return issue.RefNotFoundId
	default:
		return 0
	}
}

// classify wraps err in a ServiceError when a catalog entry applies.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	if id := issueFor(err); id != 0 {
		return newServiceError(err, id)
	}
	return err
}

// renderServiceError writes the issue help section for svcErr, if any.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, stylePath string) {
	if svcErr == nil || svcErr.IssueID == 0 {
		return
	}

	catalogEntry := issue.Get(svcErr.IssueID)
	if catalogEntry == nil {
		return
	}
	rendered, err := catalogEntry.Render(stylePath)
	if err != nil {
		fmt.Fprintln(stderr, VerboseStyle.Render("failed to render help: "+err.Error()))
		return
	}
	fmt.Fprint(stderr, rendered)
}
