// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCircularDependency is the sentinel wrapped by CircularDependencyError.
	ErrCircularDependency = errors.New("circular dependency")
	// ErrDuplicateProvider is the sentinel wrapped by DuplicateProviderError.
	ErrDuplicateProvider = errors.New("component provided more than once")
	// ErrDuplicateFile is returned when two sources of one package share a file key.
	ErrDuplicateFile = errors.New("file declared more than once")
	// ErrFileNotFound is returned when a file reference matches no registered file.
	ErrFileNotFound = errors.New("file not found")
	// ErrComponentNotFound is returned when no registered file provides a component.
	ErrComponentNotFound = errors.New("component not provided")
	// ErrPackageNotFound is returned when a package name is not registered.
	ErrPackageNotFound = errors.New("package not found")
)

type (
	// CircularDependencyError reports a requirement cycle met during resolution.
	// Cycle starts and ends with the same file.
	CircularDependencyError struct {
		Cycle []FileID
	}

	// DuplicateProviderError reports two files of one package providing the
	// same component under the strict provider policy.
	DuplicateProviderError struct {
		Component string
		First     FileID
		Second    FileID
	}
)

func (e *CircularDependencyError) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, id := range e.Cycle {
		parts[i] = id.String()
	}
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(parts, " -> "))
}

// Unwrap returns ErrCircularDependency for errors.Is() compatibility.
func (e *CircularDependencyError) Unwrap() error { return ErrCircularDependency }

func (e *DuplicateProviderError) Error() string {
	return fmt.Sprintf("component %s is provided by both %s and %s", e.Component, e.First, e.Second)
}

// Unwrap returns ErrDuplicateProvider for errors.Is() compatibility.
func (e *DuplicateProviderError) Unwrap() error { return ErrDuplicateProvider }
