// SPDX-License-Identifier: MPL-2.0

package updater

import (
	"errors"
	"fmt"

	"github.com/invowk/updater/internal/issue"
)

var (
	// ErrInvalidRequest indicates one of the request paths is empty.
	ErrInvalidRequest = errors.New("invalid update request")

	// ErrSourceMissing indicates the update archive does not exist.
	ErrSourceMissing = errors.New("update archive not found")

	// ErrCopyFailed indicates the archive could not be copied, either because
	// the destination directory could not be created or because every copy
	// attempt failed.
	ErrCopyFailed = errors.New("archive copy failed")

	// ErrRelaunchFailed indicates the host executable could not be started.
	ErrRelaunchFailed = errors.New("relaunch failed")
)

func sourceMissingError(src string, cause error) error {
	return issue.NewErrorContext().
		WithOperation("locate update archive").
		WithResource(src).
		WithSuggestion("Download the update again before starting the updater").
		Wrap(fmt.Errorf("%w: %w", ErrSourceMissing, cause)).
		Build()
}

func copyError(src, dst string, cause error) error {
	return issue.NewErrorContext().
		WithOperation("copy update archive").
		WithResource(src + " -> " + dst).
		WithSuggestion("Make sure the application has exited and no other program holds the archive open").
		WithSuggestion("Check that the installation directory is writable").
		Wrap(fmt.Errorf("%w: %w", ErrCopyFailed, cause)).
		Build()
}

func relaunchError(exe string, cause error) error {
	return issue.NewErrorContext().
		WithOperation("start application").
		WithResource(exe).
		WithSuggestion("Check that the executable exists and is executable").
		WithSuggestion("Reinstall the application if the file is missing").
		Wrap(fmt.Errorf("%w: %w", ErrRelaunchFailed, cause)).
		Build()
}
