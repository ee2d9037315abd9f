// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/invowk/updater/pkg/types"
)

// ExitError carries the updater's exit code out of cobra's RunE and Args
// hooks; Run turns it into the process status.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the wrapped error's message, or the code and its meaning
// when there is none.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d: %s", e.Code, e.Code.Describe())
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
