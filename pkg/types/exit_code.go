// SPDX-License-Identifier: MPL-2.0

package types

import "strconv"

// The process exit codes the updater reports to the application that launched it.
const (
	// ExitSuccess means the archive was replaced and the host application started.
	ExitSuccess ExitCode = 0
	// ExitUsage means the arguments were invalid: not exactly three, or an
	// empty path.
	ExitUsage ExitCode = 1
	// ExitCopyFailed means the source archive was missing or the copy failed
	// after all retries.
	ExitCopyFailed ExitCode = 2
	// ExitRelaunchFailed means the host executable could not be started.
	ExitRelaunchFailed ExitCode = 3
)

// ExitCode represents a process exit status code. The zero value means success.
type ExitCode int

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// Describe returns a short human-readable meaning for the updater's exit codes.
func (c ExitCode) Describe() string {
	switch c {
	case ExitSuccess:
		return "copy and relaunch succeeded"
	case ExitUsage:
		return "invalid arguments"
	case ExitCopyFailed:
		return "archive copy failed"
	case ExitRelaunchFailed:
		return "relaunch failed"
	default:
		return "exit status " + c.String()
	}
}

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
