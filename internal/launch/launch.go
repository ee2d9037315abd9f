// SPDX-License-Identifier: MPL-2.0

// Package launch starts the host application as an independent process.
//
// The started process gets no standard streams, runs in its own process
// group, and is released immediately: the caller never waits on it, never
// holds a handle to it, and never sees its exit status.
package launch

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/invowk/updater/pkg/types"
)

// Options controls how Detached starts a process.
type Options struct {
	// Dir is the working directory of the new process. Empty means the
	// caller's current directory.
	Dir string
	// SuppressConsole keeps the new process from creating or attaching a
	// console window. It has no effect on platforms without consoles.
	SuppressConsole bool
}

// WorkDir returns the absolute directory containing the executable exe. A
// bare file name resolves to the current directory. ok is false when exe is
// blank or the current directory cannot be determined.
func WorkDir(exe types.FilesystemPath) (dir string, ok bool) {
	if exe.Validate() != nil {
		return "", false
	}
	abs, err := filepath.Abs(exe.Dir().String())
	if err != nil {
		return "", false
	}
	return abs, true
}

// Detached starts the executable at path without arguments and returns the
// new process ID. It does not wait for the process.
//
// path always names a file: it is made absolute against the caller's current
// directory and never looked up in $PATH. The new process gets no standard
// streams.
func Detached(path string, opts Options) (int, error) {
	name, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("resolving %s: %w", path, err)
	}

	cmd := exec.Command(name)
	cmd.Dir = opts.Dir
	cmd.SysProcAttr = sysProcAttr(opts)

	if err := cmd.Start(); err != nil {
		return 0, err
	}

	pid := cmd.Process.Pid
	// Release drops our handle; the child keeps running on its own.
	_ = cmd.Process.Release()
	return pid, nil
}

// Errno extracts the OS-level error code from a process start error, if any.
func Errno(err error) (uintptr, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uintptr(errno), true
	}
	return 0, false
}
