// SPDX-License-Identifier: MPL-2.0

//go:build windows

package launch

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// sysProcAttr starts the process in a new process group and, when requested,
// with CREATE_NO_WINDOW so no console window flashes up. HideWindow is left
// unset: it would also hide the host application's main window.
func sysProcAttr(opts Options) *syscall.SysProcAttr {
	attr := &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP,
	}
	if opts.SuppressConsole {
		attr.CreationFlags |= windows.CREATE_NO_WINDOW
	}
	return attr
}
