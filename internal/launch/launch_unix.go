// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package launch

import "syscall"

// sysProcAttr puts the new process in its own process group so it is not
// signalled together with the updater. There is no console to suppress.
func sysProcAttr(Options) *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}
