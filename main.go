// SPDX-License-Identifier: MPL-2.0

// Command updater replaces a host application's resource archive with a
// downloaded update and relaunches the application.
//
//	updater <update_archive_path> <app_archive_path> <executable_path>
package main

import cmd "github.com/invowk/updater/cmd/updater"

func main() {
	cmd.Execute()
}
