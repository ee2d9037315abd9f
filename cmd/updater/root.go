// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the updater command.
//
// The updater is started by the host application while it shuts down. It
// takes exactly three positional arguments, replaces the application archive
// and relaunches the application. It has no flags and reads no environment or
// configuration; its only outputs are the process exit code and updater.log
// next to its own executable.
//
// On Windows it is linked as a GUI binary (-ldflags -H=windowsgui) so that no
// console window appears.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/invowk/updater/internal/issue"
	"github.com/invowk/updater/internal/logsink"
	"github.com/invowk/updater/internal/updater"
	"github.com/invowk/updater/pkg/types"
)

const usageLine = "updater <update_archive_path> <app_archive_path> <executable_path>"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// updaterParams bundles the dependencies of one updater invocation, so the
// command can be exercised without touching the real log file, clock or
// process table.
type updaterParams struct {
	stderr  io.Writer
	logger  *log.Logger
	updater *updater.Updater
}

// Execute runs the updater on the process arguments and exits with its code.
// This is called by main.main().
func Execute() {
	os.Exit(int(Run(os.Args[1:])))
}

// Run runs the updater on args (without the program name) and returns the
// exit code: 0 success, 1 usage, 2 copy failure, 3 relaunch failure.
func Run(args []string) types.ExitCode {
	logger := logsink.Open()

	return run(args, updaterParams{
		stderr:  os.Stderr,
		logger:  logger,
		updater: updater.New(updater.WithLogger(logger)),
	})
}

func run(args []string, p updaterParams) types.ExitCode {
	p.logger.Info("updater started", "version", getVersionString(), "pid", os.Getpid())

	if args == nil {
		// cobra falls back to os.Args when no args were set.
		args = []string{}
	}
	root := newRootCommand(p)
	root.SetArgs(args)
	root.SetOut(p.stderr)
	root.SetErr(p.stderr)

	err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(getVersionString()),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
	code := classifyExitCode(err)
	if code.IsSuccess() {
		p.logger.Info("updater finished", "exit_code", code)
	} else {
		p.logger.Error("updater finished", "exit_code", code, "reason", code.Describe())
	}
	return code
}

// newRootCommand creates the updater command. Flag parsing is disabled so
// every token counts as a positional argument.
func newRootCommand(p updaterParams) *cobra.Command {
	return &cobra.Command{
		Use:   usageLine,
		Short: "Replace the application archive and relaunch the application",
		Long: `Replace the application archive with a downloaded update and relaunch the application.

The updater waits briefly for the application to exit, copies the update
archive over the installed archive (retrying while the file is still locked),
then starts the application again from its own directory.

Diagnostics are appended to updater.log next to the updater executable.

Exit codes:
  0  archive replaced and application started
  1  wrong number of arguments
  2  update archive missing or copy failed
  3  application could not be started`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 3 {
				p.logger.Error("wrong number of arguments", "got", len(args), "expected", usageLine)
				return &ExitError{
					Code: types.ExitUsage,
					Err:  fmt.Errorf("expected 3 arguments, got %d (usage: %s)", len(args), usageLine),
				}
			}
			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return runUpdater(p, args)
		},
	}
}

// runUpdater is the core command logic, separated from Cobra for testability.
func runUpdater(p updaterParams, args []string) error {
	req := updater.Request{
		UpdateArchive: types.FilesystemPath(args[0]),
		AppArchive:    types.FilesystemPath(args[1]),
		Executable:    types.FilesystemPath(args[2]),
	}
	p.logger.Info("arguments received",
		"update_archive", req.UpdateArchive, "app_archive", req.AppArchive, "executable", req.Executable)

	if err := p.updater.Run(req); err != nil {
		var ae *issue.ActionableError
		if errors.As(err, &ae) && ae.Hint() != "" {
			p.logger.Info("suggested fix", "operation", ae.Operation, "hints", ae.Hint())
		}
		return &ExitError{Code: classifyExitCode(err), Err: err}
	}
	return nil
}

// classifyExitCode maps an updater error to the process exit code.
// ErrSourceMissing and ErrCopyFailed map to 2, and so does any error the
// updater does not name: unexpected I/O problems surface in the copy stage.
func classifyExitCode(err error) types.ExitCode {
	var exitErr *ExitError
	switch {
	case err == nil:
		return types.ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, updater.ErrInvalidRequest):
		return types.ExitUsage
	case errors.Is(err, updater.ErrRelaunchFailed):
		return types.ExitRelaunchFailed
	default:
		return types.ExitCopyFailed
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
