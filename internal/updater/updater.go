// SPDX-License-Identifier: MPL-2.0

package updater

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/invowk/updater/internal/launch"
	"github.com/invowk/updater/pkg/types"
)

const (
	// DefaultGraceWait is the pause before touching any file, giving the
	// exiting host application time to release the archive.
	DefaultGraceWait = 700 * time.Millisecond

	// DefaultRetries is the number of retries after the first failed copy
	// attempt (4 attempts in total).
	DefaultRetries = 3

	// DefaultRetryGap is the pause between copy attempts.
	DefaultRetryGap = 300 * time.Millisecond
)

type (
	// Logger receives the updater's diagnostics. A *log.Logger from
	// github.com/charmbracelet/log satisfies it. Implementations must not
	// fail or block: logging never changes the outcome of an update.
	Logger interface {
		Info(msg any, keyvals ...any)
		Warn(msg any, keyvals ...any)
		Error(msg any, keyvals ...any)
	}

	// Request names the three files an update operates on.
	Request struct {
		UpdateArchive types.FilesystemPath // downloaded archive (source)
		AppArchive    types.FilesystemPath // installed archive (destination)
		Executable    types.FilesystemPath // host application to relaunch
	}

	// LaunchFunc starts the executable at path and returns its process ID.
	LaunchFunc func(path string, opts launch.Options) (int, error)

	// CopyFunc copies src over dst.
	CopyFunc func(src, dst string) error

	// Updater runs the wait, copy and relaunch sequence. The zero value is
	// not usable; construct one with New.
	Updater struct {
		logger    Logger
		sleep     func(time.Duration)
		launch    LaunchFunc
		copy      CopyFunc
		graceWait time.Duration
		retries   int
		retryGap  time.Duration
	}

	// Option configures an Updater during construction.
	Option func(*Updater)
)

// WithLogger sets the diagnostic logger. Without it, diagnostics are discarded.
func WithLogger(l Logger) Option {
	return func(u *Updater) {
		u.logger = l
	}
}

// WithSleep replaces time.Sleep for the grace wait and retry gaps.
func WithSleep(sleep func(time.Duration)) Option {
	return func(u *Updater) {
		u.sleep = sleep
	}
}

// WithLaunchFunc replaces launch.Detached.
func WithLaunchFunc(fn LaunchFunc) Option {
	return func(u *Updater) {
		u.launch = fn
	}
}

// WithCopyFunc replaces the file copy primitive used by each copy attempt.
func WithCopyFunc(fn CopyFunc) Option {
	return func(u *Updater) {
		u.copy = fn
	}
}

// WithGraceWait overrides DefaultGraceWait.
func WithGraceWait(d time.Duration) Option {
	return func(u *Updater) {
		u.graceWait = d
	}
}

// WithRetries overrides DefaultRetries. Negative values are treated as zero.
func WithRetries(n int) Option {
	return func(u *Updater) {
		u.retries = max(n, 0)
	}
}

// WithRetryGap overrides DefaultRetryGap.
func WithRetryGap(d time.Duration) Option {
	return func(u *Updater) {
		u.retryGap = d
	}
}

// New creates an Updater with the default timings, copying with copyFile and
// launching with launch.Detached.
func New(opts ...Option) *Updater {
	u := &Updater{
		sleep:     time.Sleep,
		launch:    launch.Detached,
		copy:      copyFile,
		graceWait: DefaultGraceWait,
		retries:   DefaultRetries,
		retryGap:  DefaultRetryGap,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.logger == nil {
		u.logger = log.New(io.Discard)
	}
	return u
}

// Validate reports an error wrapping ErrInvalidRequest if any path is empty.
func (r Request) Validate() error {
	var errs []error
	for _, p := range []types.FilesystemPath{r.UpdateArchive, r.AppArchive, r.Executable} {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, errors.Join(errs...))
	}
	return nil
}

// Run executes the full update: source check, grace wait, copy with retry,
// relaunch. It stops at the first failing stage. A copy that succeeded is
// never rolled back when the relaunch fails.
func (u *Updater) Run(req Request) error {
	if err := req.Validate(); err != nil {
		u.logger.Error("invalid arguments", "err", err)
		return err
	}

	src := req.UpdateArchive.String()
	dst := req.AppArchive.String()

	if err := u.CheckSource(src); err != nil {
		return err
	}

	u.logger.Info("waiting for application to exit", "grace", u.graceWait)
	u.sleep(u.graceWait)

	if err := u.CopyWithRetry(src, dst); err != nil {
		u.logger.Error("archive copy failed", "src", src, "dst", dst, "err", err)
		return err
	}
	u.logger.Info("archive replaced", "src", src, "dst", dst)

	if err := u.Relaunch(req.Executable); err != nil {
		return err
	}

	u.logger.Info("update complete")
	return nil
}

// CheckSource fails with ErrSourceMissing if the update archive does not
// exist. Other stat errors are logged and left for the copy to report.
func (u *Updater) CheckSource(src string) error {
	_, err := os.Stat(src)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		u.logger.Error("update archive does not exist", "path", src)
		return sourceMissingError(src, err)
	default:
		u.logger.Warn("cannot stat update archive, attempting copy anyway", "path", src, "err", err)
		return nil
	}
}

// Relaunch starts exe detached and without a console window, in the
// directory containing exe. A bare file name names a file in the updater's
// current directory. If the directory cannot be made absolute the new
// process inherits the updater's working directory. Relaunch is never
// retried.
func (u *Updater) Relaunch(exe types.FilesystemPath) error {
	opts := launch.Options{SuppressConsole: true}
	if dir, ok := launch.WorkDir(exe); ok {
		opts.Dir = dir
	} else {
		u.logger.Warn("cannot resolve executable directory, inheriting working directory", "executable", exe)
	}

	u.logger.Info("starting application", "executable", exe, "dir", opts.Dir)
	pid, err := u.launch(exe.String(), opts)
	if err != nil {
		keyvals := []any{"executable", exe, "err", err}
		if code, ok := launch.Errno(err); ok {
			keyvals = append(keyvals, "os_error", code)
		}
		u.logger.Error("failed to start application", keyvals...)
		return relaunchError(exe.String(), err)
	}

	u.logger.Info("application started", "pid", pid)
	return nil
}
