// SPDX-License-Identifier: MPL-2.0

// Package logsink provides the updater's side-channel diagnostic log: an
// append-only text file next to the updater executable, one timestamped line
// per event. The process runs without a console, so this file is the only
// place diagnostics ever go.
package logsink

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// FileName is the name of the log file created next to the updater executable.
const FileName = "updater.log"

//nolint:gochecknoglobals // Test seam for os.Executable().
var osExecutable = os.Executable

// File is an io.Writer that appends each write to the log file as a single
// "[<unix-seconds>] <entry>" line. Entries spanning several lines, such as
// multi-line values the formatter indents under a "│" gutter, are folded
// onto that one line. The file is opened (and created if absent)
// for every write and closed right after, so no handle outlives an event.
//
// Write never fails: open and write errors are swallowed because logging must
// not influence the outcome of an update.
type File struct {
	path string
	now  func() time.Time
}

// NewFile returns a File appending to path.
func NewFile(path string) *File {
	return &File{path: path, now: time.Now}
}

// Write appends p, prefixed with the current Unix time in seconds.
// It always reports len(p) bytes written and a nil error.
func (f *File) Write(p []byte) (int, error) {
	out, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return len(p), nil
	}
	defer func() { _ = out.Close() }()

	line := make([]byte, 0, len(p)+16)
	line = append(line, '[')
	line = strconv.AppendInt(line, f.now().Unix(), 10)
	line = append(line, "] "...)
	line = appendFolded(line, p)
	line = append(line, '\n')
	_, _ = out.Write(line)

	return len(p), nil
}

// appendFolded appends entry to line with its line breaks replaced by single
// spaces. Continuation lines lose their indentation and gutter.
func appendFolded(line, entry []byte) []byte {
	entry = bytes.TrimRight(entry, "\r\n")
	for i, part := range bytes.Split(entry, []byte("\n")) {
		part = bytes.TrimRight(part, "\r")
		if i > 0 {
			part = bytes.TrimLeft(part, " \t")
			part = bytes.TrimPrefix(part, []byte("│"))
			part = bytes.TrimLeft(part, " ")
			if len(part) == 0 {
				continue
			}
			line = append(line, ' ')
		}
		line = append(line, part...)
	}
	return line
}

// DefaultPath returns updater.log in the directory holding the running
// executable, or updater.log relative to the current directory when the
// executable path cannot be determined.
func DefaultPath() string {
	exe, err := osExecutable()
	if err != nil || exe == "" {
		return FileName
	}
	return filepath.Join(filepath.Dir(exe), FileName)
}

// New returns a logger that formats entries as "LEVEL message key=value ..."
// and writes them to w. Timestamps are left to the sink.
func New(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
	})
}

// Open returns a logger appending to the default log file.
func Open() *log.Logger {
	return New(NewFile(DefaultPath()))
}
