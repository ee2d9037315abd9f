// SPDX-License-Identifier: MPL-2.0

package updater

import (
	"io"
	"os"
	"path/filepath"

	"github.com/invowk/updater/internal/issue"
)

// CopyWithRetry copies src over dst, creating dst's parent directories first.
// A failed attempt is logged and retried after the retry gap, up to the
// configured number of retries; the first success returns immediately. The
// error of the last attempt is returned, wrapped with ErrCopyFailed.
//
// Failing to create the parent directory is not retried. A destination
// truncated by a failed attempt is left as is.
func (u *Updater) CopyWithRetry(src, dst string) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		u.logger.Error("cannot create archive directory", "dir", dir, "err", err)
		return copyError(src, dst, issue.WrapWithContext(err, "create archive directory", dir))
	}

	var lastErr error
	for attempt := range u.retries + 1 {
		err := u.copy(src, dst)
		if err == nil {
			if attempt > 0 {
				u.logger.Info("archive copied after retry", "attempt", attempt+1)
			}
			return nil
		}
		lastErr = err
		if attempt == u.retries {
			break
		}

		u.logger.Warn("copy failed, retrying",
			"attempt", attempt+1, "maxRetries", u.retries, "src", src, "dst", dst, "err", err)
		u.sleep(u.retryGap)
	}

	return copyError(src, dst, lastErr)
}

// copyFile copies src to dst byte for byte. A newly created dst gets src's
// permissions. Copying a file onto itself is a no-op.
func copyFile(src, dst string) (err error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if dstInfo, statErr := os.Stat(dst); statErr == nil && os.SameFile(srcInfo, dstInfo) {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }() // read-only handle

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
