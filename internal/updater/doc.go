// SPDX-License-Identifier: MPL-2.0

// Package updater replaces the host application's resource archive with a
// downloaded update and starts the host application again.
//
// The work happens in strictly sequential stages, each of which must succeed
// before the next one runs:
//   - source check: a missing update archive fails immediately
//   - grace wait: a fixed pause so the exiting host releases its file handles
//   - copy with retry: the archive is copied, retrying a bounded number of
//     times while the destination is still locked
//   - relaunch: the host executable is started detached, from its own directory
//
// Every stage reports to the diagnostic log; failures surface as errors that
// wrap ErrSourceMissing, ErrCopyFailed or ErrRelaunchFailed.
package updater
