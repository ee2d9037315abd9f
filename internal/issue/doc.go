// SPDX-License-Identifier: MPL-2.0

// Package issue provides errors that carry the failed operation, the files
// involved, and remediation hints, so a failure recorded in the updater log
// can be acted on without reading the source.
package issue
