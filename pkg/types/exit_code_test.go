// SPDX-License-Identifier: MPL-2.0

package types

import "testing"

func TestExitCodeIsSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ExitCode
		want bool
	}{
		{ExitSuccess, true},
		{ExitUsage, false},
		{ExitCopyFailed, false},
		{ExitRelaunchFailed, false},
		{255, false},
	}

	for _, tt := range tests {
		if got := tt.code.IsSuccess(); got != tt.want {
			t.Errorf("ExitCode(%d).IsSuccess() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ExitCode
		want int
	}{
		{ExitSuccess, 0},
		{ExitUsage, 1},
		{ExitCopyFailed, 2},
		{ExitRelaunchFailed, 3},
	}

	for _, tt := range tests {
		if int(tt.code) != tt.want {
			t.Errorf("ExitCode %q = %d, want %d", tt.code.Describe(), int(tt.code), tt.want)
		}
	}
}

func TestExitCodeDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ExitCode
		want string
	}{
		{ExitSuccess, "copy and relaunch succeeded"},
		{ExitUsage, "invalid arguments"},
		{ExitCopyFailed, "archive copy failed"},
		{ExitRelaunchFailed, "relaunch failed"},
		{ExitCode(7), "exit status 7"},
	}

	for _, tt := range tests {
		if got := tt.code.Describe(); got != tt.want {
			t.Errorf("ExitCode(%d).Describe() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestExitCodeString(t *testing.T) {
	t.Parallel()

	if got := ExitCode(42).String(); got != "42" {
		t.Errorf("ExitCode(42).String() = %q, want %q", got, "42")
	}
}
