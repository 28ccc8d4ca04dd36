//go:build unix

// Package control delivers termination signals to processes.
package control

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// sendSignal allows tests to stub the kill syscall.
var sendSignal = unix.Kill

// Kill sends SIGKILL to pid once. The returned error wraps the errno, so
// callers can test for unix.ESRCH or unix.EPERM.
func Kill(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid PID: %d", pid)
	}
	if err := sendSignal(pid, unix.SIGKILL); err != nil {
		return fmt.Errorf("failed to send SIGKILL to PID %d: %w", pid, err)
	}
	return nil
}
