//go:build !linux
// +build !linux

package memory

import "errors"

var errUnsupported = errors.New("memory reader requires linux procfs")

// Reader is a placeholder on non-Linux platforms.
type Reader struct{}

// NewReader returns an error because procfs is only available on Linux.
func NewReader(root string) (*Reader, error) {
	return nil, errUnsupported
}

// CapacityKB returns the sentinel minimum on unsupported platforms.
func (r *Reader) CapacityKB() uint64 {
	return MinKB
}

// AvailableKB returns the sentinel minimum on unsupported platforms.
func (r *Reader) AvailableKB() uint64 {
	return MinKB
}

// PageSizeKB returns the conventional 4 kB page.
func (r *Reader) PageSizeKB() uint64 {
	return 4
}
