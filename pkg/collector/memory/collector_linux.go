//go:build linux
// +build linux

package memory

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Reader reads system memory figures from procfs.
type Reader struct {
	path string
}

// NewReader returns a Reader for <root>/meminfo. An empty root means /proc.
// A missing meminfo is not an error; every lookup then returns MinKB.
func NewReader(root string) (*Reader, error) {
	if root == "" {
		root = "/proc"
	}
	return &Reader{path: filepath.Join(root, "meminfo")}, nil
}

// CapacityKB returns MemTotal, or MinKB when it cannot be read.
func (r *Reader) CapacityKB() uint64 {
	return r.lookup(keyMemTotal)
}

// AvailableKB returns MemAvailable, or MinKB when it cannot be read.
func (r *Reader) AvailableKB() uint64 {
	return r.lookup(keyMemAvailable)
}

// PageSizeKB returns the size of one resident page in kB.
func (r *Reader) PageSizeKB() uint64 {
	return uint64(unix.Getpagesize()) / 1024
}

func (r *Reader) lookup(key string) uint64 {
	data, err := procReadFile(r.path)
	if err != nil {
		return MinKB
	}
	v, _ := meminfoValue(data, key)
	return atLeastMin(v)
}
