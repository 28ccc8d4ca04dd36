//go:build !linux
// +build !linux

package cpu

import (
	"errors"

	"github.com/srodi/proctop/pkg/types"
)

// DefaultRoot mirrors the Linux constant so callers compile everywhere.
const DefaultRoot = "/proc"

var errUnsupported = errors.New("cpu collector requires linux procfs")

// Collector is a placeholder on non-Linux platforms.
type Collector struct{}

// NewCollector returns an error because procfs is only available on Linux.
func NewCollector(root string) (*Collector, error) {
	return nil, errUnsupported
}

// GlobalTicks always reports zero on unsupported platforms.
func (c *Collector) GlobalTicks() uint64 {
	return 0
}

// Snapshot always returns an empty snapshot on unsupported platforms.
func (c *Collector) Snapshot() types.Snapshot {
	return types.Snapshot{}
}

// Sample returns an empty sample on unsupported platforms.
func (c *Collector) Sample() types.Sample {
	return types.Sample{Procs: types.Snapshot{}}
}
