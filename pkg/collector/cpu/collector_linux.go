//go:build linux
// +build linux

package cpu

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/srodi/proctop/pkg/types"
)

// DefaultRoot is where the kernel exposes the process table.
const DefaultRoot = "/proc"

// Collector reads CPU tick counters and per-process records from procfs.
type Collector struct {
	root string
}

// NewCollector checks that root looks like a procfs mount and returns a
// collector reading from it. An empty root means DefaultRoot.
func NewCollector(root string) (*Collector, error) {
	if root == "" {
		root = DefaultRoot
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("opening procfs root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("procfs root %s is not a directory", root)
	}
	return &Collector{root: root}, nil
}

// GlobalTicks sums every time category on the aggregate cpu line of
// <root>/stat. It returns 0 when the source is unreadable.
func (c *Collector) GlobalTicks() uint64 {
	data, err := procReadFile(filepath.Join(c.root, "stat"))
	if err != nil {
		return 0
	}
	return sumCPULine(firstLine(data))
}

// Snapshot scans every numeric directory under root and parses its stat
// record. Processes that exit mid-scan or whose record is malformed are
// skipped.
func (c *Collector) Snapshot() types.Snapshot {
	snap := make(types.Snapshot)

	entries, err := os.ReadDir(c.root)
	if err != nil {
		return snap
	}

	for _, ent := range entries {
		if !ent.IsDir() || !isNumeric(ent.Name()) {
			continue
		}
		pid, err := strconv.Atoi(ent.Name())
		if err != nil || pid <= 0 {
			continue
		}
		data, err := procReadFile(filepath.Join(c.root, ent.Name(), "stat"))
		if err != nil {
			continue
		}
		sample, err := parseStat(statRecord(data))
		if err != nil {
			continue
		}
		sample.PID = pid
		snap[pid] = sample
	}
	return snap
}

// Sample reads the global counter and a process snapshot together.
func (c *Collector) Sample() types.Sample {
	return types.Sample{
		GlobalTicks: c.GlobalTicks(),
		Procs:       c.Snapshot(),
	}
}
