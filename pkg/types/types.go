package types

// DefaultTopK controls how many processes the table displays.
const DefaultTopK = 20

// ProcSample holds the raw counters read for one PID at one instant.
type ProcSample struct {
	PID           int
	Name          string
	UserTicks     uint64
	SystemTicks   uint64
	ResidentPages uint64
}

// TotalTicks is the CPU work proxy used for deltas.
func (p ProcSample) TotalTicks() uint64 {
	return p.UserTicks + p.SystemTicks
}

// Snapshot maps PID to the counters read during one scan of the process table.
// Snapshots are replaced wholesale each cycle and never mutated after the scan.
type Snapshot map[int]ProcSample

// Sample pairs a process snapshot with the global CPU counter read alongside it.
type Sample struct {
	GlobalTicks uint64
	Procs       Snapshot
}

// UsageRow is the per-process utilization derived from two samples.
type UsageRow struct {
	PID        int
	Name       string
	CPUPercent float64
	MemPercent float64
}

// SortKey selects the column the table is ranked by.
type SortKey int

const (
	SortByCPU SortKey = iota
	SortByMem
)

// Toggle flips between CPU and memory ordering.
func (k SortKey) Toggle() SortKey {
	if k == SortByCPU {
		return SortByMem
	}
	return SortByCPU
}

func (k SortKey) String() string {
	if k == SortByMem {
		return "MEM"
	}
	return "CPU"
}

// MemSummary is the system-wide memory line shown above the table.
type MemSummary struct {
	UsedKB     uint64
	CapacityKB uint64
	Percent    float64
}
