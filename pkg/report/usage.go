package report

import (
	"sort"

	"github.com/srodi/proctop/pkg/types"
)

// GlobalDelta returns the elapsed global ticks between two samples, floored
// at 1 so it can always be used as a divisor.
func GlobalDelta(prev, cur uint64) uint64 {
	if cur <= prev {
		return 1
	}
	return cur - prev
}

// procDelta returns the tick delta for one PID, floored at 0 when the
// counter appears to move backwards.
func procDelta(prev, cur types.ProcSample) uint64 {
	p, c := prev.TotalTicks(), cur.TotalTicks()
	if c <= p {
		return 0
	}
	return c - p
}

// BuildUsage combines the previous and current samples into one row per PID
// present in cur. PIDs seen for the first time report 0% CPU; PIDs only in
// prev are dropped. Output order is unspecified.
func BuildUsage(prev, cur types.Sample, memCapacityKB, pageSizeKB uint64) []types.UsageRow {
	globalDelta := float64(GlobalDelta(prev.GlobalTicks, cur.GlobalTicks))
	if memCapacityKB == 0 {
		memCapacityKB = 1
	}

	rows := make([]types.UsageRow, 0, len(cur.Procs))
	for pid, proc := range cur.Procs {
		row := types.UsageRow{PID: pid, Name: proc.Name}
		if before, ok := prev.Procs[pid]; ok {
			row.CPUPercent = 100 * float64(procDelta(before, proc)) / globalDelta
		}
		row.MemPercent = 100 * float64(proc.ResidentPages*pageSizeKB) / float64(memCapacityKB)
		rows = append(rows, row)
	}
	return rows
}

// Rank returns a copy of rows ordered by key, highest first. Equal
// percentages are ordered by ascending PID.
func Rank(rows []types.UsageRow, key types.SortKey) []types.UsageRow {
	ranked := make([]types.UsageRow, len(rows))
	copy(ranked, rows)

	value := func(r types.UsageRow) float64 { return r.CPUPercent }
	if key == types.SortByMem {
		value = func(r types.UsageRow) float64 { return r.MemPercent }
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := value(ranked[i]), value(ranked[j])
		if a != b {
			return a > b
		}
		return ranked[i].PID < ranked[j].PID
	})
	return ranked
}

// TopRows truncates an already ranked list to the display budget.
func TopRows(rows []types.UsageRow, topK int) []types.UsageRow {
	if topK > 0 && len(rows) > topK {
		return rows[:topK]
	}
	return rows
}

// Memory builds the system memory summary line.
func Memory(capacityKB, availableKB uint64) types.MemSummary {
	if capacityKB == 0 {
		capacityKB = 1
	}
	var used uint64
	if availableKB < capacityKB {
		used = capacityKB - availableKB
	}
	return types.MemSummary{
		UsedKB:     used,
		CapacityKB: capacityKB,
		Percent:    100 * float64(used) / float64(capacityKB),
	}
}
