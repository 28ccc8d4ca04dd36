package memory

import "os"

// procReadFile allows tests to stub reading meminfo.
var procReadFile = os.ReadFile

// MinKB is returned in place of a missing or zero meminfo value so callers
// can divide by it safely.
const MinKB = 1

func atLeastMin(v uint64) uint64 {
	if v < MinKB {
		return MinKB
	}
	return v
}
