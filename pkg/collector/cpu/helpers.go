package cpu

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/srodi/proctop/pkg/types"
)

// procReadFile allows tests to stub reads under the procfs root.
var procReadFile = os.ReadFile

// Positions in /proc/<pid>/stat, 1-based, counting pid and the parenthesized
// name as fields 1 and 2. See proc(5).
const (
	statFieldUTime = 14
	statFieldSTime = 15
	statFieldRSS   = 24
)

// firstNamedField is the position of the first field after the name.
const firstNamedField = 3

var errMalformedStat = errors.New("malformed stat record")

// parseStat extracts the counters we track from a /proc/<pid>/stat line.
// The name is everything between the first '(' and the last ')', so names
// containing spaces or parentheses survive intact.
func parseStat(line string) (types.ProcSample, error) {
	var sample types.ProcSample

	l := strings.IndexByte(line, '(')
	r := strings.LastIndexByte(line, ')')
	if l < 0 || r < 0 || r <= l {
		return sample, fmt.Errorf("%w: missing name", errMalformedStat)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(line[:l]))
	if err != nil {
		return sample, fmt.Errorf("%w: pid: %v", errMalformedStat, err)
	}

	fields := strings.Fields(line[r+1:])
	if len(fields) < statFieldRSS-firstNamedField+1 {
		return sample, fmt.Errorf("%w: %d fields after name", errMalformedStat, len(fields))
	}
	field := func(pos int) string { return fields[pos-firstNamedField] }

	utime, err := strconv.ParseUint(field(statFieldUTime), 10, 64)
	if err != nil {
		return sample, fmt.Errorf("%w: utime: %v", errMalformedStat, err)
	}
	stime, err := strconv.ParseUint(field(statFieldSTime), 10, 64)
	if err != nil {
		return sample, fmt.Errorf("%w: stime: %v", errMalformedStat, err)
	}
	// rss is signed in the kernel's format; a negative value is treated as zero.
	rss, err := strconv.ParseInt(field(statFieldRSS), 10, 64)
	if err != nil {
		return sample, fmt.Errorf("%w: rss: %v", errMalformedStat, err)
	}
	if rss < 0 {
		rss = 0
	}

	sample = types.ProcSample{
		PID:           pid,
		Name:          line[l+1 : r],
		UserTicks:     utime,
		SystemTicks:   stime,
		ResidentPages: uint64(rss),
	}
	return sample, nil
}

// sumCPULine adds every numeric field after the label of an aggregate
// "cpu ..." line from /proc/stat. Unparseable fields are skipped.
func sumCPULine(line string) uint64 {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	var total uint64
	for _, tok := range fields[1:] {
		if v, err := strconv.ParseUint(tok, 10, 64); err == nil {
			total += v
		}
	}
	return total
}

func firstLine(data []byte) string {
	s := string(data)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// statRecord returns a per-process stat record with only the trailing newline
// removed. The name field is not escaped by the kernel and may itself hold
// newlines.
func statRecord(data []byte) string {
	return strings.TrimRight(string(data), "\n")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
