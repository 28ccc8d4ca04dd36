package memory

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// Keys looked up in /proc/meminfo.
const (
	keyMemTotal     = "MemTotal:"
	keyMemAvailable = "MemAvailable:"
)

// meminfoValue scans meminfo content for key and returns the numeric field
// that follows it, in kB.
func meminfoValue(data []byte, key string) (uint64, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != key {
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}
