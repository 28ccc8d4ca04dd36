package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/srodi/proctop/pkg/types"
)

// ClearScreen homes the cursor and clears the terminal.
const ClearScreen = "\033[H\033[2J"

// Prompt is printed after the table while waiting for a command.
const Prompt = "Command: (s=toggle sort, k=kill pid, q=quit) > "

// Column layout of the process table.
const (
	pidWidth     = 8
	nameWidth    = 24
	nameMaxRunes = nameWidth - 2
	cpuWidth     = 8
	memWidth     = 10
	ruleWidth    = 50
)

// Frame is everything shown on one refresh.
type Frame struct {
	Interval time.Duration
	SortKey  types.SortKey
	Memory   types.MemSummary
	Rows     []types.UsageRow
}

// Render clears the screen and writes f to w in a single write.
func Render(w io.Writer, f Frame) error {
	var buf bytes.Buffer
	buf.WriteString(ClearScreen)
	buf.WriteString(Banner())
	buf.WriteString("\n")
	buf.WriteString(statusStyle.Render(fmt.Sprintf("System Monitor - refresh every %s", f.Interval)) + "\n")
	fmt.Fprintf(&buf, "Sort by: %s    %s\n\n", f.SortKey, hintStyle.Render("(type 's' then [ENTER] to toggle; 'k <pid>' to kill; 'q' to quit)"))
	fmt.Fprintf(&buf, "%s\n\n", MemoryLine(f.Memory))

	fmt.Fprintf(&buf, "%-*s%-*s%*s%*s\n", pidWidth, "PID", nameWidth, "NAME", cpuWidth, "CPU%", memWidth, "MEM%")
	buf.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	for _, row := range f.Rows {
		fmt.Fprintf(&buf, "%-*d%-*s%*.2f%*.2f\n",
			pidWidth, row.PID, nameWidth, truncateName(row.Name), cpuWidth, row.CPUPercent, memWidth, row.MemPercent)
	}

	buf.WriteString("\n" + Prompt)
	_, err := w.Write(buf.Bytes())
	return err
}

// MemoryLine formats the system memory summary.
func MemoryLine(m types.MemSummary) string {
	return fmt.Sprintf("Memory: %d MB / %d MB (%.1f%%)", m.UsedKB/1024, m.CapacityKB/1024, m.Percent)
}

func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= nameMaxRunes {
		return name
	}
	return string([]rune(name)[:nameMaxRunes])
}
