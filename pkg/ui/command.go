package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandKind identifies what a line of input asks for.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdToggleSort
	CmdQuit
	CmdKill
)

// Command is one parsed line of terminal input.
type Command struct {
	Kind CommandKind
	PID  int
}

// ParseCommand interprets a line typed at the prompt. Unknown input, and
// kill requests without a positive pid, parse as CmdNone.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	switch {
	case line == "s":
		return Command{Kind: CmdToggleSort}
	case line == "q":
		return Command{Kind: CmdQuit}
	case strings.HasPrefix(line, "k"):
		return killCommand(strings.TrimSpace(line[1:]))
	case isDigits(line):
		return killCommand(line)
	}
	return Command{Kind: CmdNone}
}

func killCommand(arg string) Command {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return Command{Kind: CmdNone}
	}
	pid, err := strconv.Atoi(fields[0])
	if err != nil || pid <= 0 {
		return Command{Kind: CmdNone}
	}
	return Command{Kind: CmdKill, PID: pid}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// KillPrompt asks the user to confirm terminating pid.
func KillPrompt(pid int) string {
	return fmt.Sprintf("Confirm kill %d? (y/n): ", pid)
}

// Confirmed reports whether a prompt response is affirmative.
func Confirmed(response string) bool {
	response = strings.TrimSpace(response)
	return response != "" && (response[0] == 'y' || response[0] == 'Y')
}

// KillResult is the one-line outcome shown after a termination attempt.
func KillResult(pid int, err error) string {
	if err != nil {
		return fmt.Sprintf("kill %d: %v", pid, err)
	}
	return fmt.Sprintf("Sent SIGKILL to %d", pid)
}
