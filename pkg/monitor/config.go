package monitor

import (
	"time"

	"github.com/srodi/proctop/pkg/types"
)

const (
	defaultInterval  = 2000 * time.Millisecond
	defaultKillPause = 800 * time.Millisecond
	defaultProcRoot  = "/proc"
)

// Config holds the monitor's fixed settings.
type Config struct {
	Interval  time.Duration
	TopK      int
	KillPause time.Duration
	ProcRoot  string
}

// DefaultConfig returns the settings the binary runs with.
func DefaultConfig() Config {
	return Config{
		Interval:  defaultInterval,
		TopK:      types.DefaultTopK,
		KillPause: defaultKillPause,
		ProcRoot:  defaultProcRoot,
	}
}

func (c Config) normalized() Config {
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	if c.TopK <= 0 {
		c.TopK = types.DefaultTopK
	}
	if c.KillPause < 0 {
		c.KillPause = 0
	}
	if c.ProcRoot == "" {
		c.ProcRoot = defaultProcRoot
	}
	return c
}
