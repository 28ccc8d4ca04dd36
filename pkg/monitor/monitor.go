// Package monitor runs the sample, compute, render and command cycle.
package monitor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/srodi/proctop/pkg/report"
	"github.com/srodi/proctop/pkg/types"
	"github.com/srodi/proctop/pkg/ui"
)

// Sampler reads the global CPU counter and a process snapshot together.
type Sampler interface {
	Sample() types.Sample
}

// MemoryReader exposes the system memory figures.
type MemoryReader interface {
	CapacityKB() uint64
	AvailableKB() uint64
	PageSizeKB() uint64
}

// Options wires the monitor to its collaborators.
type Options struct {
	Sampler Sampler
	Memory  MemoryReader
	// Kill terminates a process; its error is only reported to the user.
	Kill   func(pid int) error
	Out    io.Writer
	Input  <-chan string
	Logger *zerolog.Logger
}

// Monitor owns the sort key and the values fixed at startup. The previous
// sample is not stored here; Run threads it through each cycle.
type Monitor struct {
	cfg     Config
	sampler Sampler
	mem     MemoryReader
	kill    func(pid int) error
	out     io.Writer
	input   <-chan string
	log     zerolog.Logger
	sleep   func(time.Duration)

	capacityKB uint64
	pageSizeKB uint64
	sortKey    types.SortKey
}

// New builds a Monitor. Total memory and page size are read once here and
// reused for every cycle.
func New(cfg Config, opts Options) *Monitor {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	m := &Monitor{
		cfg:     cfg.normalized(),
		sampler: opts.Sampler,
		mem:     opts.Memory,
		kill:    opts.Kill,
		out:     out,
		input:   opts.Input,
		log:     logger,
		sleep:   time.Sleep,
		sortKey: types.SortByCPU,
	}
	m.capacityKB = m.mem.CapacityKB()
	m.pageSizeKB = m.mem.PageSizeKB()
	return m
}

// SortKey returns the current table ordering.
func (m *Monitor) SortKey() types.SortKey {
	return m.sortKey
}

// ToggleSort switches between CPU and memory ordering.
func (m *Monitor) ToggleSort() types.SortKey {
	m.sortKey = m.sortKey.Toggle()
	return m.sortKey
}

// Step reads a fresh sample, combines it with prev and returns it alongside
// the frame to display. The returned sample becomes prev for the next call.
func (m *Monitor) Step(prev types.Sample) (types.Sample, ui.Frame) {
	cur := m.sampler.Sample()

	rows := report.BuildUsage(prev, cur, m.capacityKB, m.pageSizeKB)
	ranked := report.TopRows(report.Rank(rows, m.sortKey), m.cfg.TopK)

	m.log.Debug().
		Int("procs", len(cur.Procs)).
		Uint64("global_delta", report.GlobalDelta(prev.GlobalTicks, cur.GlobalTicks)).
		Msg("sampled")

	frame := ui.Frame{
		Interval: m.cfg.Interval,
		SortKey:  m.sortKey,
		Memory:   report.Memory(m.capacityKB, m.mem.AvailableKB()),
		Rows:     ranked,
	}
	return cur, frame
}

// Run samples on every interval until ctx ends or the user quits. Sampling
// and rendering failures never stop the loop. Quitting returns nil; a
// cancelled ctx returns ctx.Err().
func (m *Monitor) Run(ctx context.Context) error {
	prev := m.sampler.Sample()

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			var frame ui.Frame
			prev, frame = m.Step(prev)
			if err := ui.Render(m.out, frame); err != nil {
				m.log.Warn().Err(err).Msg("render failed")
			}
			if line, ok := m.pollInput(); ok {
				if quit := m.Handle(ctx, line); quit {
					return nil
				}
			}
		}
	}
}

// pollInput receives a pending line without waiting.
func (m *Monitor) pollInput() (string, bool) {
	if m.input == nil {
		return "", false
	}
	select {
	case line, ok := <-m.input:
		if !ok {
			m.input = nil
			return "", false
		}
		return line, true
	default:
		return "", false
	}
}

// Handle applies one line of user input and reports whether to quit.
func (m *Monitor) Handle(ctx context.Context, line string) bool {
	cmd := ui.ParseCommand(line)
	switch cmd.Kind {
	case ui.CmdQuit:
		return true
	case ui.CmdToggleSort:
		m.ToggleSort()
	case ui.CmdKill:
		if m.RequestKill(ctx, cmd.PID) {
			m.sleep(m.cfg.KillPause)
		}
	}
	return false
}

// RequestKill asks for confirmation and, if given, signals pid once. It
// reports whether a termination attempt was made; its outcome is only
// shown to the user.
func (m *Monitor) RequestKill(ctx context.Context, pid int) bool {
	fmt.Fprint(m.out, ui.KillPrompt(pid))

	response, ok := m.waitInput(ctx)
	if !ok || !ui.Confirmed(response) {
		return false
	}

	var err error
	if m.kill == nil {
		err = fmt.Errorf("termination is not available")
	} else {
		err = m.kill(pid)
	}
	if err != nil {
		m.log.Warn().Int("pid", pid).Err(err).Msg("kill failed")
	}
	fmt.Fprintln(m.out, ui.KillResult(pid, err))
	return true
}

// waitInput blocks for the next line, giving up when input is closed or
// ctx ends.
func (m *Monitor) waitInput(ctx context.Context) (string, bool) {
	if m.input == nil {
		return "", false
	}
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-m.input:
		if !ok {
			m.input = nil
			return "", false
		}
		return line, true
	}
}
