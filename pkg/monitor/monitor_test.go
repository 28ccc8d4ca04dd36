package monitor

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/srodi/proctop/pkg/types"
)

type fakeSampler struct {
	samples []types.Sample
	calls   int
}

func (f *fakeSampler) Sample() types.Sample {
	f.calls++
	if len(f.samples) == 0 {
		return types.Sample{Procs: types.Snapshot{}}
	}
	s := f.samples[0]
	if len(f.samples) > 1 {
		f.samples = f.samples[1:]
	}
	return s
}

type fakeMemory struct {
	capacity, available, page uint64
	capacityReads             int
}

func (f *fakeMemory) CapacityKB() uint64 {
	f.capacityReads++
	return f.capacity
}
func (f *fakeMemory) AvailableKB() uint64 { return f.available }
func (f *fakeMemory) PageSizeKB() uint64  { return f.page }

type killRecorder struct {
	pids []int
	err  error
}

func (k *killRecorder) kill(pid int) error {
	k.pids = append(k.pids, pid)
	return k.err
}

func sampleOf(global uint64, procs ...types.ProcSample) types.Sample {
	snap := make(types.Snapshot, len(procs))
	for _, p := range procs {
		snap[p.PID] = p
	}
	return types.Sample{GlobalTicks: global, Procs: snap}
}

type harness struct {
	mon     *Monitor
	sampler *fakeSampler
	mem     *fakeMemory
	killer  *killRecorder
	out     *bytes.Buffer
	input   chan string
	slept   []time.Duration
}

func newHarness(t *testing.T, samples ...types.Sample) *harness {
	t.Helper()
	h := &harness{
		sampler: &fakeSampler{samples: samples},
		mem:     &fakeMemory{capacity: 8000000, available: 6000000, page: 4},
		killer:  &killRecorder{},
		out:     &bytes.Buffer{},
		input:   make(chan string, 8),
	}
	logger := zerolog.New(zerolog.NewTestWriter(t))
	cfg := DefaultConfig()
	cfg.Interval = time.Millisecond
	h.mon = New(cfg, Options{
		Sampler: h.sampler,
		Memory:  h.mem,
		Kill:    h.killer.kill,
		Out:     h.out,
		Input:   h.input,
		Logger:  &logger,
	})
	h.mon.sleep = func(d time.Duration) { h.slept = append(h.slept, d) }
	return h
}

func TestStepComputesDeltasAgainstPrevious(t *testing.T) {
	prev := sampleOf(1000, types.ProcSample{PID: 10, Name: "worker", UserTicks: 100, SystemTicks: 50, ResidentPages: 1000})
	cur := sampleOf(1100,
		types.ProcSample{PID: 10, Name: "worker", UserTicks: 150, SystemTicks: 80, ResidentPages: 1000},
		types.ProcSample{PID: 11, Name: "fresh", UserTicks: 500, ResidentPages: 2000},
	)
	h := newHarness(t, cur)

	next, frame := h.mon.Step(prev)
	if next.GlobalTicks != 1100 || len(next.Procs) != 2 {
		t.Fatalf("step should hand back the current sample, got %+v", next)
	}
	if len(frame.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", frame.Rows)
	}
	top := frame.Rows[0]
	if top.PID != 10 || math.Abs(top.CPUPercent-80) > 1e-9 || math.Abs(top.MemPercent-0.05) > 1e-9 {
		t.Fatalf("unexpected top row: %+v", top)
	}
	if frame.Rows[1].PID != 11 || frame.Rows[1].CPUPercent != 0 {
		t.Fatalf("new pid should report 0%% cpu: %+v", frame.Rows[1])
	}
	if frame.Memory.UsedKB != 2000000 || math.Abs(frame.Memory.Percent-25) > 1e-9 {
		t.Fatalf("unexpected memory summary: %+v", frame.Memory)
	}
}

func TestStepHonorsSortKeyAndBudget(t *testing.T) {
	procs := make([]types.ProcSample, 0, 30)
	for pid := 1; pid <= 30; pid++ {
		procs = append(procs, types.ProcSample{PID: pid, ResidentPages: uint64(pid)})
	}
	h := newHarness(t, sampleOf(10, procs...))
	h.mon.ToggleSort()

	_, frame := h.mon.Step(types.Sample{})
	if len(frame.Rows) != types.DefaultTopK {
		t.Fatalf("expected %d rows, got %d", types.DefaultTopK, len(frame.Rows))
	}
	if frame.SortKey != types.SortByMem || frame.Rows[0].PID != 30 {
		t.Fatalf("expected memory ordering with pid 30 first, got %v %+v", frame.SortKey, frame.Rows[0])
	}
}

func TestNewReadsCapacityOnce(t *testing.T) {
	h := newHarness(t, sampleOf(1), sampleOf(2), sampleOf(3))
	prev := types.Sample{}
	for i := 0; i < 3; i++ {
		prev, _ = h.mon.Step(prev)
	}
	if h.mem.capacityReads != 1 {
		t.Fatalf("capacity should be read once at startup, got %d reads", h.mem.capacityReads)
	}
}

func TestHandleCommands(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if h.mon.Handle(ctx, "s") {
		t.Fatalf("toggle should not quit")
	}
	if h.mon.SortKey() != types.SortByMem {
		t.Fatalf("expected MEM after toggle, got %v", h.mon.SortKey())
	}
	if h.mon.Handle(ctx, "bogus") || h.mon.SortKey() != types.SortByMem {
		t.Fatalf("unknown input must be ignored")
	}
	if !h.mon.Handle(ctx, "q") {
		t.Fatalf("q should quit")
	}
}

func TestKillRequiresConfirmation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.input <- "n"
	h.mon.Handle(ctx, "k 123")
	if len(h.killer.pids) != 0 {
		t.Fatalf("declined kill must not signal, got %v", h.killer.pids)
	}
	if len(h.slept) != 0 {
		t.Fatalf("no pause expected without an attempt")
	}
	if !strings.Contains(h.out.String(), "Confirm kill 123? (y/n): ") {
		t.Fatalf("missing prompt: %q", h.out.String())
	}

	h.input <- "y"
	h.mon.Handle(ctx, "123")
	if len(h.killer.pids) != 1 || h.killer.pids[0] != 123 {
		t.Fatalf("expected kill of 123, got %v", h.killer.pids)
	}
	if !strings.Contains(h.out.String(), "Sent SIGKILL to 123") {
		t.Fatalf("missing success line: %q", h.out.String())
	}
	if len(h.slept) != 1 || h.slept[0] != defaultKillPause {
		t.Fatalf("expected one pause of %v, got %v", defaultKillPause, h.slept)
	}
}

func TestKillFailureIsReportedNotFatal(t *testing.T) {
	h := newHarness(t)
	h.killer.err = errors.New("operation not permitted")

	h.input <- "Y"
	if quit := h.mon.Handle(context.Background(), "k 1"); quit {
		t.Fatalf("kill failure must not quit")
	}
	if len(h.killer.pids) != 1 {
		t.Fatalf("expected exactly one attempt, got %v", h.killer.pids)
	}
	if !strings.Contains(h.out.String(), "operation not permitted") {
		t.Fatalf("failure should be shown to the user: %q", h.out.String())
	}
}

func TestKillCancelledWhenInputCloses(t *testing.T) {
	h := newHarness(t)
	close(h.input)
	if h.mon.RequestKill(context.Background(), 5) {
		t.Fatalf("closed input must cancel the kill")
	}
	if len(h.killer.pids) != 0 {
		t.Fatalf("no signal expected, got %v", h.killer.pids)
	}
}

func TestKillCancelledByContext(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if h.mon.RequestKill(ctx, 5) {
		t.Fatalf("cancelled context must abandon the prompt")
	}
}

func TestPollInputDoesNotBlock(t *testing.T) {
	h := newHarness(t)
	if _, ok := h.mon.pollInput(); ok {
		t.Fatalf("expected no input")
	}
	h.input <- "s"
	if line, ok := h.mon.pollInput(); !ok || line != "s" {
		t.Fatalf("expected pending line, got %q %v", line, ok)
	}
	close(h.input)
	if _, ok := h.mon.pollInput(); ok {
		t.Fatalf("closed input yields nothing")
	}
	if h.mon.input != nil {
		t.Fatalf("closed input should be dropped")
	}
}

func TestRunTogglesThenQuits(t *testing.T) {
	h := newHarness(t,
		sampleOf(100, types.ProcSample{PID: 1, Name: "a"}),
		sampleOf(200, types.ProcSample{PID: 1, Name: "a", UserTicks: 10}),
		sampleOf(300, types.ProcSample{PID: 1, Name: "a", UserTicks: 20}),
	)
	h.input <- "s"
	h.input <- "q"

	done := make(chan error, 1)
	go func() { done <- h.mon.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("quit should return nil, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("monitor did not quit")
	}

	out := h.out.String()
	if !strings.Contains(out, "Sort by: CPU") || !strings.Contains(out, "Sort by: MEM") {
		t.Fatalf("expected a CPU frame followed by a MEM frame:\n%s", out)
	}
	if h.sampler.calls != 3 {
		t.Fatalf("expected baseline plus two cycles, got %d samples", h.sampler.calls)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.mon.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultConfigAndNormalize(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Interval != 2*time.Second || cfg.TopK != 20 || cfg.KillPause != 800*time.Millisecond || cfg.ProcRoot != "/proc" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	n := Config{KillPause: -1}.normalized()
	if n.Interval != defaultInterval || n.TopK != types.DefaultTopK || n.KillPause != 0 || n.ProcRoot != defaultProcRoot {
		t.Fatalf("unexpected normalized config: %+v", n)
	}
}
