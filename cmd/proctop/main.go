//go:build linux

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/srodi/proctop/pkg/collector/cpu"
	"github.com/srodi/proctop/pkg/collector/memory"
	"github.com/srodi/proctop/pkg/control"
	"github.com/srodi/proctop/pkg/monitor"
)

func main() {
	logger := newLogger(os.Stderr)
	cfg := monitor.DefaultConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cpuCollector, err := cpu.NewCollector(cfg.ProcRoot)
	if err != nil {
		logger.Fatal().Err(err).Msg("initializing CPU collector")
	}

	memReader, err := memory.NewReader(cfg.ProcRoot)
	if err != nil {
		logger.Fatal().Err(err).Msg("initializing memory reader")
	}

	cleanupTerminal := enableSingleView()
	defer cleanupTerminal()

	m := monitor.New(cfg, monitor.Options{
		Sampler: cpuCollector,
		Memory:  memReader,
		Kill:    control.Kill,
		Out:     os.Stdout,
		Input:   monitor.ReadLines(os.Stdin),
		Logger:  &logger,
	})

	if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("monitor stopped")
	}
}

// newLogger writes human-readable diagnostics to w. Only warnings and above
// are emitted so the redraw stays clean.
func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(zerolog.WarnLevel).
		With().
		Timestamp().
		Logger()
}

// enableSingleView switches an interactive stdout to the alternate screen
// buffer and returns the function that restores it.
func enableSingleView() func() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return func() {}
	}
	fmt.Print("\033[?1049h") // switch to alternate buffer
	return func() {
		fmt.Print("\033[?1049l") // restore main buffer
	}
}
