package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cppdoc/internal/trace"
)

// activeTracer is closed by finishTracing once the command has returned.
var activeTracer trace.Tracer = trace.Nop

// setupTracing inspects trace-related flags and attaches the tracer to
// the command context.
func setupTracing(cmd *cobra.Command) error {
	root := cmd.Root().PersistentFlags()

	traceOutput, err := root.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := root.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := root.GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := root.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" && !root.Changed("trace-level") {
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer = tracer

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(trace.WithTracer(ctx, tracer))
	return nil
}

// finishTracing flushes and closes the tracer created by setupTracing.
func finishTracing(errOut io.Writer) {
	if activeTracer == trace.Nop {
		return
	}
	if err := activeTracer.Flush(); err != nil {
		fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
	}
	if err := activeTracer.Close(); err != nil {
		fmt.Fprintf(errOut, "trace: close error: %v\n", err)
	}
	activeTracer = trace.Nop
}

// dumpTraceOnPanic prints the in-memory trace ring before re-panicking.
// It must be deferred directly.
func dumpTraceOnPanic(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}
	if ring, ok := trace.Ring(trace.FromContext(ctx)); ok {
		fmt.Fprintln(os.Stderr, "== trace (most recent events) ==")
		_ = ring.Dump(os.Stderr, trace.FormatText)
	}
	panic(r)
}
