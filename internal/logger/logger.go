// Package logger traces the ragdex pipelines to stderr. Tracing is off by
// default and enabled with --verbose; every line is tagged with the pipeline
// stage that produced it, so interleaved fetch, ingest and retrieval output
// stays attributable.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var (
	enabled atomic.Bool

	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetVerbose turns tracing on or off.
func SetVerbose(v bool) {
	enabled.Store(v)
}

// IsVerbose reports whether tracing is enabled.
func IsVerbose() bool {
	return enabled.Load()
}

// SetOutput redirects tracing output. Defaults to os.Stderr; tests capture
// it with a buffer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Tracer emits trace lines tagged with one pipeline stage. The zero value
// traces without a stage tag. Tracers are values; every component keeps its
// own and they all share the process-wide verbosity gate and writer.
type Tracer struct {
	stage string
}

// Pipeline returns the tracer for one pipeline stage ("ingest", "harvest",
// "store", ...).
func Pipeline(stage string) Tracer {
	return Tracer{stage: stage}
}

// Begin marks the start of a run within the stage with a banner line.
func (t Tracer) Begin(format string, args ...any) {
	t.emit("", "-- "+format+" --", args...)
}

// Debug traces fine-grained progress.
func (t Tracer) Debug(format string, args ...any) {
	t.emit("debug", format, args...)
}

// Info traces run-level outcomes.
func (t Tracer) Info(format string, args ...any) {
	t.emit("info", format, args...)
}

// Warn traces soft failures that were skipped rather than propagated.
func (t Tracer) Warn(format string, args ...any) {
	t.emit("warn", format, args...)
}

func (t Tracer) emit(level, format string, args ...any) {
	if !enabled.Load() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if t.stage != "" {
		msg = t.stage + ": " + msg
	}
	if level != "" {
		msg = fmt.Sprintf("%-5s %s", level, msg)
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, msg)
}
