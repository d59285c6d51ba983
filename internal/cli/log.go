package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dfpa/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Colored DSJC125.1 with 5 colors (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Hook Bridge
// =============================================================================

// logHooks forwards observability events to the logger. Generation progress
// and cache traffic go to debug; found colorings go to info.
type logHooks struct {
	logger *log.Logger
}

func (c *CLI) installHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetSearchHooks(h)
	observability.SetCacheHooks(h)
	observability.SetBenchHooks(h)
}

func (h *logHooks) OnTargetStart(_ context.Context, k, popSize int) {
	h.logger.Debug("target", "k", k, "population", popSize)
}

func (h *logHooks) OnGeneration(_ context.Context, k, generation, bestConflicts int) {
	h.logger.Debug("generation", "k", k, "gen", generation, "conflicts", bestConflicts)
}

func (h *logHooks) OnColoringFound(_ context.Context, k, generation int, elapsed time.Duration) {
	h.logger.Info("found coloring", "k", k, "gen", generation, "elapsed", elapsed.Round(time.Millisecond))
}

func (h *logHooks) OnSearchComplete(_ context.Context, colors, generations int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("search stopped", "colors", colors, "generations", generations, "error", err)
		return
	}
	h.logger.Debug("search complete", "colors", colors, "generations", generations, "duration", duration.Round(time.Millisecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRunStart(_ context.Context, instance string, try int) {
	h.logger.Debug("try start", "instance", instance, "try", try+1)
}

func (h *logHooks) OnRunComplete(_ context.Context, instance string, try, colors int, cached bool, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("try failed", "instance", instance, "try", try+1, "error", err)
		return
	}
	h.logger.Debug("try done", "instance", instance, "try", try+1, "colors", colors, "cached", cached, "duration", duration.Round(time.Millisecond))
}
