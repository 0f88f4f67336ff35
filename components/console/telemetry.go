package console

import (
	"context"
	"log/slog"
	"sort"
)

// Telemetry records console events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// LogTelemetry writes events to a slog logger at info level.
type LogTelemetry struct {
	Logger *slog.Logger
}

// NewLogTelemetry scopes logger to the console component.
func NewLogTelemetry(logger *slog.Logger) LogTelemetry {
	if logger == nil {
		logger = slog.Default()
	}
	return LogTelemetry{Logger: logger.With("component", "console")}
}

// Record logs event with its payload as attributes.
func (t LogTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		attrs = append(attrs, k, payload[k])
	}
	t.Logger.InfoContext(ctx, event, attrs...)
}
