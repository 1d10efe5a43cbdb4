package admin

import "context"

// Telemetry records admin events for observability.
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

// RecordHook is notified after every committed mutation.
type RecordHook interface {
	RecordChanged(ctx context.Context, event ChangeEvent) error
}

// RecordHookFunc adapts a function to RecordHook.
type RecordHookFunc func(ctx context.Context, event ChangeEvent) error

// RecordChanged implements RecordHook.
func (f RecordHookFunc) RecordChanged(ctx context.Context, event ChangeEvent) error {
	return f(ctx, event)
}
