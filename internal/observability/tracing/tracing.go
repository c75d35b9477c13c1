package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const TraceIDHeader = "X-Trace-Id"

type traceIDKey struct{}

// InjectTraceID attaches a logger carrying a fresh trace id to ctx.
func InjectTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, uuid.New().String())
}

// WithTraceID attaches id and a logger carrying it to ctx. An empty id is
// replaced by a fresh one.
func WithTraceID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.New().String()
	}
	ctx = context.WithValue(ctx, traceIDKey{}, id)
	logger := log.With().Str("traceId", id).Logger()
	return logger.WithContext(ctx)
}

// TraceID returns the id attached by WithTraceID, empty if there is none.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}
