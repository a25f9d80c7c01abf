package logger

import (
	"context"

	"go.uber.org/zap"
)

type fieldsKey struct{}

// WithFields returns a context whose *Ctx log entries carry the given fields,
// in addition to any fields already attached to ctx
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	if len(fields) == 0 {
		return ctx
	}
	existing := fieldsFromContext(ctx)
	merged := make([]zap.Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

func fieldsFromContext(ctx context.Context) []zap.Field {
	fields, _ := ctx.Value(fieldsKey{}).([]zap.Field)
	return fields
}
