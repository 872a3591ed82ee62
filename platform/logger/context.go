package logger

import "context"

type ctxKey struct{}

// ContextWithFields attaches fields that every log call made with ctx will carry.
func ContextWithFields(ctx context.Context, fields ...Field) context.Context {
	if len(fields) == 0 {
		return ctx
	}

	prev := fieldsFromContext(ctx)
	merged := make([]Field, 0, len(prev)+len(fields))
	merged = append(merged, prev...)
	merged = append(merged, fields...)

	return context.WithValue(ctx, ctxKey{}, merged)
}

func fieldsFromContext(ctx context.Context) []Field {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(ctxKey{}).([]Field)
	return fields
}

func withContext(ctx context.Context, fields []Field) []Field {
	ctxFields := fieldsFromContext(ctx)
	if len(ctxFields) == 0 {
		return fields
	}

	out := make([]Field, 0, len(ctxFields)+len(fields))
	out = append(out, ctxFields...)
	return append(out, fields...)
}
