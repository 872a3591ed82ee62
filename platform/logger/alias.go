package logger

import "go.uber.org/zap"

// Field aliases so callers never import zap directly.
type Field = zap.Field

var (
	String   = zap.String
	Strings  = zap.Strings
	Int      = zap.Int
	Float64  = zap.Float64
	Duration = zap.Duration
	ErrorF   = zap.Error
	Any      = zap.Any
)
