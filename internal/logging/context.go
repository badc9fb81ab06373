package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// scope holds what a context adds to every record logged under it.
type scope struct {
	requestID string
	operation string
}

type scopeKey struct{}

func scopeOf(ctx context.Context) scope {
	if ctx == nil {
		return scope{}
	}
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

// GenerateRequestID returns a fresh id for an API request.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID tags ctx with the id of the API request being served.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	s := scopeOf(ctx)
	s.requestID = requestID
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithOperation tags ctx with the CLI command or API route being run.
func WithOperation(ctx context.Context, op string) context.Context {
	s := scopeOf(ctx)
	s.operation = op
	return context.WithValue(ctx, scopeKey{}, s)
}

// RequestIDFromContext returns the request id set by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return scopeOf(ctx).requestID
}

// OperationFromContext returns the operation set by WithOperation, or "".
func OperationFromContext(ctx context.Context) string {
	return scopeOf(ctx).operation
}

// FromContext returns the package logger with the context's request id and
// operation attached.
func FromContext(ctx context.Context) *slog.Logger {
	logger := Logger()
	s := scopeOf(ctx)
	if s.operation != "" {
		logger = logger.With(KeyOperation, s.operation)
	}
	if s.requestID != "" {
		logger = logger.With(KeyRequestID, s.requestID)
	}
	return logger
}
