package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey  ctxKey = "request_id"
	customerIDKey ctxKey = "customer_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithCustomerID tags every log line written through FromCtx with the customer.
func WithCustomerID(ctx context.Context, customerID string) context.Context {
	return context.WithValue(ctx, customerIDKey, customerID)
}

func CustomerIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(customerIDKey).(string); ok {
		return v
	}
	return ""
}

// FromCtx returns the global logger with request_id and customer_id attached
// when the context carries them.
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if ctx == nil {
		return l
	}
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if customerID := CustomerIDFrom(ctx); customerID != "" {
		l = l.With(zap.String("customer_id", customerID))
	}
	return l
}
