package main

import (
	"context"

	"github.com/zoobzio/capitan"
	"go.uber.org/zap"

	"github.com/zoobzio/textops"
)

// logBridge forwards pipeline observability hooks to the structured logger.
type logBridge struct {
	closers []func()
}

func newLogBridge(logger *zap.Logger) *logBridge {
	b := &logBridge{}

	hook := func(signal capitan.Signal, level func(string, ...zap.Field)) {
		listener := capitan.Hook(signal, func(_ context.Context, e *capitan.Event) {
			fields := []zap.Field{}
			if v, ok := textops.RequestIDKey.From(e); ok {
				fields = append(fields, zap.String("request_id", v))
			}
			if v, ok := textops.OperationKey.From(e); ok {
				fields = append(fields, zap.String("operation", v))
			}
			if v, ok := textops.ProviderKey.From(e); ok {
				fields = append(fields, zap.String("provider", v))
			}
			if v, ok := textops.AttemptKey.From(e); ok {
				fields = append(fields, zap.Int("attempt", v))
			}
			if v, ok := textops.DelayMsKey.From(e); ok {
				fields = append(fields, zap.Int("delay_ms", v))
			}
			if v, ok := textops.DurationMsKey.From(e); ok {
				fields = append(fields, zap.Int("duration_ms", v))
			}
			if v, ok := textops.HTTPStatusCodeKey.From(e); ok {
				fields = append(fields, zap.Int("status", v))
			}
			if v, ok := textops.TotalTokensKey.From(e); ok {
				fields = append(fields, zap.Int("total_tokens", v))
			}
			if v, ok := textops.ErrorKey.From(e); ok {
				fields = append(fields, zap.String("error", v))
			}
			if v, ok := textops.ErrorTypeKey.From(e); ok {
				fields = append(fields, zap.String("error_type", v))
			}
			level(string(signal), fields...)
		})
		b.closers = append(b.closers, func() { listener.Close() })
	}

	hook(textops.RequestStarted, logger.Info)
	hook(textops.RequestCompleted, logger.Info)
	hook(textops.RequestFailed, logger.Error)
	hook(textops.CallRetrying, logger.Warn)
	hook(textops.ProviderCallFailed, logger.Warn)
	hook(textops.ResponseRejected, logger.Error)

	return b
}

// Close detaches all hook listeners.
func (b *logBridge) Close() {
	for _, c := range b.closers {
		c()
	}
}
