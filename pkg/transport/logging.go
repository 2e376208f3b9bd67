package transport

import (
	"context"
	"log/slog"
	"time"
)

// Logging returns middleware that emits one structured log entry per
// forwarded request with the request ID, format pair, model, stream flag,
// duration and, on failure, the error.
//
// HTTP status codes are not visible at this level; the metrics middleware
// in pkg/observability records those.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Forwarder) Forwarder {
		return ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
			start := time.Now()
			requestID := RequestIDFromContext(ctx)

			err := next.Forward(ctx, ex, w)

			attrs := []slog.Attr{
				slog.String("request_id", requestID),
				slog.String("source", string(ex.Source)),
				slog.String("target", string(ex.Target)),
				slog.String("model", ex.Model),
				slog.Bool("stream", ex.Stream),
				slog.Duration("duration", time.Since(start)),
			}

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				logger.LogAttrs(ctx, slog.LevelError, "request failed", attrs...)
			} else {
				logger.LogAttrs(ctx, slog.LevelInfo, "request completed", attrs...)
			}

			return err
		})
	}
}
