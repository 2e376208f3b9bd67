package transport

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/rhuss/relay/pkg/api"
)

// panicMessage is what the client sees when a relay panics. The panic value
// and stack only go to the log.
const panicMessage = "internal error while relaying request"

// Recovery returns middleware that turns a panic in a relay into a server
// error. The panic is logged with the request ID, the format pair and the
// stack. The server keeps accepting requests afterwards.
func Recovery(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Forwarder) Forwarder {
		return ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) (retErr error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				logger.LogAttrs(ctx, slog.LevelError, "relay panicked",
					slog.String("request_id", RequestIDFromContext(ctx)),
					slog.String("source", string(ex.Source)),
					slog.String("target", string(ex.Target)),
					slog.String("model", ex.Model),
					slog.String("panic", fmt.Sprint(r)),
					slog.String("stack", string(debug.Stack())),
				)
				retErr = api.NewServerError(panicMessage)
			}()
			return next.Forward(ctx, ex, w)
		})
	}
}
