package transport

// Middleware wraps a Forwarder with relay-wide behavior such as recovery,
// request IDs and logging.
type Middleware func(Forwarder) Forwarder

// Chain composes middleware so that Chain(a, b, c) produces a(b(c(f))).
// The first middleware sees the exchange first and the error last. Nil
// entries are skipped, which lets callers leave optional middleware unset.
func Chain(middlewares ...Middleware) Middleware {
	return func(next Forwarder) Forwarder {
		for i := len(middlewares) - 1; i >= 0; i-- {
			if middlewares[i] == nil {
				continue
			}
			next = middlewares[i](next)
		}
		return next
	}
}
