// Package engine implements the request path of the relay gateway.
// The Engine struct implements transport.Gateway: it resolves the format
// pair and model for an inbound exchange, dispatches the body through the
// translator registry, sends the translated payload to the upstream backend
// and relays the reply to the client byte for byte. The backend is
// optional; without one the engine can only translate (dry runs).
package engine
