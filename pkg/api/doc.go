// Package api defines the protocol-neutral types shared by every layer of
// the relay gateway: structured errors and identifier generation.
//
// Core types:
//   - [APIError]: Structured error with type, code, param, and message
//   - [ErrorResponse]: Top-level JSON error body ({"error": {...}})
//
// Identifiers are random version 4 UUIDs, so concurrent requests never
// need to coordinate to stay unique.
package api
