// Package kiro defines the Kiro (CodeWhisperer-style) conversation request
// format and an upstream client that posts translated payloads to it.
//
// The payload is a conversationState envelope: a single current user
// message that may carry tool specifications and tool results, plus a
// history of strictly alternating user and assistant turns without any
// tool metadata. Building a valid payload from a chat-completions request
// is the job of pkg/translator/openaikiro; this package only describes the
// wire shape and moves bytes.
package kiro
