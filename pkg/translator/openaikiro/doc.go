// Package openaikiro translates OpenAI chat-completions requests into the
// Kiro conversationState envelope.
//
// Kiro is stricter than the chat-completions format. Only the current
// (last) user message may carry tool specifications and tool results, the
// history must not mention tool calls at all, and consecutive user
// messages are rejected. A translation runs in five steps:
//
//  1. build turns from the messages, attaching tools to the first user
//     turn and delivering each matched tool result to the user turn that
//     follows the assistant call;
//  2. pop the trailing user turn as the current turn and move the tool
//     list onto it if it stayed behind in history;
//  3. strip tool metadata from history and merge adjacent user turns;
//  4. prefix the current turn with a timestamp and the system prompt;
//  5. wrap everything in a kiro.Payload.
package openaikiro
