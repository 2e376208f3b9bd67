// Package openaicompat defines the OpenAI Chat Completions request format
// accepted by the gateway. It handles the shapes real clients send: string
// or multi-part message content, tool calls with encoded or inline
// arguments, and nested or flat tool definitions.
//
// Translators for specific backends (see pkg/translator) decode request
// bodies into ChatCompletionRequest and use FlattenContent and
// ParseArguments to normalize them.
package openaicompat
