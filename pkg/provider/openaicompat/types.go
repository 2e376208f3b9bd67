package openaicompat

import "encoding/json"

// Chat Completions request types accepted by the gateway.
// These mirror the OpenAI Chat Completions API request format.

// ChatCompletionRequest is the request body for /v1/chat/completions.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Tools       []ChatTool    `json:"tools,omitempty"`
	ToolChoice  any           `json:"tool_choice,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
	Stream      bool          `json:"stream,omitempty"`
	User        string        `json:"user,omitempty"`
}

// Message roles understood by the translators. Any other role is ignored.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ChatMessage represents a message in the Chat Completions format.
// Content is kept raw because clients send either a plain string or an
// array of typed content parts; use FlattenContent to reduce it to text.
type ChatMessage struct {
	Role       string          `json:"role"`
	Content    json.RawMessage `json:"content,omitempty"`
	ToolCalls  []ChatToolCall  `json:"tool_calls,omitempty"`
	ToolCallID string          `json:"tool_call_id,omitempty"`
	Name       string          `json:"name,omitempty"`
}

// Text returns the message content reduced to plain text.
func (m ChatMessage) Text() string {
	return FlattenContent(m.Content)
}

// ChatToolCall represents a tool call in an assistant message. Some clients
// send name and arguments at the top level instead of under "function";
// both shapes are accepted.
type ChatToolCall struct {
	ID        string            `json:"id,omitempty"`
	Type      string            `json:"type,omitempty"`
	Function  *ChatFunctionCall `json:"function,omitempty"`
	Name      string            `json:"name,omitempty"`
	Arguments json.RawMessage   `json:"arguments,omitempty"`
}

// ChatFunctionCall holds function name and arguments. Arguments is either a
// JSON-encoded string (the OpenAI wire format) or an already-structured
// JSON object.
type ChatFunctionCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// FunctionName returns the called function's name, preferring the nested
// function object.
func (c ChatToolCall) FunctionName() string {
	if c.Function != nil && c.Function.Name != "" {
		return c.Function.Name
	}
	return c.Name
}

// RawArguments returns the raw argument payload, preferring the nested
// function object.
func (c ChatToolCall) RawArguments() json.RawMessage {
	if c.Function != nil && len(c.Function.Arguments) > 0 {
		return c.Function.Arguments
	}
	return c.Arguments
}

// ChatTool represents a tool definition, either in the standard
// {"type":"function","function":{...}} shape or the flat
// {"name","description","parameters"} shape.
type ChatTool struct {
	Type        string           `json:"type,omitempty"`
	Function    *ChatFunctionDef `json:"function,omitempty"`
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Parameters  json.RawMessage  `json:"parameters,omitempty"`
}

// ChatFunctionDef is a function definition for a tool.
type ChatFunctionDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// Definition resolves the tool's function definition field by field,
// falling back from the nested function object to the flat fields.
func (t ChatTool) Definition() ChatFunctionDef {
	def := ChatFunctionDef{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
	if t.Function == nil {
		return def
	}
	if t.Function.Name != "" {
		def.Name = t.Function.Name
	}
	if t.Function.Description != "" {
		def.Description = t.Function.Description
	}
	if len(t.Function.Parameters) > 0 {
		def.Parameters = t.Function.Parameters
	}
	return def
}
