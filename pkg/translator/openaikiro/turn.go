package openaikiro

import "encoding/json"

// Turn is one entry of the Kiro conversation: a UserTurn or an
// AssistantTurn. The set of variants is closed.
type Turn interface {
	turn()
}

// UserTurn is a user-authored turn. Context is nil when the turn carries
// neither tools nor tool results.
type UserTurn struct {
	Content string
	ModelID string
	Context *UserContext
}

// AssistantTurn is a model-authored turn with the tool calls it issued.
type AssistantTurn struct {
	Content  string
	ToolUses []ToolUse
}

func (UserTurn) turn()      {}
func (AssistantTurn) turn() {}

// UserContext is the tool metadata attached to a user turn.
type UserContext struct {
	Tools       []ToolSpec
	ToolResults []ToolResult
}

func (c *UserContext) empty() bool {
	return c == nil || (len(c.Tools) == 0 && len(c.ToolResults) == 0)
}

// ToolSpec is a function offered to the model.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// ToolUse is a tool call issued by the assistant.
type ToolUse struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ToolResult is the outcome of a tool call, matched back by ToolUseID.
type ToolResult struct {
	ToolUseID string
	Content   string
	Status    string
}
