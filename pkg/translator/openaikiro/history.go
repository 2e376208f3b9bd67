package openaikiro

import (
	"encoding/json"
	"strings"

	"github.com/rhuss/relay/pkg/debug"
	"github.com/rhuss/relay/pkg/provider/kiro"
	"github.com/rhuss/relay/pkg/provider/openaicompat"
)

// history is the raw turn sequence produced from the source messages.
type history struct {
	Turns        []Turn
	SystemPrompt string

	// TrailingRole is the role of the last system, user or assistant
	// message. Tool messages and unknown roles do not count.
	TrailingRole string

	// Undelivered counts matched tool results staged after the last user
	// turn. They have no turn to travel on and are dropped.
	Undelivered int
}

// historyBuilder turns chat messages into Kiro turns. It owns the
// tool-result lookup and the queue of results waiting for the next user
// turn; both are discarded when build returns.
type historyBuilder struct {
	model     string
	tools     []ToolSpec
	newToolID func() string

	results map[string]string
	staged  []ToolResult

	turns        []Turn
	system       []string
	sawUser      bool
	trailingRole string
}

func newHistoryBuilder(model string, tools []ToolSpec, newToolID func() string) *historyBuilder {
	return &historyBuilder{
		model:     model,
		tools:     tools,
		newToolID: newToolID,
		results:   make(map[string]string),
	}
}

func (b *historyBuilder) build(messages []openaicompat.ChatMessage) (history, error) {
	// Pass 1: index tool results by call id. A repeated id keeps the last one.
	for _, m := range messages {
		if m.Role == openaicompat.RoleTool && m.ToolCallID != "" {
			b.results[m.ToolCallID] = m.Text()
		}
	}

	// Pass 2: build turns in order.
	for _, m := range messages {
		switch m.Role {
		case openaicompat.RoleSystem:
			b.trailingRole = m.Role
			if text := m.Text(); text != "" {
				b.system = append(b.system, text)
			}
		case openaicompat.RoleUser:
			b.trailingRole = m.Role
			b.addUser(m)
		case openaicompat.RoleAssistant:
			b.trailingRole = m.Role
			if err := b.addAssistant(m); err != nil {
				return history{}, err
			}
		case openaicompat.RoleTool:
			// consumed in pass 1
		default:
			debug.Log("translator", "ignoring message with unknown role", "role", m.Role)
		}
	}

	if len(b.staged) > 0 {
		debug.Log("translator", "dropping tool results with no following user turn", "count", len(b.staged))
	}

	return history{
		Turns:        b.turns,
		SystemPrompt: strings.Join(b.system, "\n"),
		TrailingRole: b.trailingRole,
		Undelivered:  len(b.staged),
	}, nil
}

func (b *historyBuilder) addUser(m openaicompat.ChatMessage) {
	t := UserTurn{Content: m.Text(), ModelID: b.model}

	ctx := &UserContext{}
	if !b.sawUser && len(b.tools) > 0 {
		ctx.Tools = b.tools
	}
	b.sawUser = true

	if len(b.staged) > 0 {
		ctx.ToolResults = b.staged
		b.staged = nil
	}
	if !ctx.empty() {
		t.Context = ctx
	}

	b.turns = append(b.turns, t)
}

func (b *historyBuilder) addAssistant(m openaicompat.ChatMessage) error {
	t := AssistantTurn{Content: m.Text()}

	for _, call := range m.ToolCalls {
		id := call.ID
		if id == "" {
			id = b.newToolID()
		}
		name := call.FunctionName()

		input, err := openaicompat.ParseArguments(call.RawArguments())
		if err != nil {
			return &MalformedToolArgumentsError{CallID: id, Name: name, Err: err}
		}
		t.ToolUses = append(t.ToolUses, ToolUse{ID: id, Name: name, Input: input})

		if content, ok := b.results[id]; ok {
			b.staged = append(b.staged, ToolResult{
				ToolUseID: id,
				Content:   content,
				Status:    kiro.ToolStatusSuccess,
			})
		}
	}

	b.turns = append(b.turns, t)
	return nil
}

// convertTools maps chat tool definitions to tool specs. Tools without a
// name cannot be called and are skipped.
func convertTools(tools []openaicompat.ChatTool) []ToolSpec {
	if len(tools) == 0 {
		return nil
	}

	specs := make([]ToolSpec, 0, len(tools))
	for _, tool := range tools {
		def := tool.Definition()
		if def.Name == "" {
			debug.Log("translator", "skipping tool without a name")
			continue
		}

		desc := def.Description
		if strings.TrimSpace(desc) == "" {
			desc = "Tool: " + def.Name
		}

		params := def.Parameters
		if len(params) == 0 || string(params) == "null" {
			params = json.RawMessage(`{}`)
		}

		specs = append(specs, ToolSpec{Name: def.Name, Description: desc, Parameters: params})
	}
	return specs
}
