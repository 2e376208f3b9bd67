package openaikiro

import (
	"fmt"

	"github.com/rhuss/relay/pkg/debug"
	"github.com/rhuss/relay/pkg/provider/openaicompat"
)

// extractCurrent removes the trailing user turn and returns it with the
// remaining history. If the current turn has no tools while a history user
// turn still holds the tool list, the list moves to the current turn.
func extractCurrent(h history) (UserTurn, []Turn, error) {
	if len(h.Turns) == 0 && h.TrailingRole == "" {
		return UserTurn{}, nil, fmt.Errorf("%w: conversation is empty", ErrNoCurrentTurn)
	}
	if h.TrailingRole != openaicompat.RoleUser {
		return UserTurn{}, nil, fmt.Errorf("%w: last message has role %q", ErrNoCurrentTurn, h.TrailingRole)
	}

	current, ok := h.Turns[len(h.Turns)-1].(UserTurn)
	if !ok {
		return UserTurn{}, nil, fmt.Errorf("%w: last turn is an assistant turn", ErrNoCurrentTurn)
	}

	rest := make([]Turn, len(h.Turns)-1)
	copy(rest, h.Turns)

	if current.Context != nil && len(current.Context.Tools) > 0 {
		return current, rest, nil
	}

	for i, t := range rest {
		u, ok := t.(UserTurn)
		if !ok || u.Context == nil || len(u.Context.Tools) == 0 {
			continue
		}

		moved := &UserContext{Tools: u.Context.Tools}
		if current.Context != nil {
			moved.ToolResults = current.Context.ToolResults
		}
		current.Context = moved

		var left *UserContext
		if len(u.Context.ToolResults) > 0 {
			left = &UserContext{ToolResults: u.Context.ToolResults}
		}
		rest[i] = UserTurn{Content: u.Content, ModelID: u.ModelID, Context: left}

		debug.Log("translator", "moved tools to current turn", "from", i, "tools", len(moved.Tools))
		break
	}

	return current, rest, nil
}
