package api

import (
	"strings"

	"github.com/google/uuid"
)

// toolUsePrefix marks tool-use ids synthesized by the gateway, so they can
// be told apart from ids issued by a client or model.
const toolUsePrefix = "tooluse_"

// NewConversationID returns a random (version 4) UUID string. Ids are
// generated independently per call; no coordination between requests or
// processes is needed.
func NewConversationID() string {
	return uuid.NewString()
}

// NewToolUseID returns an id for a tool call that arrived without one.
func NewToolUseID() string {
	return toolUsePrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ValidateConversationID checks whether id is a canonical UUID string.
func ValidateConversationID(id string) bool {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return parsed.String() == id
}

// IsSynthesizedToolUseID reports whether id was produced by NewToolUseID.
func IsSynthesizedToolUseID(id string) bool {
	rest, ok := strings.CutPrefix(id, toolUsePrefix)
	return ok && len(rest) == 32
}
