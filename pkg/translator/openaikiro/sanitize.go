package openaikiro

import "github.com/rhuss/relay/pkg/debug"

// sanitizeHistory strips tool metadata from every history turn, backfills
// missing model ids and merges adjacent user turns. Adjacent assistant
// turns are left as they are.
func sanitizeHistory(turns []Turn, model string) []Turn {
	out := make([]Turn, 0, len(turns))
	merged := 0

	for _, t := range turns {
		var clean Turn
		switch v := t.(type) {
		case UserTurn:
			id := v.ModelID
			if id == "" {
				id = model
			}
			clean = UserTurn{Content: v.Content, ModelID: id}
		case AssistantTurn:
			clean = AssistantTurn{Content: v.Content}
		default:
			continue
		}

		if u, ok := clean.(UserTurn); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(UserTurn); ok {
				out[len(out)-1] = UserTurn{
					Content: prev.Content + "\n\n" + u.Content,
					ModelID: prev.ModelID,
				}
				merged++
				continue
			}
		}
		out = append(out, clean)
	}

	if merged > 0 {
		debug.Log("translator", "merged consecutive user turns", "merged", merged)
	}
	return out
}
