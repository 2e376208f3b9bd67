package openaikiro

import (
	"github.com/rhuss/relay/pkg/provider/kiro"
)

// inference holds the caller's sampling parameters.
type inference struct {
	MaxTokens   *int
	Temperature *float64
	TopP        *float64
}

func (t *Translator) buildPayload(cur UserTurn, hist []Turn, model, profileARN string, inf inference) *kiro.Payload {
	p := &kiro.Payload{
		ConversationState: kiro.ConversationState{
			ChatTriggerType: kiro.ChatTriggerManual,
			ConversationID:  t.cfg.NewConversationID(),
			CurrentMessage: kiro.CurrentMessage{
				UserInputMessage: userMessage(cur, model),
			},
			History: make([]kiro.HistoryMessage, 0, len(hist)),
		},
		ProfileARN: profileARN,
		InferenceConfig: &kiro.InferenceConfig{
			MaxTokens:   t.cfg.DefaultMaxTokens,
			Temperature: inf.Temperature,
			TopP:        inf.TopP,
		},
	}
	if inf.MaxTokens != nil && *inf.MaxTokens > 0 {
		p.InferenceConfig.MaxTokens = *inf.MaxTokens
	}

	for _, turn := range hist {
		switch v := turn.(type) {
		case UserTurn:
			msg := userMessage(v, v.ModelID)
			p.ConversationState.History = append(p.ConversationState.History, kiro.HistoryMessage{UserInputMessage: &msg})
		case AssistantTurn:
			p.ConversationState.History = append(p.ConversationState.History, kiro.HistoryMessage{
				AssistantResponseMessage: &kiro.AssistantResponseMessage{
					Content:  v.Content,
					ToolUses: toolUses(v.ToolUses),
				},
			})
		}
	}
	return p
}

func userMessage(u UserTurn, model string) kiro.UserInputMessage {
	msg := kiro.UserInputMessage{
		Content: u.Content,
		ModelID: model,
		Origin:  kiro.OriginAIEditor,
	}
	if u.Context.empty() {
		return msg
	}

	ctx := &kiro.UserInputMessageContext{}
	for _, spec := range u.Context.Tools {
		ctx.Tools = append(ctx.Tools, kiro.Tool{
			ToolSpecification: kiro.ToolSpecification{
				Name:        spec.Name,
				Description: spec.Description,
				InputSchema: kiro.InputSchema{JSON: spec.Parameters},
			},
		})
	}
	for _, r := range u.Context.ToolResults {
		ctx.ToolResults = append(ctx.ToolResults, kiro.ToolResult{
			Content:   []kiro.ToolResultContent{{Text: r.Content}},
			Status:    r.Status,
			ToolUseID: r.ToolUseID,
		})
	}
	msg.UserInputMessageContext = ctx
	return msg
}

func toolUses(uses []ToolUse) []kiro.ToolUse {
	if len(uses) == 0 {
		return nil
	}
	out := make([]kiro.ToolUse, len(uses))
	for i, u := range uses {
		out[i] = kiro.ToolUse{ToolUseID: u.ID, Name: u.Name, Input: u.Input}
	}
	return out
}
