package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/rhuss/relay/pkg/provider/kiro"
)

func TestChatCompletion_RelaysUpstreamReply(t *testing.T) {
	resp := postJSON(t, testEnv.BaseURL()+"/v1/chat/completions", chatRequest("claude-sonnet-4", "What is 2+2?", false))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}

	var reply struct {
		ConversationID string `json:"conversationId"`
		ModelID        string `json:"modelId"`
	}
	decodeJSON(t, resp, &reply)

	payload, headers := testEnv.Upstream.last(t)
	if reply.ConversationID != payload.ConversationState.ConversationID {
		t.Errorf("reply conversationId = %q, upstream saw %q", reply.ConversationID, payload.ConversationState.ConversationID)
	}
	if reply.ModelID != "claude-sonnet-4" {
		t.Errorf("modelId = %q", reply.ModelID)
	}
	if got := headers.Get("Authorization"); got != "Bearer tok-test" {
		t.Errorf("upstream Authorization = %q", got)
	}
}

func TestChatCompletion_PayloadShape(t *testing.T) {
	req := map[string]any{
		"model":       "sonnet",
		"max_tokens":  1024,
		"temperature": 0.2,
		"tools": []map[string]any{
			{"type": "function", "function": map[string]any{
				"name":       "get_weather",
				"parameters": map[string]any{"type": "object"},
			}},
		},
		"messages": []map[string]any{
			{"role": "system", "content": "Be brief."},
			{"role": "user", "content": "Weather in Paris?"},
			{"role": "assistant", "content": nil, "tool_calls": []map[string]any{
				{"id": "call_1", "type": "function", "function": map[string]any{
					"name": "get_weather", "arguments": `{"city":"Paris"}`,
				}},
			}},
			{"role": "tool", "tool_call_id": "call_1", "content": "18C, sunny"},
			{"role": "user", "content": "Thanks. And tomorrow?"},
		},
	}

	resp := postJSON(t, testEnv.BaseURL()+"/v1/chat/completions", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	readBody(t, resp)

	payload, _ := testEnv.Upstream.last(t)
	state := payload.ConversationState

	if payload.ProfileARN != testProfileARN {
		t.Errorf("profileArn = %q", payload.ProfileARN)
	}
	if payload.InferenceConfig == nil || payload.InferenceConfig.MaxTokens != 1024 {
		t.Errorf("inferenceConfig = %+v, want maxTokens 1024", payload.InferenceConfig)
	}
	if state.ChatTriggerType != kiro.ChatTriggerManual {
		t.Errorf("chatTriggerType = %q", state.ChatTriggerType)
	}

	cur := state.CurrentMessage.UserInputMessage
	if cur.ModelID != "CLAUDE_SONNET_4_20250514_V1_0" {
		t.Errorf("modelId = %q, want aliased id", cur.ModelID)
	}
	if !strings.HasPrefix(cur.Content, "[Context: Current time is ") {
		t.Errorf("content missing time prefix: %q", cur.Content)
	}
	if !strings.Contains(cur.Content, "[System: Be brief.]") {
		t.Errorf("content missing system prompt: %q", cur.Content)
	}
	if !strings.HasSuffix(cur.Content, "Thanks. And tomorrow?") {
		t.Errorf("content = %q", cur.Content)
	}

	ctx := cur.UserInputMessageContext
	if ctx == nil {
		t.Fatal("current message has no context")
	}
	if len(ctx.Tools) != 1 || ctx.Tools[0].ToolSpecification.Description != "Tool: get_weather" {
		t.Errorf("tools = %+v", ctx.Tools)
	}
	if len(ctx.ToolResults) != 1 || ctx.ToolResults[0].ToolUseID != "call_1" {
		t.Errorf("toolResults = %+v", ctx.ToolResults)
	}

	if len(state.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(state.History))
	}
	if state.History[0].UserInputMessage == nil || state.History[0].UserInputMessage.UserInputMessageContext != nil {
		t.Errorf("history[0] should be a user turn without tool metadata: %+v", state.History[0])
	}
	if state.History[1].AssistantResponseMessage == nil {
		t.Errorf("history[1] should be the assistant turn: %+v", state.History[1])
	}
}

func TestChatCompletion_DefaultModel(t *testing.T) {
	resp := postJSON(t, testEnv.BaseURL()+"/v1/chat/completions", chatRequest("", "hi", false))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	readBody(t, resp)

	payload, _ := testEnv.Upstream.last(t)
	if got := payload.ConversationState.CurrentMessage.UserInputMessage.ModelID; got != "claude-sonnet-4" {
		t.Errorf("modelId = %q, want default model", got)
	}
}

func TestTranslate_DoesNotCallUpstream(t *testing.T) {
	before := testEnv.Upstream.count()

	resp := postJSON(t, testEnv.BaseURL()+"/v1/translate", chatRequest("claude-sonnet-4", "dry run", false))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	var payload kiro.Payload
	decodeJSON(t, resp, &payload)

	if !strings.HasSuffix(payload.ConversationState.CurrentMessage.UserInputMessage.Content, "dry run") {
		t.Errorf("content = %q", payload.ConversationState.CurrentMessage.UserInputMessage.Content)
	}
	if payload.ProfileARN != testProfileARN {
		t.Errorf("profileArn = %q", payload.ProfileARN)
	}
	if after := testEnv.Upstream.count(); after != before {
		t.Errorf("upstream called %d times during dry run", after-before)
	}
}
