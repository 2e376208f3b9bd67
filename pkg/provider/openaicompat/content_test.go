package openaicompat

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestFlattenContent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"missing", ``, ""},
		{"null", `null`, ""},
		{"string", `"Hello"`, "Hello"},
		{"escaped string", `"line1\nline2"`, "line1\nline2"},
		{"text parts", `[{"type":"text","text":"a"},{"type":"text","text":"b"}]`, "a\nb"},
		{"image part contributes empty", `[{"type":"text","text":"a"},{"type":"image_url","image_url":{"url":"x"}}]`, "a\n"},
		{"empty array", `[]`, ""},
		{"object", `{"text":"ignored"}`, ""},
		{"number", `42`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlattenContent(json.RawMessage(tt.raw)); got != tt.want {
				t.Errorf("FlattenContent(%s) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"missing", ``, `{}`, false},
		{"null", `null`, `{}`, false},
		{"empty string", `""`, `{}`, false},
		{"blank string", `"  "`, `{}`, false},
		{"encoded object", `"{\"q\":\"x\"}"`, `{"q":"x"}`, false},
		{"encoded object with spaces", `"{ \"q\" : 1 }"`, `{"q":1}`, false},
		{"inline object", `{"q": "x", "n": [1, 2]}`, `{"q":"x","n":[1,2]}`, false},
		{"encoded garbage", `"{not json"`, ``, true},
		{"encoded array", `"[1,2]"`, ``, true},
		{"encoded number", `"42"`, ``, true},
		{"inline array", `[1,2]`, ``, true},
		{"inline number", `7`, ``, true},
		{"invalid raw", `{"q":`, ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArguments(json.RawMessage(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseArguments(%s) = %s, want error", tt.raw, got)
				}
				if !errors.Is(err, ErrInvalidArguments) {
					t.Errorf("error %v does not wrap ErrInvalidArguments", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArguments(%s) error: %v", tt.raw, err)
			}
			if string(got) != tt.want {
				t.Errorf("ParseArguments(%s) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestChatToolDefinition(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantName string
		wantDesc string
		wantPar  string
	}{
		{
			"nested",
			`{"type":"function","function":{"name":"search","description":"Find things","parameters":{"type":"object"}}}`,
			"search", "Find things", `{"type":"object"}`,
		},
		{
			"flat",
			`{"name":"search","description":"Find things","parameters":{"type":"object"}}`,
			"search", "Find things", `{"type":"object"}`,
		},
		{
			"nested without description falls back to flat",
			`{"function":{"name":"search"},"description":"flat desc"}`,
			"search", "flat desc", ``,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tool ChatTool
			if err := json.Unmarshal([]byte(tt.raw), &tool); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			def := tool.Definition()
			if def.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", def.Name, tt.wantName)
			}
			if def.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", def.Description, tt.wantDesc)
			}
			if string(def.Parameters) != tt.wantPar {
				t.Errorf("Parameters = %s, want %s", def.Parameters, tt.wantPar)
			}
		})
	}
}

func TestChatToolCallAccessors(t *testing.T) {
	var nested ChatToolCall
	if err := json.Unmarshal([]byte(`{"id":"t1","type":"function","function":{"name":"search","arguments":"{\"q\":\"x\"}"}}`), &nested); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if nested.FunctionName() != "search" {
		t.Errorf("FunctionName() = %q, want %q", nested.FunctionName(), "search")
	}
	if string(nested.RawArguments()) != `"{\"q\":\"x\"}"` {
		t.Errorf("RawArguments() = %s", nested.RawArguments())
	}

	var flat ChatToolCall
	if err := json.Unmarshal([]byte(`{"id":"t2","name":"lookup","arguments":{"k":1}}`), &flat); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if flat.FunctionName() != "lookup" {
		t.Errorf("FunctionName() = %q, want %q", flat.FunctionName(), "lookup")
	}
	if string(flat.RawArguments()) != `{"k":1}` {
		t.Errorf("RawArguments() = %s", flat.RawArguments())
	}
}

func TestChatMessageText(t *testing.T) {
	var req ChatCompletionRequest
	body := `{"model":"m","messages":[{"role":"user","content":[{"type":"text","text":"Hi"}]},{"role":"assistant","content":null}]}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := req.Messages[0].Text(); got != "Hi" {
		t.Errorf("Messages[0].Text() = %q, want %q", got, "Hi")
	}
	if got := req.Messages[1].Text(); got != "" {
		t.Errorf("Messages[1].Text() = %q, want empty", got)
	}
}
