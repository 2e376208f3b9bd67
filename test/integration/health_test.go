package integration

import (
	"net/http"
	"strings"
	"testing"
)

func TestHealthEndpoint(t *testing.T) {
	resp := getURL(t, testEnv.BaseURL()+"/healthz")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	body := readBody(t, resp)
	if !strings.Contains(body, "ok") {
		t.Errorf("body = %q, want to contain 'ok'", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	// Drive one request so the relay counters have samples.
	resp := postJSON(t, testEnv.BaseURL()+"/v1/chat/completions", chatRequest("claude-sonnet-4", "hello", false))
	readBody(t, resp)

	resp = getURL(t, testEnv.BaseURL()+"/metrics")
	body := readBody(t, resp)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	for _, name := range []string{
		"relay_requests_total",
		"relay_translations_total",
		"relay_provider_requests_total",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

func TestListTranslators(t *testing.T) {
	resp := getURL(t, testEnv.BaseURL()+"/v1/translators")

	var list struct {
		Object string `json:"object"`
		Data   []struct {
			Source string `json:"source"`
			Target string `json:"target"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &list)

	if list.Object != "list" {
		t.Errorf("object = %q, want list", list.Object)
	}
	if len(list.Data) != 1 || list.Data[0].Source != "openai" || list.Data[0].Target != "kiro" {
		t.Errorf("data = %+v, want one openai -> kiro pair", list.Data)
	}
}
