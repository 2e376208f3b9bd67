package debug

import (
	"log/slog"
	"testing"
)

func TestParseCategories(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]bool
	}{
		{"empty", "", map[string]bool{}},
		{"single", "upstream", map[string]bool{"upstream": true}},
		{"multiple", "upstream,translator", map[string]bool{"upstream": true, "translator": true}},
		{"all", "all", map[string]bool{"all": true}},
		{"with spaces", " upstream , translator ", map[string]bool{"upstream": true, "translator": true}},
		{"uppercase normalized", "UPSTREAM,Translator", map[string]bool{"upstream": true, "translator": true}},
		{"empty segments", "upstream,,translator", map[string]bool{"upstream": true, "translator": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCategories(tt.input)
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("got[%q] = %v, want %v", k, got[k], v)
				}
			}
			if len(got) != len(tt.want) {
				t.Errorf("len(got) = %d, want %d", len(got), len(tt.want))
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	// Save and restore.
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("upstream,translator")

	if !Enabled("upstream") {
		t.Error("upstream should be enabled")
	}
	if !Enabled("translator") {
		t.Error("translator should be enabled")
	}
	if Enabled("paramstore") {
		t.Error("paramstore should not be enabled")
	}
	if Enabled("all") {
		t.Error("all should not be enabled (not in categories)")
	}
}

func TestEnabled_All(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("all")

	if !Enabled("upstream") {
		t.Error("upstream should be enabled via 'all'")
	}
	if !Enabled("translator") {
		t.Error("translator should be enabled via 'all'")
	}
	if !Enabled("anything") {
		t.Error("anything should be enabled via 'all'")
	}
}

func TestEnabled_Empty(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("")

	if Enabled("upstream") {
		t.Error("nothing should be enabled when no categories set")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"TRACE", LevelTrace},
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate short = %q, want %q", got, "short")
	}
	if got := Truncate("this is a long string", 10); got != "this is a ..." {
		t.Errorf("Truncate long = %q, want %q", got, "this is a ...")
	}
}

func TestLog_DisabledCategory(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("")

	// Should not panic or produce output.
	Log("upstream", "test message", "key", "value")
	Trace("upstream", "trace message", "key", "value")
}

func TestTraceIsEnabled_RequiresCategory(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("translator")
	if TraceIsEnabled("upstream") {
		t.Error("trace should not be enabled for an inactive category")
	}

	// Disabled categories must not marshal or write anything.
	JSON("upstream", "payload", map[string]any{"k": make(chan int)})
}
