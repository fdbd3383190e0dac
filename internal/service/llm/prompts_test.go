package llm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPrompts(t *testing.T) {
	p := DefaultPrompts()

	if len(p.SuggestReplies.Defaults) != MaxSuggestions {
		t.Errorf("default suggestions = %d, want %d", len(p.SuggestReplies.Defaults), MaxSuggestions)
	}
	if len(p.Translate.Rules) != 3 {
		t.Errorf("translate rules = %d, want 3", len(p.Translate.Rules))
	}
	// Folded YAML scalars must not leave line breaks inside system prompts.
	if strings.Contains(p.Summarize.System, "\n") {
		t.Errorf("summarize system prompt contains a newline: %q", p.Summarize.System)
	}
}

func TestLoadPrompts_File(t *testing.T) {
	data := strings.Replace(string(defaultPrompts), "Unable to generate summary.", "No summary today.", 1)
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPrompts(path)
	if err != nil {
		t.Fatalf("LoadPrompts: %v", err)
	}
	if p.Summarize.Fallback != "No summary today." {
		t.Errorf("Fallback = %q", p.Summarize.Fallback)
	}
}

func TestLoadPrompts_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not yaml", data: "summarize: [unclosed"},
		{name: "missing operations", data: "summarize:\n  system: s\n  user: u\n  fallback: f\n"},
		{
			name: "rule without selector",
			data: strings.Replace(string(defaultPrompts), "      target: simple\n", "", 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prompts.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadPrompts(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := LoadPrompts(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRender(t *testing.T) {
	got := render("from {source} to {target}: {text} {unknown}", map[string]string{
		"source": "fr",
		"target": "en",
		"text":   "literal {target}",
	})
	want := "from fr to en: literal {target} {unknown}"
	if got != want {
		t.Errorf("render() = %q, want %q", got, want)
	}
}
