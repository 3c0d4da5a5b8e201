package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderReplacesEveryOccurrence(t *testing.T) {
	content := "# [TITLE]\n[TITLE] on [DATE], again [TITLE]."
	out := Render(content, Tokens{"TITLE": "Hello", "DATE": "2026-08-29"})
	if strings.Contains(out, "[TITLE]") || strings.Contains(out, "[DATE]") {
		t.Errorf("unreplaced tokens remain: %q", out)
	}
	if strings.Count(out, "Hello") != 3 {
		t.Errorf("output = %q, want 3 replacements of TITLE", out)
	}
}

func TestRenderLeavesUnknownBracketsAlone(t *testing.T) {
	content := "[DATE] and [a markdown link](https://example.com) and [UNKNOWN TOKEN]"
	out := Render(content, Tokens{"DATE": "2026-08-29"})
	if !strings.Contains(out, "[a markdown link](https://example.com)") {
		t.Errorf("markdown link mangled: %q", out)
	}
	if !strings.Contains(out, "[UNKNOWN TOKEN]") {
		t.Errorf("unknown token should pass through: %q", out)
	}
}

func TestResolveEmbeddedDefaults(t *testing.T) {
	for _, name := range []string{"vision", "goal", "strategies", "milestones", "execution", "risk-register"} {
		data, err := Resolve("", name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("template %q is empty", name)
		}
	}
}

func TestResolveUnknownName(t *testing.T) {
	if _, err := Resolve("", "no-such-template"); err == nil {
		t.Error("Resolve succeeded for unknown template")
	}
}

func TestResolvePrefersProjectOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "goal.md"), []byte("custom [DATE]"), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := Resolve(dir, "goal")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if string(data) != "custom [DATE]" {
		t.Errorf("data = %q, want project override", data)
	}
}

func TestRenderNamed(t *testing.T) {
	out, err := RenderNamed("", "goal", Tokens{
		"GOAL NUMBER":      "001",
		"GOAL DESCRIPTION": "Improve user onboarding",
		"DATE":             "2026-08-29",
		"BRANCH NAME":      "001-improve-user-onboarding",
	})
	if err != nil {
		t.Fatalf("RenderNamed: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "Goal 001: Improve user onboarding") {
		t.Errorf("rendered goal missing heading: %q", s[:min(len(s), 120)])
	}
	for _, tok := range []string{"[GOAL NUMBER]", "[GOAL DESCRIPTION]", "[DATE]", "[BRANCH NAME]"} {
		if strings.Contains(s, tok) {
			t.Errorf("token %s not replaced", tok)
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
