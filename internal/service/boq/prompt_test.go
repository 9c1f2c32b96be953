package boq

import (
	"strings"
	"testing"
	"unicode/utf8"

	"boqgen/internal/models"
)

func TestBuildPrompt_Deterministic(t *testing.T) {
	a := BuildPrompt("some plan text", "plan.pdf")
	b := BuildPrompt("some plan text", "plan.pdf")
	if a != b {
		t.Fatal("BuildPrompt is not deterministic for identical inputs")
	}
}

func TestBuildPrompt_EmbedsFilenameAndText(t *testing.T) {
	prompt := BuildPrompt("excavation 125 m3", "tower-block.pdf")
	if !strings.Contains(prompt, "tower-block.pdf") {
		t.Error("prompt does not mention the filename")
	}
	if !strings.Contains(prompt, "excavation 125 m3") {
		t.Error("prompt does not embed the document text")
	}
}

func TestBuildPrompt_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", maxPromptChars+1000)
	prompt := BuildPrompt(long, "big.pdf")

	if strings.Contains(prompt, strings.Repeat("a", maxPromptChars+1)) {
		t.Error("prompt contains more than maxPromptChars of document text")
	}
	if !strings.Contains(prompt, strings.Repeat("a", maxPromptChars)) {
		t.Error("prompt truncated below maxPromptChars")
	}
}

func TestBuildPrompt_TruncationKeepsValidUTF8(t *testing.T) {
	text := strings.Repeat("a", maxPromptChars-1) + "³³³³"
	prompt := BuildPrompt(text, "units.pdf")

	if !utf8.ValidString(prompt) {
		t.Fatal("prompt contains invalid UTF-8 after truncation")
	}
	if !strings.Contains(prompt, "³") {
		t.Error("character within the budget was dropped")
	}
	if strings.Contains(prompt, "³³") {
		t.Error("prompt embeds more than maxPromptChars characters")
	}
}

func TestTruncateChars(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"abcdef", 10, "abcdef"},
		{"abcdef", 3, "abc"},
		{"m²m³m²", 3, "m²m"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := truncateChars(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncateChars(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestSystemPrompt_DeclaresContract(t *testing.T) {
	for _, want := range []string{
		"project_name", "item_no", "description", "unit", "quantity",
		"category", "total_items", "categories", "JSON object only",
	} {
		if !strings.Contains(SystemPrompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
	for _, category := range models.KnownCategories {
		if !strings.Contains(SystemPrompt, category) {
			t.Errorf("system prompt missing category %q", category)
		}
	}
}
