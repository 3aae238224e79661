package analysis

import (
	"testing"

	"codeguard/internal/model"
)

func TestParseIssues(t *testing.T) {
	t.Run("Bare JSON", func(t *testing.T) {
		issues, err := parseIssues(`{"issues": [{"type": "bug", "severity": "Medium", "explanation": "off by one"}]}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(issues) != 1 || issues[0].Category != "bug" {
			t.Errorf("unexpected issues: %+v", issues)
		}
	})

	t.Run("Fenced JSON", func(t *testing.T) {
		issues, err := parseIssues("```json\n{\"issues\": [{\"type\": \"smell\", \"severity\": \"Low\"}]}\n```")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(issues) != 1 {
			t.Errorf("expected 1 issue, got %d", len(issues))
		}
	})

	t.Run("JSON Embedded In Prose", func(t *testing.T) {
		text := `Here is my review.
{"issues": [{"type": "bug", "severity": "High", "explanation": "crash"}]}
Hope that helps.`
		issues, err := parseIssues(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(issues) != 1 || issues[0].Severity != model.Severity("High") {
			t.Errorf("unexpected issues: %+v", issues)
		}
	})

	t.Run("Prefers Object With Most Issues", func(t *testing.T) {
		text := `{"issues": []} and later the real one: {"issues": [{"type": "a"}, {"type": "b"}]}`
		issues, err := parseIssues(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(issues) != 2 {
			t.Errorf("expected 2 issues, got %d", len(issues))
		}
	})

	t.Run("Empty Issues Array", func(t *testing.T) {
		issues, err := parseIssues(`{"issues": []}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(issues) != 0 {
			t.Errorf("expected no issues, got %d", len(issues))
		}
	})

	t.Run("No JSON At All", func(t *testing.T) {
		if _, err := parseIssues("The code looks fine to me."); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("Braces Inside Strings", func(t *testing.T) {
		issues, err := parseIssues(`{"issues": [{"type": "bug", "explanation": "dict literal {} misused"}]}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(issues) != 1 {
			t.Errorf("expected 1 issue, got %d", len(issues))
		}
	})
}
