package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"codeguard/internal/model"
)

const systemPrompt = `You are an expert code reviewer. Analyze the provided code thoroughly and find all issues: security problems (hardcoded secrets, SQL injection, command injection), bugs, code smells, and performance problems.

Respond with ONLY a JSON object in this exact format, no prose and no code fences:
{"issues": [{"type": "...", "severity": "High|Medium|Low", "explanation": "...", "suggested_fix": "...", "line": 0}]}

If the code is clean, respond with {"issues": []}.`

func buildUserPrompt(path, code string, examples []ContextExample) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Review this code from `%s`:\n\n```\n%s\n```\n", path, code)

	if len(examples) > 0 {
		b.WriteString("\nSimilar past issues found in this codebase:\n")
		for _, ex := range examples {
			fmt.Fprintf(&b, "- %s (fix: %s)\n", ex.Smell, ex.Fix)
		}
	}

	b.WriteString("\nOutput ONLY the JSON object.")
	return b.String()
}

// wireIssue is the shape the model is asked to emit.
type wireIssue struct {
	Type         string `json:"type"`
	Severity     string `json:"severity"`
	Explanation  string `json:"explanation"`
	SuggestedFix string `json:"suggested_fix"`
	Line         int    `json:"line"`
}

type wireReply struct {
	Issues []wireIssue `json:"issues"`
}

// parseIssues extracts the issue array from a model reply. Replies are
// supposed to be bare JSON but models wrap them in fences or prose often
// enough that the parser scans for an embedded object when the direct
// unmarshal fails.
func parseIssues(text string) ([]model.Issue, error) {
	text = stripFences(strings.TrimSpace(text))

	var reply wireReply
	if err := json.Unmarshal([]byte(text), &reply); err == nil {
		return toIssues(reply), nil
	}

	best, ok := extractEmbedded(text)
	if !ok {
		return nil, fmt.Errorf("no issues object in reply (%d bytes)", len(text))
	}
	return toIssues(best), nil
}

// extractEmbedded scans for balanced JSON objects containing an "issues" key
// and returns the one reporting the most issues. Models sometimes emit an
// empty object first and the real one later.
func extractEmbedded(text string) (wireReply, bool) {
	var best wireReply
	found := false

	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}
		end := matchBrace(text, start)
		if end < 0 {
			continue
		}
		candidate := text[start : end+1]
		if !strings.Contains(candidate, `"issues"`) {
			continue
		}
		var reply wireReply
		if err := json.Unmarshal([]byte(candidate), &reply); err != nil {
			continue
		}
		if !found || len(reply.Issues) > len(best.Issues) {
			best = reply
			found = true
		}
		start = end
	}

	return best, found
}

// matchBrace returns the index of the brace closing the one at start, or -1.
// String literals are respected so braces inside them do not count.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func toIssues(reply wireReply) []model.Issue {
	issues := make([]model.Issue, 0, len(reply.Issues))
	for _, w := range reply.Issues {
		issues = append(issues, model.Issue{
			Severity:     model.Severity(w.Severity),
			Category:     w.Type,
			Line:         w.Line,
			Message:      w.Explanation,
			SuggestedFix: w.SuggestedFix,
		})
	}
	return issues
}
