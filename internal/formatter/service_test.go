package formatter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"codeguard/internal/model"
	"codeguard/internal/review"
)

func testResult(reports ...model.FileReport) model.AnalysisResult {
	result := model.AnalysisResult{
		Ref:         model.PullRequestRef{Owner: "octo", Repo: "demo", Number: 42},
		HeadSHA:     "abc123",
		FilesCount:  len(reports),
		FileReports: reports,
	}
	for _, r := range reports {
		for _, issue := range r.Issues {
			switch issue.Severity {
			case model.SeverityHigh:
				result.HighCount++
			case model.SeverityMedium:
				result.MediumCount++
			default:
				result.LowCount++
			}
		}
	}
	return result
}

func TestRenderReport(t *testing.T) {
	s := New()

	t.Run("Marker Is First Line", func(t *testing.T) {
		body := s.RenderReport(testResult(model.FileReport{Path: "a.py"}))
		if !strings.HasPrefix(body, review.Marker+"\n") {
			t.Errorf("report should start with the marker, got %q", body[:40])
		}
	})

	t.Run("Clean Report", func(t *testing.T) {
		body := s.RenderReport(testResult(model.FileReport{Path: "a.py"}))
		if !strings.Contains(body, "No issues detected") {
			t.Error("zero-issue report should say the code is clean")
		}
		if strings.Contains(body, "Issues by File") {
			t.Error("clean report should not have a file section")
		}
	})

	t.Run("Severity Sections And Tables", func(t *testing.T) {
		body := s.RenderReport(testResult(model.FileReport{
			Path: "auth.py",
			Issues: []model.Issue{
				{Severity: model.SeverityLow, Category: "unused_import", Message: "os is never used", SuggestedFix: "remove the import"},
				{Severity: model.SeverityHigh, Category: "sql_injection", Message: "query built with string concat", SuggestedFix: "use parameterized queries"},
			},
		}))

		for _, want := range []string{
			"**High:** 1 issue",
			"**Low:** 1 issue",
			"#### `auth.py` (2 issues)",
			"| Severity | Type | Issue | Suggested Fix |",
			"`sql_injection`",
		} {
			if !strings.Contains(body, want) {
				t.Errorf("report missing %q", want)
			}
		}

		// High severity rows sort before low.
		if strings.Index(body, "sql_injection") > strings.Index(body, "unused_import") {
			t.Error("high severity issue should be listed first")
		}
	})

	t.Run("Long Text Truncated", func(t *testing.T) {
		body := s.RenderReport(testResult(model.FileReport{
			Path: "a.py",
			Issues: []model.Issue{{
				Severity: model.SeverityMedium,
				Category: "complexity",
				Message:  strings.Repeat("m", 200),
				SuggestedFix: strings.Repeat("f", 300),
			}},
		}))
		if strings.Contains(body, strings.Repeat("m", 101)) {
			t.Error("long message should be truncated")
		}
		if !strings.Contains(body, "...") {
			t.Error("truncated text should end with ellipsis")
		}
	})

	t.Run("Multi Byte Text Truncated On Rune Boundary", func(t *testing.T) {
		body := s.RenderReport(testResult(model.FileReport{
			Path: "a.py",
			Issues: []model.Issue{{
				Severity:     model.SeverityMedium,
				Category:     "naming",
				Message:      strings.Repeat("é", 200),
				SuggestedFix: strings.Repeat("変数名を直す。", 60),
			}},
		}))
		if !utf8.ValidString(body) {
			t.Error("truncation should never produce invalid UTF-8")
		}
	})

	t.Run("File Error Noted", func(t *testing.T) {
		body := s.RenderReport(testResult(model.FileReport{
			Path: "broken.py",
			Err:  "could not fetch file: 404",
		}))
		if !strings.Contains(body, "could not fetch file") {
			t.Error("file-level error should appear in the report")
		}
	})

	t.Run("Pipes Escaped In Cells", func(t *testing.T) {
		body := s.RenderReport(testResult(model.FileReport{
			Path: "a.py",
			Issues: []model.Issue{{
				Severity: model.SeverityLow,
				Category: "style",
				Message:  "use a | b here",
			}},
		}))
		if !strings.Contains(body, `a \| b`) {
			t.Error("pipe characters in cells should be escaped")
		}
	})
}
