package formatter

import (
	"fmt"
	"sort"
	"strings"

	"codeguard/internal/model"
	"codeguard/internal/review"
)

const (
	botName = "CodeGuard Bot"

	maxMessageLen = 100
	maxFixLen     = 150
)

// Service renders analysis results as GitHub Markdown. The output always
// starts with the report marker so later runs can find and update the
// comment instead of posting a new one.
type Service struct{}

func New() *Service {
	return &Service{}
}

var _ review.Renderer = (*Service)(nil)

func (s *Service) RenderReport(result model.AnalysisResult) string {
	var b strings.Builder

	b.WriteString(review.Marker + "\n")
	b.WriteString(fmt.Sprintf("## 🛡️ %s Analysis Report\n\n", botName))

	total := result.TotalIssues()
	b.WriteString(fmt.Sprintf("**Analyzed:** %d %s | **Found:** %d %s\n\n",
		result.FilesCount, plural(result.FilesCount, "file"),
		total, plural(total, "issue")))

	if total == 0 && !hasErrors(result.FileReports) {
		b.WriteString("✅ **No issues detected!** Code looks clean.\n")
		return b.String()
	}

	if total > 0 {
		b.WriteString("### Summary\n")
		writeSeverityLine(&b, "🔴", model.SeverityHigh, result.HighCount)
		writeSeverityLine(&b, "🟡", model.SeverityMedium, result.MediumCount)
		writeSeverityLine(&b, "🔵", model.SeverityLow, result.LowCount)
		b.WriteString("\n---\n\n")
	}

	b.WriteString("### Issues by File\n\n")
	for _, report := range result.FileReports {
		writeFileSection(&b, report)
	}

	return b.String()
}

func writeSeverityLine(b *strings.Builder, emoji string, sev model.Severity, count int) {
	if count == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("- %s **%s:** %d %s\n", emoji, sev, count, plural(count, "issue")))
}

func writeFileSection(b *strings.Builder, report model.FileReport) {
	if report.Err != "" {
		b.WriteString(fmt.Sprintf("#### `%s`\n\n⚠️ %s\n\n", report.Path, report.Err))
		return
	}
	if len(report.Issues) == 0 {
		return
	}

	issues := make([]model.Issue, len(report.Issues))
	copy(issues, report.Issues)
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Severity.Rank() != issues[j].Severity.Rank() {
			return issues[i].Severity.Rank() < issues[j].Severity.Rank()
		}
		return issues[i].Category < issues[j].Category
	})

	b.WriteString(fmt.Sprintf("#### `%s` (%d %s)\n\n", report.Path, len(issues), plural(len(issues), "issue")))
	b.WriteString("| Severity | Type | Issue | Suggested Fix |\n")
	b.WriteString("|:---|:---|:---|:---|\n")
	for _, issue := range issues {
		b.WriteString(fmt.Sprintf("| %s %s | `%s` | %s | %s |\n",
			severityEmoji(issue.Severity), issue.Severity,
			escapeCell(issue.Category),
			escapeCell(truncate(issue.Message, maxMessageLen)),
			escapeCell(truncate(issue.SuggestedFix, maxFixLen))))
	}
	b.WriteString("\n")
}

func severityEmoji(sev model.Severity) string {
	switch sev {
	case model.SeverityHigh:
		return "🔴"
	case model.SeverityMedium:
		return "🟡"
	case model.SeverityLow:
		return "🔵"
	default:
		return "⚪"
	}
}

// truncate counts runes so a cut never splits a multi-byte character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// escapeCell keeps multi-line or pipe-bearing text from breaking the table.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func hasErrors(reports []model.FileReport) bool {
	for _, r := range reports {
		if r.Err != "" {
			return true
		}
	}
	return false
}
