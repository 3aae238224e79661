package http

import (
	"codeguard/internal/model"
	"codeguard/internal/review"
)

type analyzeReq struct {
	Filename string `json:"filename"`
	Code     string `json:"code" binding:"required"`
}

func (r analyzeReq) toInput() review.SnippetInput {
	return review.SnippetInput{
		Filename: r.Filename,
		Code:     r.Code,
	}
}

type issueItem struct {
	Severity     string `json:"severity"`
	Type         string `json:"type"`
	Line         int    `json:"line,omitempty"`
	Explanation  string `json:"explanation"`
	SuggestedFix string `json:"suggested_fix,omitempty"`
}

type analyzeResp struct {
	Issues  []issueItem `json:"issues"`
	Summary string      `json:"summary"`
}

func newAnalyzeResp(output review.SnippetOutput) analyzeResp {
	items := make([]issueItem, 0, len(output.Issues))
	for _, issue := range output.Issues {
		items = append(items, newIssueItem(issue))
	}
	return analyzeResp{Issues: items, Summary: output.Summary}
}

func newIssueItem(issue model.Issue) issueItem {
	return issueItem{
		Severity:     string(issue.Severity),
		Type:         issue.Category,
		Line:         issue.Line,
		Explanation:  issue.Message,
		SuggestedFix: issue.SuggestedFix,
	}
}
