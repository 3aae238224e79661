package model

import (
	"fmt"
	"strings"
)

// PullRequestRef identifies the pull request all outbound calls target.
// Equality by value.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

func (r PullRequestRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// FullName returns the owner/repo form used by the GitHub API.
func (r PullRequestRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

// FileStatus is the change status of a file within a PR.
type FileStatus string

const (
	FileAdded    FileStatus = "added"
	FileModified FileStatus = "modified"
	FileRemoved  FileStatus = "removed"
	FileRenamed  FileStatus = "renamed"
)

// ChangedFile is one entry of a PR's changed-files listing.
type ChangedFile struct {
	Path      string
	Status    FileStatus
	Additions int
	Deletions int
	Patch     string
}

// Severity classifies how serious an issue is.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Rank orders severities for sorting, High first.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	}
	return 2
}

// NormalizeSeverity maps free-text model output onto the known levels.
// Unknown values become Low.
func NormalizeSeverity(raw string) Severity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return SeverityHigh
	case "medium":
		return SeverityMedium
	}
	return SeverityLow
}

// Issue is a single finding produced by the analysis capability.
type Issue struct {
	Severity     Severity
	Category     string // free-text classification, e.g. "Security", "Bug"
	Path         string
	Line         int // 0 when the issue is not line-bound
	Message      string
	SuggestedFix string
}

// FileReport holds the aggregated outcome for one analyzed file.
// Err is set when fetching or analyzing the file failed; Issues is then nil.
type FileReport struct {
	Path   string
	Issues []Issue
	Err    string
}

// AnalysisResult is the complete outcome of one orchestration run.
// Immutable after construction; FileReports preserves the changed-files order.
type AnalysisResult struct {
	Ref         PullRequestRef
	HeadSHA     string
	FileReports []FileReport
	FilesCount  int
	HighCount   int
	MediumCount int
	LowCount    int
}

// TotalIssues returns the issue count across all files.
func (r AnalysisResult) TotalIssues() int {
	return r.HighCount + r.MediumCount + r.LowCount
}

// ProcessedKey identifies one unit of analysis work for idempotency.
type ProcessedKey struct {
	Ref     PullRequestRef
	HeadSHA string
}

func (k ProcessedKey) String() string {
	return fmt.Sprintf("%s@%s", k.Ref, k.HeadSHA)
}
