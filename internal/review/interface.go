package review

import (
	"context"

	"codeguard/internal/model"
	"codeguard/pkg/github"
)

// UseCase drives pull request analysis runs.
type UseCase interface {
	// Dispatch claims the (PR, head commit) idempotency key for the event.
	// Duplicate or in-flight deliveries are rejected without side effects.
	Dispatch(ctx context.Context, event model.WebhookEvent) DispatchOutput

	// Analyze runs one full orchestration for a dispatched event. It always
	// terminates and never panics past its own boundary.
	Analyze(ctx context.Context, event model.WebhookEvent)

	// AnalyzeSnippet runs the analysis capability on an ad-hoc snippet,
	// without any GitHub interaction.
	AnalyzeSnippet(ctx context.Context, input SnippetInput) (SnippetOutput, error)
}

// GitClient is the outbound API surface the review domain consumes.
// Implemented by pkg/github; every call is paced and classified as
// transient or permanent on failure.
type GitClient interface {
	GetPullRequest(ctx context.Context, ref model.PullRequestRef) (*github.PullRequest, error)
	ListChangedFiles(ctx context.Context, ref model.PullRequestRef) ([]model.ChangedFile, error)
	GetFileContent(ctx context.Context, ref model.PullRequestRef, path, commitSHA string) (string, error)
	ListComments(ctx context.Context, ref model.PullRequestRef) ([]github.Comment, error)
	CreateComment(ctx context.Context, ref model.PullRequestRef, body string) (*github.Comment, error)
	UpdateComment(ctx context.Context, ref model.PullRequestRef, commentID int64, body string) (*github.Comment, error)
}

// Renderer turns an aggregated result into the Markdown comment body.
type Renderer interface {
	RenderReport(result model.AnalysisResult) string
}

// FileAnalyzer inspects a single file and reports the issues it finds.
// Implemented by internal/analysis.
type FileAnalyzer interface {
	AnalyzeFile(ctx context.Context, path, code string) ([]model.Issue, error)
}
