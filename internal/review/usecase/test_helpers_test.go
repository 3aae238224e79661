package usecase

import (
	"context"

	"codeguard/internal/model"
	"codeguard/internal/review"
	"codeguard/pkg/github"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, args ...any)                    {}
func (mockLogger) Debugf(ctx context.Context, template string, args ...any)  {}
func (mockLogger) Info(ctx context.Context, args ...any)                     {}
func (mockLogger) Infof(ctx context.Context, template string, args ...any)   {}
func (mockLogger) Warn(ctx context.Context, args ...any)                     {}
func (mockLogger) Warnf(ctx context.Context, template string, args ...any)   {}
func (mockLogger) Error(ctx context.Context, args ...any)                    {}
func (mockLogger) Errorf(ctx context.Context, template string, args ...any)  {}
func (mockLogger) Fatal(ctx context.Context, args ...any)                    {}
func (mockLogger) Fatalf(ctx context.Context, template string, args ...any)  {}
func (mockLogger) DPanic(ctx context.Context, args ...any)                   {}
func (mockLogger) DPanicf(ctx context.Context, template string, args ...any) {}
func (mockLogger) Panic(ctx context.Context, args ...any)                    {}
func (mockLogger) Panicf(ctx context.Context, template string, args ...any)  {}

type mockGitClient struct {
	getPullRequestFn   func(ctx context.Context, ref model.PullRequestRef) (*github.PullRequest, error)
	listChangedFilesFn func(ctx context.Context, ref model.PullRequestRef) ([]model.ChangedFile, error)
	getFileContentFn   func(ctx context.Context, ref model.PullRequestRef, path, commitSHA string) (string, error)
	listCommentsFn     func(ctx context.Context, ref model.PullRequestRef) ([]github.Comment, error)
	createCommentFn    func(ctx context.Context, ref model.PullRequestRef, body string) (*github.Comment, error)
	updateCommentFn    func(ctx context.Context, ref model.PullRequestRef, commentID int64, body string) (*github.Comment, error)

	createCalls int
	updateCalls int
}

func (m *mockGitClient) GetPullRequest(ctx context.Context, ref model.PullRequestRef) (*github.PullRequest, error) {
	if m.getPullRequestFn != nil {
		return m.getPullRequestFn(ctx, ref)
	}
	return &github.PullRequest{Number: ref.Number, State: "open"}, nil
}

func (m *mockGitClient) ListChangedFiles(ctx context.Context, ref model.PullRequestRef) ([]model.ChangedFile, error) {
	if m.listChangedFilesFn != nil {
		return m.listChangedFilesFn(ctx, ref)
	}
	return nil, nil
}

func (m *mockGitClient) GetFileContent(ctx context.Context, ref model.PullRequestRef, path, commitSHA string) (string, error) {
	if m.getFileContentFn != nil {
		return m.getFileContentFn(ctx, ref, path, commitSHA)
	}
	return "print('ok')\n", nil
}

func (m *mockGitClient) ListComments(ctx context.Context, ref model.PullRequestRef) ([]github.Comment, error) {
	if m.listCommentsFn != nil {
		return m.listCommentsFn(ctx, ref)
	}
	return nil, nil
}

func (m *mockGitClient) CreateComment(ctx context.Context, ref model.PullRequestRef, body string) (*github.Comment, error) {
	m.createCalls++
	if m.createCommentFn != nil {
		return m.createCommentFn(ctx, ref, body)
	}
	return &github.Comment{ID: 1, Body: body}, nil
}

func (m *mockGitClient) UpdateComment(ctx context.Context, ref model.PullRequestRef, commentID int64, body string) (*github.Comment, error) {
	m.updateCalls++
	if m.updateCommentFn != nil {
		return m.updateCommentFn(ctx, ref, commentID, body)
	}
	return &github.Comment{ID: commentID, Body: body}, nil
}

type mockAnalyzer struct {
	analyzeFileFn func(ctx context.Context, path, code string) ([]model.Issue, error)
	calls         int
	paths         []string
}

func (m *mockAnalyzer) AnalyzeFile(ctx context.Context, path, code string) ([]model.Issue, error) {
	m.calls++
	m.paths = append(m.paths, path)
	if m.analyzeFileFn != nil {
		return m.analyzeFileFn(ctx, path, code)
	}
	return nil, nil
}

type mockRenderer struct{}

func (mockRenderer) RenderReport(result model.AnalysisResult) string {
	return review.Marker + "\nmock report"
}
