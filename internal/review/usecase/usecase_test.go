package usecase

import (
	"context"
	"errors"
	"testing"

	"codeguard/internal/model"
	"codeguard/internal/review"
	"codeguard/internal/review/repository/memory"
	"codeguard/pkg/github"
)

func testEvent(sha string) model.WebhookEvent {
	return model.WebhookEvent{
		Action:  model.ActionOpened,
		Repo:    model.PullRequestRef{Owner: "octo", Repo: "demo", Number: 42},
		HeadSHA: sha,
		State:   "open",
		Title:   "Add feature",
		Author:  "dev",
	}
}

func newTestUseCase(git review.GitClient, analyzer review.FileAnalyzer) review.UseCase {
	return New(mockLogger{}, git, analyzer, mockRenderer{}, memory.New(), Options{
		FileExtension: ".py",
		MaxFiles:      10,
	})
}

func TestDispatch(t *testing.T) {
	t.Run("First Delivery Accepted", func(t *testing.T) {
		uc := newTestUseCase(&mockGitClient{}, &mockAnalyzer{})
		out := uc.Dispatch(context.Background(), testEvent("abc123"))
		if !out.Accepted {
			t.Fatalf("expected accepted, got reason %q", out.Reason)
		}
	})

	t.Run("Duplicate Delivery Ignored", func(t *testing.T) {
		uc := newTestUseCase(&mockGitClient{}, &mockAnalyzer{})
		event := testEvent("abc123")

		if out := uc.Dispatch(context.Background(), event); !out.Accepted {
			t.Fatal("first delivery should be accepted")
		}
		out := uc.Dispatch(context.Background(), event)
		if out.Accepted {
			t.Error("duplicate delivery should be rejected")
		}
		if out.Reason == "" {
			t.Error("rejection should carry a reason")
		}
	})

	t.Run("New Commit On Same PR Accepted", func(t *testing.T) {
		uc := newTestUseCase(&mockGitClient{}, &mockAnalyzer{})
		uc.Dispatch(context.Background(), testEvent("abc123"))
		if out := uc.Dispatch(context.Background(), testEvent("def456")); !out.Accepted {
			t.Error("a different head commit should be accepted")
		}
	})
}

func TestAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("Filters Non Matching Files", func(t *testing.T) {
		git := &mockGitClient{
			listChangedFilesFn: func(ctx context.Context, ref model.PullRequestRef) ([]model.ChangedFile, error) {
				return []model.ChangedFile{
					{Path: "a.py", Status: model.FileAdded},
					{Path: "b.py", Status: model.FileModified},
					{Path: "img.png", Status: model.FileAdded},
				}, nil
			},
		}
		analyzer := &mockAnalyzer{}
		uc := newTestUseCase(git, analyzer)

		event := testEvent("abc123")
		uc.Dispatch(ctx, event)
		uc.Analyze(ctx, event)

		if analyzer.calls != 2 {
			t.Errorf("expected 2 files analyzed, got %d (%v)", analyzer.calls, analyzer.paths)
		}
		if git.createCalls != 1 {
			t.Errorf("expected 1 comment created, got %d", git.createCalls)
		}
	})

	t.Run("Removed Files Skipped", func(t *testing.T) {
		git := &mockGitClient{
			listChangedFilesFn: func(ctx context.Context, ref model.PullRequestRef) ([]model.ChangedFile, error) {
				return []model.ChangedFile{
					{Path: "gone.py", Status: model.FileRemoved},
					{Path: "kept.py", Status: model.FileModified},
				}, nil
			},
		}
		analyzer := &mockAnalyzer{}
		uc := newTestUseCase(git, analyzer)

		event := testEvent("abc123")
		uc.Dispatch(ctx, event)
		uc.Analyze(ctx, event)

		if analyzer.calls != 1 || analyzer.paths[0] != "kept.py" {
			t.Errorf("expected only kept.py analyzed, got %v", analyzer.paths)
		}
	})

	t.Run("File Cap Applied", func(t *testing.T) {
		var changed []model.ChangedFile
		for i := 0; i < 12; i++ {
			changed = append(changed, model.ChangedFile{
				Path:   string(rune('a'+i)) + ".py",
				Status: model.FileModified,
			})
		}
		git := &mockGitClient{
			listChangedFilesFn: func(ctx context.Context, ref model.PullRequestRef) ([]model.ChangedFile, error) {
				return changed, nil
			},
		}
		analyzer := &mockAnalyzer{}
		uc := newTestUseCase(git, analyzer)

		event := testEvent("abc123")
		uc.Dispatch(ctx, event)
		uc.Analyze(ctx, event)

		if analyzer.calls != 10 {
			t.Errorf("expected 10 files analyzed, got %d", analyzer.calls)
		}
	})

	t.Run("No Matching Files No Comment", func(t *testing.T) {
		git := &mockGitClient{
			listChangedFilesFn: func(ctx context.Context, ref model.PullRequestRef) ([]model.ChangedFile, error) {
				return []model.ChangedFile{{Path: "README.md", Status: model.FileModified}}, nil
			},
		}
		uc := newTestUseCase(git, &mockAnalyzer{})

		event := testEvent("abc123")
		uc.Dispatch(ctx, event)
		uc.Analyze(ctx, event)

		if git.createCalls != 0 || git.updateCalls != 0 {
			t.Error("no comment should be posted when nothing matched the filter")
		}
		// The run still counts as processed.
		if out := uc.Dispatch(ctx, event); out.Accepted {
			t.Error("completed run should reject re-dispatch")
		}
	})

	t.Run("Existing Comment Updated Not Duplicated", func(t *testing.T) {
		git := &mockGitClient{
			listChangedFilesFn: func(ctx context.Context, ref model.PullRequestRef) ([]model.ChangedFile, error) {
				return []model.ChangedFile{{Path: "a.py", Status: model.FileModified}}, nil
			},
			listCommentsFn: func(ctx context.Context, ref model.PullRequestRef) ([]github.Comment, error) {
				return []github.Comment{
					{ID: 10, Body: "unrelated human comment"},
					{ID: 11, Body: review.Marker + "\nold report"},
				}, nil
			},
		}
		uc := newTestUseCase(git, &mockAnalyzer{})

		event := testEvent("abc123")
		uc.Dispatch(ctx, event)
		uc.Analyze(ctx, event)

		if git.updateCalls != 1 {
			t.Errorf("expected 1 update, got %d", git.updateCalls)
		}
		if git.createCalls != 0 {
			t.Errorf("expected no create, got %d", git.createCalls)
		}
	})

	t.Run("File Error Does Not Abort Run", func(t *testing.T) {
		git := &mockGitClient{
			listChangedFilesFn: func(ctx context.Context, ref model.PullRequestRef) ([]model.ChangedFile, error) {
				return []model.ChangedFile{
					{Path: "bad.py", Status: model.FileModified},
					{Path: "good.py", Status: model.FileModified},
				}, nil
			},
			getFileContentFn: func(ctx context.Context, ref model.PullRequestRef, path, commitSHA string) (string, error) {
				if path == "bad.py" {
					return "", errors.New("boom")
				}
				return "x = 1\n", nil
			},
		}
		analyzer := &mockAnalyzer{}
		uc := newTestUseCase(git, analyzer)

		event := testEvent("abc123")
		uc.Dispatch(ctx, event)
		uc.Analyze(ctx, event)

		if analyzer.calls != 1 || analyzer.paths[0] != "good.py" {
			t.Errorf("expected only good.py analyzed, got %v", analyzer.paths)
		}
		if git.createCalls != 1 {
			t.Errorf("expected report still published, got %d creates", git.createCalls)
		}
	})

	t.Run("Closed PR Skipped", func(t *testing.T) {
		git := &mockGitClient{
			getPullRequestFn: func(ctx context.Context, ref model.PullRequestRef) (*github.PullRequest, error) {
				return &github.PullRequest{Number: ref.Number, State: "closed"}, nil
			},
		}
		analyzer := &mockAnalyzer{}
		uc := newTestUseCase(git, analyzer)

		event := testEvent("abc123")
		uc.Dispatch(ctx, event)
		uc.Analyze(ctx, event)

		if analyzer.calls != 0 {
			t.Error("closed PR should not be analyzed")
		}
		if git.createCalls != 0 {
			t.Error("closed PR should get no comment")
		}
	})

	t.Run("Stale Head Skips Publish", func(t *testing.T) {
		git := &mockGitClient{
			listChangedFilesFn: func(ctx context.Context, ref model.PullRequestRef) ([]model.ChangedFile, error) {
				return []model.ChangedFile{{Path: "a.py", Status: model.FileModified}}, nil
			},
		}
		uc := newTestUseCase(git, &mockAnalyzer{})

		old := testEvent("abc123")
		uc.Dispatch(ctx, old)
		// A newer commit lands before the old run publishes.
		uc.Dispatch(ctx, testEvent("def456"))
		uc.Analyze(ctx, old)

		if git.createCalls != 0 || git.updateCalls != 0 {
			t.Error("stale run should not publish its report")
		}
	})

	t.Run("Rejected Redelivery Does Not Clobber Latest Head", func(t *testing.T) {
		git := &mockGitClient{
			listChangedFilesFn: func(ctx context.Context, ref model.PullRequestRef) ([]model.ChangedFile, error) {
				return []model.ChangedFile{{Path: "a.py", Status: model.FileModified}}, nil
			},
		}
		uc := newTestUseCase(git, &mockAnalyzer{})

		old := testEvent("aaa111")
		newer := testEvent("bbb222")

		uc.Dispatch(ctx, old)
		uc.Analyze(ctx, old)
		uc.Dispatch(ctx, newer)
		// GitHub re-delivers the older commit while the newer run is pending.
		if out := uc.Dispatch(ctx, old); out.Accepted {
			t.Fatal("re-delivered processed commit should be rejected")
		}
		uc.Analyze(ctx, newer)

		if got := git.createCalls + git.updateCalls; got != 2 {
			t.Errorf("expected both runs to publish, got %d publishes", got)
		}
	})

	t.Run("Transient List Failure Allows Retry", func(t *testing.T) {
		fail := true
		git := &mockGitClient{
			listChangedFilesFn: func(ctx context.Context, ref model.PullRequestRef) ([]model.ChangedFile, error) {
				if fail {
					return nil, &github.APIError{StatusCode: 503, Message: "unavailable", Transient: true}
				}
				return []model.ChangedFile{{Path: "a.py", Status: model.FileModified}}, nil
			},
		}
		uc := newTestUseCase(git, &mockAnalyzer{})

		event := testEvent("abc123")
		uc.Dispatch(ctx, event)
		uc.Analyze(ctx, event)

		// A re-delivery after the transient failure should be accepted.
		if out := uc.Dispatch(ctx, event); !out.Accepted {
			t.Fatal("re-delivery after transient failure should be accepted")
		}
		fail = false
		uc.Analyze(ctx, event)
		if git.createCalls != 1 {
			t.Errorf("expected report published on retry, got %d creates", git.createCalls)
		}
	})
}

func TestAnalyzeSnippet(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty Snippet Rejected", func(t *testing.T) {
		uc := newTestUseCase(&mockGitClient{}, &mockAnalyzer{})
		if _, err := uc.AnalyzeSnippet(ctx, review.SnippetInput{Code: "  \n"}); !errors.Is(err, review.ErrEmptySnippet) {
			t.Errorf("expected ErrEmptySnippet, got %v", err)
		}
	})

	t.Run("Issues Counted In Summary", func(t *testing.T) {
		analyzer := &mockAnalyzer{
			analyzeFileFn: func(ctx context.Context, path, code string) ([]model.Issue, error) {
				return []model.Issue{
					{Severity: model.SeverityHigh, Message: "eval on user input"},
					{Severity: model.SeverityLow, Message: "unused import"},
				}, nil
			},
		}
		uc := newTestUseCase(&mockGitClient{}, analyzer)

		out, err := uc.AnalyzeSnippet(ctx, review.SnippetInput{Code: "eval(x)\n"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Issues) != 2 {
			t.Errorf("expected 2 issues, got %d", len(out.Issues))
		}
		if out.Summary != "2 issue(s): 1 high, 0 medium, 1 low" {
			t.Errorf("unexpected summary: %q", out.Summary)
		}
	})
}
