package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"codeguard/internal/model"
	"codeguard/internal/review"
	"codeguard/pkg/github"
)

func (uc implUseCase) Dispatch(ctx context.Context, event model.WebhookEvent) review.DispatchOutput {
	key := model.ProcessedKey{Ref: event.Repo, HeadSHA: event.HeadSHA}

	if !uc.tracker.TryBegin(key) {
		uc.l.Infof(ctx, "review.usecase.Dispatch: duplicate delivery for %s, ignored", key.String())
		return review.DispatchOutput{Accepted: false, Reason: "already processed or in flight"}
	}

	// Record the newest head only for accepted deliveries, so an older
	// in-flight run for the same PR knows it is stale by publish time. A
	// rejected duplicate must not touch the record: GitHub re-delivers old
	// events, and letting one through here would clobber a newer head.
	uc.tracker.SetLatestHead(event.Repo, event.HeadSHA)

	return review.DispatchOutput{Accepted: true}
}

// Analyze runs the full pipeline for a dispatched event. The idempotency key
// must already be claimed via Dispatch. It never returns an error: failures
// are logged and reflected in the tracker state.
func (uc implUseCase) Analyze(ctx context.Context, event model.WebhookEvent) {
	key := model.ProcessedKey{Ref: event.Repo, HeadSHA: event.HeadSHA}
	runID := uuid.NewString()[:8]

	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "review.usecase.Analyze: run %s panic processing %s: %v", runID, key.String(), r)
			uc.tracker.Release(key)
		}
	}()

	uc.l.Infof(ctx, "review.usecase.Analyze: run %s started for %s", runID, key.String())

	// The PR may have closed or merged between delivery and this run.
	pr, err := uc.git.GetPullRequest(ctx, event.Repo)
	if err != nil {
		uc.l.Errorf(ctx, "review.usecase.Analyze: fetch %s: %v", event.Repo.String(), err)
		uc.release(key, err)
		return
	}
	if pr.State != "open" {
		uc.l.Infof(ctx, "review.usecase.Analyze: %s is %s, skipping", event.Repo.String(), pr.State)
		uc.tracker.Complete(key)
		return
	}

	changed, err := uc.git.ListChangedFiles(ctx, event.Repo)
	if err != nil {
		uc.l.Errorf(ctx, "review.usecase.Analyze: list changed files for %s: %v", event.Repo.String(), err)
		uc.release(key, err)
		return
	}

	files := uc.filterFiles(changed)
	if len(files) == 0 {
		uc.l.Infof(ctx, "review.usecase.Analyze: %s has no %s files to analyze", event.Repo.String(), uc.opts.FileExtension)
		uc.tracker.Complete(key)
		return
	}

	result := model.AnalysisResult{
		Ref:        event.Repo,
		HeadSHA:    event.HeadSHA,
		FilesCount: len(files),
	}

	for _, f := range files {
		report := uc.analyzeFile(ctx, event, f)
		result.FileReports = append(result.FileReports, report)
		for _, issue := range report.Issues {
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

	// A newer commit may have been pushed while this run was analyzing. Its
	// run owns the comment now; publishing here would overwrite fresher
	// results with stale ones.
	if latest, ok := uc.tracker.LatestHead(event.Repo); ok && latest != event.HeadSHA {
		uc.l.Infof(ctx, "review.usecase.Analyze: %s head moved %s -> %s, skipping publish", event.Repo.String(), event.HeadSHA, latest)
		uc.tracker.Complete(key)
		return
	}

	if err := uc.publish(ctx, event.Repo, result); err != nil {
		uc.l.Errorf(ctx, "review.usecase.Analyze: publish report for %s: %v", key.String(), err)
		uc.release(key, err)
		return
	}

	uc.tracker.Complete(key)
	uc.l.Infof(ctx, "review.usecase.Analyze: run %s done, %d files, %d issues", runID, len(files), result.TotalIssues())
}

// release decides whether a failed run may be retried by a re-delivery.
// Transient failures give the key back; permanent ones mark it done so the
// same bad input is not retried forever.
func (uc implUseCase) release(key model.ProcessedKey, err error) {
	if github.IsTransient(err) {
		uc.tracker.Release(key)
		return
	}
	uc.tracker.Complete(key)
}

func (uc implUseCase) filterFiles(changed []model.ChangedFile) []model.ChangedFile {
	var files []model.ChangedFile
	for _, f := range changed {
		switch f.Status {
		case model.FileAdded, model.FileModified, model.FileRenamed:
		default:
			continue
		}
		if !strings.HasSuffix(f.Path, uc.opts.FileExtension) {
			continue
		}
		files = append(files, f)
		if len(files) == uc.opts.MaxFiles {
			break
		}
	}
	return files
}

func (uc implUseCase) analyzeFile(ctx context.Context, event model.WebhookEvent, f model.ChangedFile) model.FileReport {
	content, err := uc.git.GetFileContent(ctx, event.Repo, f.Path, event.HeadSHA)
	if err != nil {
		uc.l.Warnf(ctx, "review.usecase.Analyze: fetch %s@%s: %v", f.Path, event.HeadSHA, err)
		return model.FileReport{Path: f.Path, Err: fmt.Sprintf("could not fetch file: %v", err)}
	}
	if strings.TrimSpace(content) == "" {
		return model.FileReport{Path: f.Path, Err: "file is empty"}
	}

	issues, err := uc.analyzer.AnalyzeFile(ctx, f.Path, content)
	if err != nil {
		uc.l.Warnf(ctx, "review.usecase.Analyze: analyze %s: %v", f.Path, err)
		return model.FileReport{Path: f.Path, Err: fmt.Sprintf("analysis failed: %v", err)}
	}

	return model.FileReport{Path: f.Path, Issues: issues}
}
