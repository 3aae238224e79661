package usecase

import (
	"context"
	"fmt"
	"strings"

	"codeguard/internal/model"
	"codeguard/internal/review"
)

// publish renders the report and upserts the single bot comment: the comment
// carrying the marker is updated in place, otherwise a new one is created.
func (uc implUseCase) publish(ctx context.Context, ref model.PullRequestRef, result model.AnalysisResult) error {
	body := uc.renderer.RenderReport(result)

	existing, err := uc.findReportComment(ctx, ref)
	if err != nil {
		return err
	}

	if existing != nil {
		if _, err := uc.git.UpdateComment(ctx, ref, existing.ID, body); err != nil {
			return fmt.Errorf("update comment %d: %w", existing.ID, err)
		}
		uc.l.Infof(ctx, "review.usecase.publish: updated comment %d on %s", existing.ID, ref.String())
		return nil
	}

	created, err := uc.git.CreateComment(ctx, ref, body)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	uc.l.Infof(ctx, "review.usecase.publish: created comment %d on %s", created.ID, ref.String())
	return nil
}

func (uc implUseCase) findReportComment(ctx context.Context, ref model.PullRequestRef) (*githubComment, error) {
	comments, err := uc.git.ListComments(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	for i := range comments {
		if strings.Contains(comments[i].Body, review.Marker) {
			return &githubComment{ID: comments[i].ID}, nil
		}
	}
	return nil, nil
}

type githubComment struct {
	ID int64
}
