package usecase

import (
	"context"
	"fmt"
	"strings"

	"codeguard/internal/model"
	"codeguard/internal/review"
)

func (uc implUseCase) AnalyzeSnippet(ctx context.Context, input review.SnippetInput) (review.SnippetOutput, error) {
	if strings.TrimSpace(input.Code) == "" {
		return review.SnippetOutput{}, review.ErrEmptySnippet
	}

	filename := input.Filename
	if filename == "" {
		filename = "snippet" + uc.opts.FileExtension
	}

	issues, err := uc.analyzer.AnalyzeFile(ctx, filename, input.Code)
	if err != nil {
		return review.SnippetOutput{}, fmt.Errorf("analyze snippet: %w", err)
	}

	var high, medium, low int
	for _, issue := range issues {
		switch issue.Severity {
		case model.SeverityHigh:
			high++
		case model.SeverityMedium:
			medium++
		default:
			low++
		}
	}

	return review.SnippetOutput{
		Issues:  issues,
		Summary: fmt.Sprintf("%d issue(s): %d high, %d medium, %d low", len(issues), high, medium, low),
	}, nil
}
