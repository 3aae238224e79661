package analysis

import (
	"context"
	"fmt"
	"strings"

	"codeguard/internal/model"
	"codeguard/internal/review"
	"codeguard/pkg/llmprovider"
	"codeguard/pkg/log"
)

// Service analyzes one file at a time: a structural syntax gate first, then
// retrieval of similar known smells for context, then a model review whose
// reply is parsed into issues.
type Service struct {
	l         log.Logger
	completer Completer
	retriever Retriever
}

func New(l log.Logger, completer Completer, retriever Retriever) *Service {
	return &Service{
		l:         l,
		completer: completer,
		retriever: retriever,
	}
}

var _ review.FileAnalyzer = (*Service)(nil)

func (s *Service) AnalyzeFile(ctx context.Context, path, code string) ([]model.Issue, error) {
	if issue := checkSyntax(code); issue != nil {
		s.l.Infof(ctx, "analysis.Service.AnalyzeFile: %s failed syntax gate: %s", path, issue.Message)
		issue.Path = path
		return []model.Issue{*issue}, nil
	}

	lines := strings.Count(code, "\n") + 1

	var examples []ContextExample
	if s.retriever != nil {
		var err error
		examples, err = s.retriever.Retrieve(ctx, code, lines)
		if err != nil {
			// Retrieval is an enrichment. Review proceeds without context.
			s.l.Warnf(ctx, "analysis.Service.AnalyzeFile: retrieval for %s failed, continuing without context: %v", path, err)
			examples = nil
		}
	}

	resp, err := s.completer.Complete(ctx, &llmprovider.Request{
		System:      systemPrompt,
		Prompt:      buildUserPrompt(path, code, examples),
		Temperature: 0.1,
		MaxTokens:   2048,
	})
	if err != nil {
		return nil, fmt.Errorf("complete review for %s: %w", path, err)
	}

	issues, err := parseIssues(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("parse review reply for %s: %w", path, err)
	}

	for i := range issues {
		issues[i].Path = path
		issues[i].Severity = model.NormalizeSeverity(string(issues[i].Severity))
	}

	s.l.Infof(ctx, "analysis.Service.AnalyzeFile: %s reviewed by %s, %d issues", path, resp.ProviderName, len(issues))
	return issues, nil
}
