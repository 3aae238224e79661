package webhook

import (
	"codeguard/internal/review"
	pkgLog "codeguard/pkg/log"
)

type Handler struct {
	reviewUC     review.UseCase
	security     *SecurityValidator
	githubParser *GitHubWebhookParser
	l            pkgLog.Logger
}

func NewHandler(
	reviewUC review.UseCase,
	securityConfig SecurityConfig,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		reviewUC:     reviewUC,
		security:     NewSecurityValidator(securityConfig),
		githubParser: NewGitHubParser(),
		l:            l,
	}
}
