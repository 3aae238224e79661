package http

import (
	"github.com/gin-gonic/gin"

	"codeguard/internal/review"
	"codeguard/pkg/log"
)

// Handler is the public interface for the review HTTP delivery layer.
type Handler interface {
	AnalyzeSnippet(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc review.UseCase
}

func New(l log.Logger, uc review.UseCase) Handler {
	return &handler{l: l, uc: uc}
}
