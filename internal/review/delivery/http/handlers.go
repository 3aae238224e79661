package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"codeguard/internal/review"
	"codeguard/pkg/response"
)

// AnalyzeSnippet godoc
// @Summary     Analyze a code snippet
// @Description Runs the analysis pipeline on an ad-hoc snippet without touching GitHub.
// @Tags        Analysis
// @Accept      json
// @Produce     json
// @Param       body body analyzeReq true "Snippet to analyze"
// @Success     200 {object} analyzeResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/analyze [POST]
func (h *handler) AnalyzeSnippet(c *gin.Context) {
	ctx := c.Request.Context()

	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.AnalyzeSnippet(ctx, req.toInput())
	if err != nil {
		if errors.Is(err, review.ErrEmptySnippet) {
			response.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "uc.AnalyzeSnippet: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, newAnalyzeResp(output))
}
