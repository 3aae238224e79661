package webhook

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codeguard/internal/model"
	pkgResponse "codeguard/pkg/response"
)

// analysisTimeout bounds one background orchestration run.
const analysisTimeout = 10 * time.Minute

// HandleGitHubWebhook processes GitHub pull_request webhook deliveries.
// The response always reflects successful receipt, never analysis outcome.
// @Summary GitHub webhook
// @Description Receives pull_request events, verifies the HMAC signature and schedules analysis
// @Tags Webhook
// @Accept json
// @Produce json
// @Success 200 {object} response.Resp "accepted or ignored"
// @Failure 400 {object} response.Resp "unparseable payload"
// @Failure 401 {object} map[string]string "invalid signature"
// @Router /webhook/github [post]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "Webhook from non-whitelisted IP: %v", err)
		pkgResponse.Forbidden(c)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to read webhook body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Verify signature over the exact raw bytes
	signature := c.GetHeader("X-Hub-Signature-256")
	if err := h.security.ValidateSignature(body, signature); err != nil {
		h.l.Errorf(ctx, "GitHub signature verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	if err := h.security.CheckRateLimit("github"); err != nil {
		h.l.Warnf(ctx, "Inbound rate limit exceeded: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	eventType := c.GetHeader("X-GitHub-Event")
	if eventType != "pull_request" {
		h.l.Infof(ctx, "Ignoring GitHub event type: %s", eventType)
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "unsupported event type"})
		return
	}

	event, err := h.githubParser.ParsePullRequestEvent(body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to parse GitHub event: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if !event.Action.TriggersAnalysis() {
		h.l.Infof(ctx, "Ignoring pull_request action %q for %s", event.Action, event.Repo)
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "action not analyzed"})
		return
	}
	if event.State != "" && event.State != "open" {
		h.l.Infof(ctx, "Ignoring %s pull request %s", event.State, event.Repo)
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": "pull request not open"})
		return
	}

	// Claim the (PR, commit) key; duplicates are idempotent no-ops.
	out := h.reviewUC.Dispatch(ctx, *event)
	if !out.Accepted {
		h.l.Infof(ctx, "Duplicate delivery for %s@%s ignored (%s)", event.Repo, shortSHA(event.HeadSHA), out.Reason)
		pkgResponse.OK(c, gin.H{"status": "ignored", "reason": out.Reason})
		return
	}

	// Process in background; the webhook must respond well inside the
	// upstream delivery timeout regardless of analysis duration.
	go h.processWebhookAsync(*event)

	pkgResponse.OK(c, gin.H{
		"status": "accepted",
		"repo":   event.Repo.FullName(),
		"pr":     event.Repo.Number,
	})
}

// processWebhookAsync runs one analysis in the background.
func (h *Handler) processWebhookAsync(event model.WebhookEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
	defer cancel()

	h.l.Infof(ctx, "Starting analysis for %s@%s", event.Repo, shortSHA(event.HeadSHA))
	h.reviewUC.Analyze(ctx, event)
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
