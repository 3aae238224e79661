package webhook

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"codeguard/internal/model"
)

// GitHubWebhookParser parses GitHub webhook payloads
type GitHubWebhookParser struct{}

func NewGitHubParser() *GitHubWebhookParser {
	return &GitHubWebhookParser{}
}

// ParsePullRequestEvent parses a GitHub pull_request event into the
// immutable domain event.
func (p *GitHubWebhookParser) ParsePullRequestEvent(payload []byte) (*model.WebhookEvent, error) {
	var event struct {
		Action      string `json:"action"`
		Number      int    `json:"number"`
		PullRequest struct {
			Number int    `json:"number"`
			State  string `json:"state"`
			Title  string `json:"title"`
			Head   struct {
				Ref string `json:"ref"`
				SHA string `json:"sha"`
			} `json:"head"`
			User struct {
				Login string `json:"login"`
			} `json:"user"`
		} `json:"pull_request"`
		Repository struct {
			FullName string `json:"full_name"`
			Name     string `json:"name"`
			Owner    struct {
				Login string `json:"login"`
			} `json:"owner"`
		} `json:"repository"`
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse pull request event: %w", err)
	}

	owner := event.Repository.Owner.Login
	repo := event.Repository.Name
	if owner == "" || repo == "" {
		// Fall back to splitting full_name (some payloads omit owner.login)
		if parts := strings.SplitN(event.Repository.FullName, "/", 2); len(parts) == 2 {
			owner, repo = parts[0], parts[1]
		}
	}
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("payload missing repository identifier")
	}

	number := event.PullRequest.Number
	if number == 0 {
		number = event.Number
	}
	if number == 0 {
		return nil, fmt.Errorf("payload missing pull request number")
	}
	if event.PullRequest.Head.SHA == "" {
		return nil, fmt.Errorf("payload missing head commit")
	}

	return &model.WebhookEvent{
		Action:     model.PullRequestAction(event.Action),
		Repo:       model.PullRequestRef{Owner: owner, Repo: repo, Number: number},
		HeadSHA:    event.PullRequest.Head.SHA,
		State:      event.PullRequest.State,
		Title:      event.PullRequest.Title,
		Author:     event.PullRequest.User.Login,
		ReceivedAt: time.Now(),
	}, nil
}
