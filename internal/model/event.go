package model

import "time"

// PullRequestAction is the webhook action on a pull request.
type PullRequestAction string

const (
	ActionOpened      PullRequestAction = "opened"
	ActionSynchronize PullRequestAction = "synchronize"
	ActionReopened    PullRequestAction = "reopened"
)

// TriggersAnalysis reports whether the action should start an analysis run.
func (a PullRequestAction) TriggersAnalysis() bool {
	switch a {
	case ActionOpened, ActionSynchronize, ActionReopened:
		return true
	}
	return false
}

// WebhookEvent represents a parsed pull_request webhook delivery.
// Immutable once constructed by the parser.
type WebhookEvent struct {
	Action     PullRequestAction
	Repo       PullRequestRef // owner/repo/number of the target PR
	HeadSHA    string         // head commit of the PR at delivery time
	State      string         // open, closed
	Title      string
	Author     string
	ReceivedAt time.Time
}

// Environment names, used to toggle server behavior.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
