package review

import "codeguard/internal/model"

// Marker is embedded in every bot comment body and used to find the
// existing report on later runs. Exactly one comment per PR carries it.
const Marker = "<!-- codeguard-report -->"

// DispatchOutput is the outcome of claiming an idempotency key.
type DispatchOutput struct {
	Accepted bool
	Reason   string // set when not accepted
}

// SnippetInput is an ad-hoc analysis request.
type SnippetInput struct {
	Filename string
	Code     string
}

// SnippetOutput holds the issues found in an ad-hoc snippet.
type SnippetOutput struct {
	Issues  []model.Issue
	Summary string
}
