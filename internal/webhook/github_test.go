package webhook

import (
	"testing"

	"codeguard/internal/model"
)

func TestParsePullRequestEvent(t *testing.T) {
	p := NewGitHubParser()

	t.Run("Full Payload", func(t *testing.T) {
		payload := []byte(`{
			"action": "synchronize",
			"number": 42,
			"pull_request": {
				"number": 42,
				"state": "open",
				"title": "Add feature",
				"head": {"ref": "feature", "sha": "abc123def456"},
				"user": {"login": "dev"}
			},
			"repository": {
				"full_name": "octo/demo",
				"name": "demo",
				"owner": {"login": "octo"}
			}
		}`)

		event, err := p.ParsePullRequestEvent(payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.Action != model.ActionSynchronize {
			t.Errorf("unexpected action: %q", event.Action)
		}
		want := model.PullRequestRef{Owner: "octo", Repo: "demo", Number: 42}
		if event.Repo != want {
			t.Errorf("unexpected ref: %+v", event.Repo)
		}
		if event.HeadSHA != "abc123def456" || event.Author != "dev" || event.State != "open" {
			t.Errorf("unexpected event: %+v", event)
		}
	})

	t.Run("Owner From Full Name", func(t *testing.T) {
		payload := []byte(`{
			"action": "opened",
			"pull_request": {"number": 7, "state": "open", "head": {"sha": "abc"}},
			"repository": {"full_name": "octo/demo"}
		}`)
		event, err := p.ParsePullRequestEvent(payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.Repo.Owner != "octo" || event.Repo.Repo != "demo" {
			t.Errorf("unexpected ref: %+v", event.Repo)
		}
	})

	t.Run("Missing Repository", func(t *testing.T) {
		payload := []byte(`{"action": "opened", "pull_request": {"number": 7, "head": {"sha": "abc"}}}`)
		if _, err := p.ParsePullRequestEvent(payload); err == nil {
			t.Error("expected error for missing repository")
		}
	})

	t.Run("Missing Head SHA", func(t *testing.T) {
		payload := []byte(`{
			"action": "opened",
			"pull_request": {"number": 7},
			"repository": {"full_name": "octo/demo"}
		}`)
		if _, err := p.ParsePullRequestEvent(payload); err == nil {
			t.Error("expected error for missing head commit")
		}
	})

	t.Run("Missing Number", func(t *testing.T) {
		payload := []byte(`{
			"action": "opened",
			"pull_request": {"head": {"sha": "abc"}},
			"repository": {"full_name": "octo/demo"}
		}`)
		if _, err := p.ParsePullRequestEvent(payload); err == nil {
			t.Error("expected error for missing PR number")
		}
	})

	t.Run("Not JSON", func(t *testing.T) {
		if _, err := p.ParsePullRequestEvent([]byte("not json")); err == nil {
			t.Error("expected error for unparseable payload")
		}
	})
}
