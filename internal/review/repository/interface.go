package repository

import "codeguard/internal/model"

// Tracker records which (PR, commit) keys have been processed. The default
// implementation is in-memory and process-local; production deployments can
// substitute a durable store behind this interface.
type Tracker interface {
	// TryBegin atomically claims the key. It returns false when the key is
	// already in flight or was completed recently; exactly one concurrent
	// caller observes true.
	TryBegin(key model.ProcessedKey) bool

	// Complete marks the key done. Completed keys reject re-processing until
	// their retention window lapses.
	Complete(key model.ProcessedKey)

	// Release forgets an in-flight claim so a later re-delivery can retry.
	Release(key model.ProcessedKey)

	// SetLatestHead records the newest dispatched head commit for a PR.
	SetLatestHead(ref model.PullRequestRef, sha string)

	// LatestHead returns the newest dispatched head commit for a PR.
	LatestHead(ref model.PullRequestRef) (string, bool)
}
