package memory

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"codeguard/internal/model"
	"codeguard/internal/review/repository"
)

// completedTTL is how long a completed key blocks re-processing. After it
// lapses, a re-delivered webhook for the same commit refreshes the report.
const completedTTL = time.Hour

// maxCompletedKeys bounds the completed-key cache.
const maxCompletedKeys = 10000

// Tracker is the in-memory Tracker implementation. Claims are
// compare-and-set under a mutex; completed keys age out via an expirable
// LRU. State lives only for the process lifetime.
type Tracker struct {
	mu        sync.Mutex
	inflight  map[model.ProcessedKey]struct{}
	completed *expirable.LRU[model.ProcessedKey, time.Time]
	heads     map[model.PullRequestRef]string
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{
		inflight:  make(map[model.ProcessedKey]struct{}),
		completed: expirable.NewLRU[model.ProcessedKey, time.Time](maxCompletedKeys, nil, completedTTL),
		heads:     make(map[model.PullRequestRef]string),
	}
}

var _ repository.Tracker = (*Tracker)(nil)

func (t *Tracker) TryBegin(key model.ProcessedKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.inflight[key]; ok {
		return false
	}
	if _, ok := t.completed.Get(key); ok {
		return false
	}

	t.inflight[key] = struct{}{}
	return true
}

func (t *Tracker) Complete(key model.ProcessedKey) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.inflight, key)
	t.completed.Add(key, time.Now())
}

func (t *Tracker) Release(key model.ProcessedKey) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.inflight, key)
}

func (t *Tracker) SetLatestHead(ref model.PullRequestRef, sha string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.heads[ref] = sha
}

func (t *Tracker) LatestHead(ref model.PullRequestRef) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sha, ok := t.heads[ref]
	return sha, ok
}
