package memory

import (
	"sync"
	"sync/atomic"
	"testing"

	"codeguard/internal/model"
)

func testKey(sha string) model.ProcessedKey {
	return model.ProcessedKey{
		Ref:     model.PullRequestRef{Owner: "octo", Repo: "demo", Number: 42},
		HeadSHA: sha,
	}
}

func TestTryBegin(t *testing.T) {
	t.Run("First Claim Wins", func(t *testing.T) {
		tr := New()
		if !tr.TryBegin(testKey("abc123")) {
			t.Fatal("first claim should succeed")
		}
		if tr.TryBegin(testKey("abc123")) {
			t.Error("second claim on in-flight key should fail")
		}
	})

	t.Run("Completed Key Rejected", func(t *testing.T) {
		tr := New()
		key := testKey("abc123")
		tr.TryBegin(key)
		tr.Complete(key)
		if tr.TryBegin(key) {
			t.Error("claim on completed key should fail")
		}
	})

	t.Run("Released Key Reclaimable", func(t *testing.T) {
		tr := New()
		key := testKey("abc123")
		tr.TryBegin(key)
		tr.Release(key)
		if !tr.TryBegin(key) {
			t.Error("claim after release should succeed")
		}
	})

	t.Run("Distinct Commits Independent", func(t *testing.T) {
		tr := New()
		if !tr.TryBegin(testKey("abc123")) || !tr.TryBegin(testKey("def456")) {
			t.Error("claims on distinct commits should both succeed")
		}
	})
}

func TestTryBeginConcurrent(t *testing.T) {
	tr := New()
	key := testKey("abc123")

	var wins int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tr.TryBegin(key) {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("expected exactly 1 winning claim, got %d", wins)
	}
}

func TestLatestHead(t *testing.T) {
	tr := New()
	ref := model.PullRequestRef{Owner: "octo", Repo: "demo", Number: 7}

	if _, ok := tr.LatestHead(ref); ok {
		t.Error("expected no head for unseen PR")
	}

	tr.SetLatestHead(ref, "abc123")
	tr.SetLatestHead(ref, "def456")

	sha, ok := tr.LatestHead(ref)
	if !ok || sha != "def456" {
		t.Errorf("expected def456, got %q (ok=%v)", sha, ok)
	}
}
