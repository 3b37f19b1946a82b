package cache

import (
	"testing"
	"time"
)

func TestStatusCacheSetGetInvalidate(t *testing.T) {
	statusCache := NewStatusCache(time.Minute, time.Minute)

	if _, found := statusCache.Get("alice"); found {
		t.Fatal("empty cache must miss")
	}

	statusCache.Set("alice", true)
	claimed, found := statusCache.Get("alice")
	if !found || !claimed {
		t.Fatalf("expected cached claimed=true, got claimed=%v found=%v", claimed, found)
	}

	statusCache.Invalidate("alice")
	if _, found := statusCache.Get("alice"); found {
		t.Fatal("invalidated entry must miss")
	}
}
