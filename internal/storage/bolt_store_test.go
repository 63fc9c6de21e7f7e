package storage

import (
	"testing"
	"time"
)

func TestBoltStoreMarksAndExpiresVideos(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		VideoTTL:        1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	storeRaw, err := openBolt(dir+"/ledger.db", opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	seen, err := store.SeenVideo("movies:clip.mp4")
	if err != nil || seen {
		t.Fatalf("expected unseen video, seen=%v err=%v", seen, err)
	}

	if err := store.MarkVideo("movies:clip.mp4"); err != nil {
		t.Fatalf("MarkVideo: %v", err)
	}

	seen, err = store.SeenVideo("movies:clip.mp4")
	if err != nil || !seen {
		t.Fatalf("expected video marked as seen, got seen=%v err=%v", seen, err)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	seen, err = store.SeenVideo("movies:clip.mp4")
	if err != nil {
		t.Fatalf("SeenVideo after expiry: %v", err)
	}
	if seen {
		t.Fatalf("expected entry to expire and be removed")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.MarkVideo("x"); err != nil {
		t.Fatalf("noop store MarkVideo: %v", err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported storage type")
	}
}
