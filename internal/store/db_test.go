package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/mangaview/mangaview/internal/domain"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	tmpFile := filepath.Join(t.TempDir(), "test.db")
	db, err := NewSQLiteDB(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	cleanup := func() {
		if cErr := db.Close(); cErr != nil {
			t.Logf("db.Close error: %v", cErr)
		}
	}
	return db, cleanup
}

func TestDB_Cache(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	// Missing key
	data, err := db.GetCache("missing")
	if err != nil {
		t.Fatalf("GetCache failed: %v", err)
	}
	if data != nil {
		t.Errorf("Expected nil for missing key, got %q", data)
	}

	// Set and get
	if err := db.SetCache("k", []byte("v1"), time.Hour); err != nil {
		t.Fatalf("SetCache failed: %v", err)
	}
	data, _ = db.GetCache("k")
	if string(data) != "v1" {
		t.Errorf("Expected v1, got %q", data)
	}

	// Overwrite
	if err := db.SetCache("k", []byte("v2"), time.Hour); err != nil {
		t.Fatalf("SetCache overwrite failed: %v", err)
	}
	data, _ = db.GetCache("k")
	if string(data) != "v2" {
		t.Errorf("Expected v2, got %q", data)
	}

	// No TTL never expires
	if err := db.SetCache("forever", []byte("x"), 0); err != nil {
		t.Fatalf("SetCache without ttl failed: %v", err)
	}
	data, _ = db.GetCache("forever")
	if string(data) != "x" {
		t.Errorf("Expected x, got %q", data)
	}

	// Clear
	if err := db.ClearCache(); err != nil {
		t.Fatalf("ClearCache failed: %v", err)
	}
	data, _ = db.GetCache("k")
	if data != nil {
		t.Errorf("Expected nil after clear, got %q", data)
	}
}

func TestDB_CacheExpiry(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if err := db.SetCache("short", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("SetCache failed: %v", err)
	}
	if err := db.SetCache("long", []byte("y"), time.Hour); err != nil {
		t.Fatalf("SetCache failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	purged, err := db.PurgeExpiredCache()
	if err != nil {
		t.Fatalf("PurgeExpiredCache failed: %v", err)
	}
	if purged != 1 {
		t.Errorf("Expected 1 purged entry, got %d", purged)
	}

	data, _ := db.GetCache("short")
	if data != nil {
		t.Errorf("Expected expired entry to be gone, got %q", data)
	}
	data, _ = db.GetCache("long")
	if string(data) != "y" {
		t.Errorf("Expected live entry to survive, got %q", data)
	}

	if err := db.SetCache("lazy", []byte("z"), time.Millisecond); err != nil {
		t.Fatalf("SetCache failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	data, _ = db.GetCache("lazy")
	if data != nil {
		t.Errorf("Expected GetCache to drop expired entry, got %q", data)
	}
}

func TestDB_Comments(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		c := &domain.Comment{
			ID:         string(rune('a'+i%26)) + "-id",
			TargetType: domain.TargetManga,
			TargetID:   "m-1",
			Title:      "One Piece",
			UserID:     "u-1",
			Content:    "<p>comment</p>",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.CreateComment(c); err != nil {
			t.Fatalf("CreateComment %d failed: %v", i, err)
		}
	}
	other := &domain.Comment{
		ID:            "chapter-comment",
		TargetType:    domain.TargetChapter,
		TargetID:      "m-1",
		ChapterNumber: "12",
		UserID:        "u-2",
		Content:       "<p>other</p>",
		CreatedAt:     base,
	}
	if err := db.CreateComment(other); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	count, err := db.CountComments(domain.TargetManga, "m-1")
	if err != nil {
		t.Fatalf("CountComments failed: %v", err)
	}
	if count != 25 {
		t.Errorf("Expected 25 manga comments, got %d", count)
	}

	page, err := db.ListComments(domain.TargetManga, "m-1", 20, 0)
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(page) != 20 {
		t.Fatalf("Expected 20 comments on first page, got %d", len(page))
	}
	if !page[0].CreatedAt.Equal(base.Add(24 * time.Minute)) {
		t.Errorf("Expected newest first, got %v", page[0].CreatedAt)
	}

	rest, err := db.ListComments(domain.TargetManga, "m-1", 20, 20)
	if err != nil {
		t.Fatalf("ListComments page 2 failed: %v", err)
	}
	if len(rest) != 5 {
		t.Errorf("Expected 5 comments on second page, got %d", len(rest))
	}

	chapter, _ := db.ListComments(domain.TargetChapter, "m-1", 20, 0)
	if len(chapter) != 1 || chapter[0].ChapterNumber != "12" {
		t.Errorf("Expected the chapter comment, got %+v", chapter)
	}

	none, err := db.ListComments(domain.TargetManga, "unknown", 20, 0)
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", none)
	}
}

func TestDB_PurgeExpiredCache_Batch(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	purged, err := db.PurgeExpiredCache()
	if err != nil || purged != 0 {
		t.Fatalf("PurgeExpiredCache on empty cache = %d, %v", purged, err)
	}

	for i := 0; i < 5; i++ {
		if err := db.SetCache(fmt.Sprintf("old-%d", i), []byte("x"), time.Millisecond); err != nil {
			t.Fatalf("SetCache failed: %v", err)
		}
	}
	if err := db.SetCache("forever", []byte("y"), 0); err != nil {
		t.Fatalf("SetCache failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	purged, err = db.PurgeExpiredCache()
	if err != nil {
		t.Fatalf("PurgeExpiredCache failed: %v", err)
	}
	if purged != 5 {
		t.Errorf("Expected 5 purged entries, got %d", purged)
	}

	var remaining int
	if err := db.Get(&remaining, "SELECT COUNT(*) FROM cache"); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if remaining != 1 {
		t.Errorf("Expected only the non-expiring entry left, got %d", remaining)
	}
}
