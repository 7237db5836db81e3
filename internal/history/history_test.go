package history

import (
	"path/filepath"
	"testing"

	"github.com/studiowebux/stitchcli/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create history manager: %v", err)
	}
	t.Cleanup(func() {
		m.Close()
	})

	return m
}

func TestSaveAndLoad(t *testing.T) {
	m := newTestManager(t)

	entry := types.PatternEntry{
		SourceImage:  "cat.png",
		Cols:         "50",
		StitchWidth:  "1.0",
		StitchHeight: "1.5",
		PatternImage: "/api/output/cat_pattern.png",
		Status:       200,
		DurationMs:   320,
		ProfileName:  "Default",
	}

	if err := m.Save(entry); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	got := entries[0]
	if got.SourceImage != "cat.png" {
		t.Errorf("Expected cat.png, got %s", got.SourceImage)
	}
	if got.Cols != "50" {
		t.Errorf("Expected cols 50, got %s", got.Cols)
	}
	if got.PatternImage != "/api/output/cat_pattern.png" {
		t.Errorf("Unexpected pattern image: %s", got.PatternImage)
	}
	if got.Timestamp == "" {
		t.Error("Expected a timestamp to be set")
	}
	if got.Error != "" {
		t.Errorf("Expected no error, got %q", got.Error)
	}
}

func TestLoadNewestFirst(t *testing.T) {
	m := newTestManager(t)

	for i, ts := range []string{"2025-01-01 10:00:00", "2025-01-02 10:00:00", "2025-01-03 10:00:00"} {
		err := m.Save(types.PatternEntry{
			Timestamp:   ts,
			SourceImage: "img.png",
			Cols:        "50",
			StitchWidth: "1.0", StitchHeight: "1.0",
			PatternImage: "/api/output/x.png",
			Status:       200,
			DurationMs:   int64(i),
		})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0].Timestamp != "2025-01-03 10:00:00" {
		t.Errorf("Expected newest entry first, got %s", entries[0].Timestamp)
	}
}

func TestLoadForImage(t *testing.T) {
	m := newTestManager(t)

	for _, name := range []string{"cat.png", "dog.png", "cat.png"} {
		err := m.Save(types.PatternEntry{
			SourceImage: name,
			Cols:        "50",
			StitchWidth: "1.0", StitchHeight: "1.0",
			PatternImage: "/api/output/x.png",
		})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := m.LoadForImage("cat.png")
	if err != nil {
		t.Fatalf("LoadForImage failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries for cat.png, got %d", len(entries))
	}
}

func TestSaveFailedAttempt(t *testing.T) {
	m := newTestManager(t)

	err := m.Save(types.PatternEntry{
		SourceImage: "cat.png",
		Cols:        "50",
		StitchWidth: "1.0", StitchHeight: "1.0",
		Error: "connection refused",
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if entries[0].Error != "connection refused" {
		t.Errorf("Expected error to round-trip, got %q", entries[0].Error)
	}
}

func TestClear(t *testing.T) {
	m := newTestManager(t)

	if err := m.Save(types.PatternEntry{SourceImage: "cat.png", Cols: "50", StitchWidth: "1.0", StitchHeight: "1.0"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	entries, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty history after clear, got %d entries", len(entries))
	}
}
