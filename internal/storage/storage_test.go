package storage

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testReport struct {
	Rule string  `json:"rule"`
	Mean float64 `json:"mean"`
}

func TestStorage_SaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	s := New(tmpDir, testLogger())
	saved := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return saved }

	archive, err := s.Save(testReport{Rule: "large_k(2048)", Mean: 0.25})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(archive); err != nil {
		t.Errorf("expected archive at %s: %v", archive, err)
	}

	// Load through a fresh instance
	s2 := New(tmpDir, testLogger())
	var got testReport
	updated, err := s2.Load(&got)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got.Rule != "large_k(2048)" || got.Mean != 0.25 {
		t.Errorf("expected saved report, got %+v", got)
	}
	if !updated.Equal(saved) {
		t.Errorf("expected updated_at %v, got %v", saved, updated)
	}
}

func TestStorage_LoadNonExistent(t *testing.T) {
	s := New(t.TempDir(), testLogger())

	var got testReport
	_, err := s.Load(&got)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStorage_LoadNewerVersion(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, latestFileName)
	content := `{"version": 99, "updated_at": "2026-01-01T00:00:00Z", "report": {}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s := New(tmpDir, testLogger())
	var got testReport
	if _, err := s.Load(&got); err == nil {
		t.Error("expected error for newer report version")
	}
}

func TestStorage_LoadCorrupted(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, latestFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := New(tmpDir, testLogger())
	var got testReport
	if _, err := s.Load(&got); err == nil {
		t.Error("expected error for corrupted file")
	}
}

func TestStorage_History(t *testing.T) {
	tmpDir := t.TempDir()
	s := New(tmpDir, testLogger())

	history, err := s.History()
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %v", history)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		s.now = func() time.Time { return at }
		if _, err := s.Save(testReport{Mean: float64(i)}); err != nil {
			t.Fatalf("Save %d failed: %v", i, err)
		}
	}

	history, err = s.History()
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 archived reports, got %d", len(history))
	}

	var first testReport
	if _, err := s.LoadFile(history[0], &first); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if first.Mean != 0 {
		t.Errorf("expected oldest report first, got mean %v", first.Mean)
	}

	var latest testReport
	if _, err := s.Load(&latest); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if latest.Mean != 2 {
		t.Errorf("expected latest report mean 2, got %v", latest.Mean)
	}
}

func TestStorage_NoTempFileLeft(t *testing.T) {
	tmpDir := t.TempDir()
	s := New(tmpDir, testLogger())

	if _, err := s.Save(testReport{Rule: "x"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, latestFileName+".tmp")); !os.IsNotExist(err) {
		t.Error("expected temp file to be renamed away")
	}
}
