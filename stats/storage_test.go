package stats

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStorage(t *testing.T, dir string) *Storage {
	t.Helper()
	s, err := NewStorage(dir)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	t.Cleanup(func() { s.Shutdown() })
	return s
}

func TestTrackAnalysis(t *testing.T) {
	s := newTestStorage(t, t.TempDir())

	s.TrackAnalysis(false, false)
	s.TrackAnalysis(true, false)
	s.TrackAnalysis(false, true)

	got := s.GetCurrentStats()
	if got.Analyses != 3 {
		t.Errorf("analyses = %d, want 3", got.Analyses)
	}
	if got.CacheHits != 1 || got.CacheMisses != 2 {
		t.Errorf("cacheHits/misses = %d/%d, want 1/2", got.CacheHits, got.CacheMisses)
	}
	if got.Errors != 1 {
		t.Errorf("errors = %d, want 1", got.Errors)
	}
	if got.LastUpdated.IsZero() {
		t.Error("lastUpdated not set")
	}
}

func TestTrackAudit(t *testing.T) {
	s := newTestStorage(t, t.TempDir())

	s.TrackAudit(false)
	s.TrackAudit(true)

	got := s.GetCurrentStats()
	if got.Audits != 2 {
		t.Errorf("audits = %d, want 2", got.Audits)
	}
	if got.Errors != 1 {
		t.Errorf("errors = %d, want 1", got.Errors)
	}
}

func TestPersistAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	first := newTestStorage(t, dir)
	first.TrackAnalysis(false, false)
	first.TrackAudit(false)
	if err := first.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	second := newTestStorage(t, dir)
	got := second.GetCurrentStats()
	if got.Analyses != 1 || got.Audits != 1 {
		t.Errorf("reloaded analyses/audits = %d/%d, want 1/1", got.Analyses, got.Audits)
	}
}

func TestShutdownFlushesToDisk(t *testing.T) {
	dir := t.TempDir()

	s := newTestStorage(t, dir)
	s.TrackAnalysis(false, false)
	if err := s.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if _, err := filepath.Glob(filepath.Join(dir, "stats.json")); err != nil {
		t.Fatalf("glob: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "stats.json"))
	if len(matches) != 1 {
		t.Error("stats.json not written on shutdown")
	}
}

func TestShutdownIdempotent(t *testing.T) {
	s := newTestStorage(t, t.TempDir())
	if err := s.Shutdown(); err != nil {
		t.Fatalf("first Shutdown: %v", err)
	}
	if err := s.Shutdown(); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
}

func TestGetMonthlyStats(t *testing.T) {
	s := newTestStorage(t, t.TempDir())
	s.TrackAnalysis(false, false)

	month := time.Now().Format("2006-01")
	got, ok := s.GetMonthlyStats(month)
	if !ok {
		t.Fatalf("no stats for %s", month)
	}
	if got.Analyses != 1 {
		t.Errorf("analyses = %d, want 1", got.Analyses)
	}

	if _, ok := s.GetMonthlyStats("1999-01"); ok {
		t.Error("expected no stats for 1999-01")
	}
}

func TestCleanupKeepsRecentMonths(t *testing.T) {
	s := newTestStorage(t, t.TempDir())

	now := time.Now()
	current := now.Format("2006-01")
	previous := now.AddDate(0, -1, 0).Format("2006-01")

	s.mutex.Lock()
	s.stats[current] = &MonthlyStats{Analyses: 1}
	s.stats[previous] = &MonthlyStats{Analyses: 2}
	s.stats["2020-01"] = &MonthlyStats{Analyses: 3}
	s.mutex.Unlock()

	s.Cleanup()

	months := s.GetAllMonths()
	if len(months) != 2 {
		t.Fatalf("months = %v, want only current and previous", months)
	}
	for _, m := range months {
		if m == "2020-01" {
			t.Error("stale month survived cleanup")
		}
	}
}

func TestGetAllMonthsNewestFirst(t *testing.T) {
	s := newTestStorage(t, t.TempDir())

	s.mutex.Lock()
	s.stats["2026-01"] = &MonthlyStats{}
	s.stats["2026-03"] = &MonthlyStats{}
	s.stats["2026-02"] = &MonthlyStats{}
	s.mutex.Unlock()

	months := s.GetAllMonths()
	if len(months) != 3 || months[0] != "2026-03" || months[2] != "2026-01" {
		t.Errorf("months = %v, want newest first", months)
	}
}
