// Package stats persists monthly usage counters to a JSON file.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MonthlyStats are the counters tracked for one calendar month.
type MonthlyStats struct {
	Analyses    int       `json:"analyses"`
	Audits      int       `json:"audits"`
	CacheHits   int       `json:"cache_hits"`
	CacheMisses int       `json:"cache_misses"`
	Errors      int       `json:"errors"`
	LastUpdated time.Time `json:"last_updated"`
}

// Storage handles persistent storage of usage statistics.
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
}

// NewStorage creates a statistics storage instance backed by
// <dataDir>/stats.json.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

// save writes statistics to disk via a temp file and an atomic rename.
func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

func (s *Storage) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.save()
		case <-ticker.C:
			s.save()
		case <-s.done:
			return
		}
	}
}

func getCurrentMonth() string {
	return time.Now().Format("2006-01")
}

// requestWrite signals that a write to disk is needed. A full buffer means
// a write is already pending.
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
	}
}

// current returns the current month's entry, creating it if needed.
// Callers must hold the write lock.
func (s *Storage) current() *MonthlyStats {
	month := getCurrentMonth()
	stats, exists := s.stats[month]
	if !exists {
		stats = &MonthlyStats{}
		s.stats[month] = stats
	}
	return stats
}

func (s *Storage) bump(update func(*MonthlyStats)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats := s.current()
	update(stats)
	stats.LastUpdated = time.Now()

	if time.Since(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = time.Now()
	}
}

// TrackAnalysis records one page analysis and whether it was served from
// cache.
func (s *Storage) TrackAnalysis(cacheHit bool, failed bool) {
	s.bump(func(m *MonthlyStats) {
		m.Analyses++
		if cacheHit {
			m.CacheHits++
		} else {
			m.CacheMisses++
		}
		if failed {
			m.Errors++
		}
	})
}

// TrackAudit records one accessibility audit.
func (s *Storage) TrackAudit(failed bool) {
	s.bump(func(m *MonthlyStats) {
		m.Audits++
		if failed {
			m.Errors++
		}
	})
}

// GetCurrentStats returns statistics for the current month.
func (s *Storage) GetCurrentStats() MonthlyStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[getCurrentMonth()]; exists {
		return *stats
	}
	return MonthlyStats{}
}

// GetMonthlyStats returns statistics for a specific "YYYY-MM" month.
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return *stats, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns all months with statistics, newest first.
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// Cleanup drops statistics for all but the current and previous month.
func (s *Storage) Cleanup() {
	now := time.Now()
	currentMonth := now.Format("2006-01")
	previousMonth := now.AddDate(0, -1, 0).Format("2006-01")

	s.mutex.Lock()
	for key := range s.stats {
		if key != currentMonth && key != previousMonth {
			delete(s.stats, key)
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
}

// Shutdown stops the background writer and flushes pending counters.
func (s *Storage) Shutdown() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	return s.save()
}
