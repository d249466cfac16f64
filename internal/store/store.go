// Package store persists analysis reports to a JSON file keyed by
// video ID, so batch runs accumulate and reprocessing can rewrite
// reports in place.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/versemeter/versemeter/internal/model"
)

// Store is a mutex-guarded JSON file of reports keyed by video ID.
type Store struct {
	mu      sync.Mutex
	path    string
	reports map[string]*model.VideoReport
}

// Open loads the store at path, creating an empty one if the file does
// not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		reports: make(map[string]*model.VideoReport),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	if err := json.Unmarshal(data, &s.reports); err != nil {
		return nil, fmt.Errorf("parse store %s: %w", path, err)
	}
	return s, nil
}

// Upsert inserts or replaces a report and writes the store to disk.
func (s *Store) Upsert(report *model.VideoReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[report.VideoID] = report
	return s.save()
}

// Get returns the report for a video ID.
func (s *Store) Get(videoID string) (*model.VideoReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[videoID]
	return report, ok
}

// All returns every stored report, newest first.
func (s *Store) All() []*model.VideoReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports := make([]*model.VideoReport, 0, len(s.reports))
	for _, r := range s.reports {
		reports = append(reports, r)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].ProcessedAt.After(reports[j].ProcessedAt)
	})
	return reports
}

// Len returns the number of stored reports.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

// save writes the store atomically: temp file in the same directory,
// then rename over the target.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.reports, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".results-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close store: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
