package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"accmon/internal/analysis"
)

// Store persists the two small files that survive between runs: the last
// known status (plain text) and a bounded rolling history of analyses (JSON
// array, most recent last).
type Store struct {
	StatusPath  string
	HistoryPath string
	MaxHistory  int
}

// LastStatus returns the status persisted by the previous successfully
// notified run, or false when no prior status exists.
func (s *Store) LastStatus() (analysis.Status, bool) {
	b, err := os.ReadFile(s.StatusPath)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(b))
	if v == "" {
		return "", false
	}
	return analysis.Status(v), true
}

func (s *Store) SaveStatus(st analysis.Status) error {
	return writeAtomic(s.StatusPath, []byte(st))
}

// AppendHistory appends one analysis to the rolling history, evicting the
// oldest entries beyond MaxHistory. It returns the resulting length.
func (s *Store) AppendHistory(a analysis.Analysis) (int, error) {
	limit := s.MaxHistory
	if limit <= 0 {
		limit = 200
	}

	var history []analysis.Analysis
	if b, err := os.ReadFile(s.HistoryPath); err == nil {
		if err := json.Unmarshal(b, &history); err != nil {
			return 0, fmt.Errorf("history file %s is not a valid JSON array: %w", s.HistoryPath, err)
		}
	} else if !os.IsNotExist(err) {
		return 0, fmt.Errorf("read history: %w", err)
	}

	history = append(history, a)
	if len(history) > limit {
		history = history[len(history)-limit:]
	}

	b, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshal history: %w", err)
	}
	if err := writeAtomic(s.HistoryPath, b); err != nil {
		return 0, err
	}
	return len(history), nil
}

// writeAtomic writes via a temp file and rename so a failed write never
// leaves a half-written file in place of the previous state.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
