// Package history keeps a log of past cleanup sessions.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/substantialcattle5/cleanfiles/internal/constants"
	"github.com/substantialcattle5/cleanfiles/internal/filelock"
)

// SessionRecord represents a single cleanup session
type SessionRecord struct {
	ID          string         `json:"id" yaml:"id"`
	Timestamp   string         `json:"timestamp" yaml:"timestamp"`
	Mode        string         `json:"mode" yaml:"mode"`
	Directories []string       `json:"directories" yaml:"directories"`
	Groups      int            `json:"groups" yaml:"groups"`
	TotalGroups int            `json:"total_groups" yaml:"total_groups"`
	Actions     map[string]int `json:"actions" yaml:"actions"`
	Failures    int            `json:"failures" yaml:"failures"`
	DurationMs  int64          `json:"duration_ms" yaml:"duration_ms"`
	Status      string         `json:"status" yaml:"status"`
	Error       string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// History wraps multiple SessionRecords
type History struct {
	Sessions []SessionRecord `json:"sessions" yaml:"sessions"`
}

// Last returns up to n of the most recent records, newest first. n <= 0
// returns all of them.
func (h *History) Last(n int) []SessionRecord {
	if n <= 0 || n > len(h.Sessions) {
		n = len(h.Sessions)
	}

	out := make([]SessionRecord, 0, n)
	for i := len(h.Sessions) - 1; i >= len(h.Sessions)-n; i-- {
		out = append(out, h.Sessions[i])
	}
	return out
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// AddRecord appends a record to the history file, creating it if missing.
// Files ending in .yaml or .yml are written as YAML, everything else as JSON.
// Concurrent sessions serialize on a lock next to the file.
func AddRecord(path string, record SessionRecord) error {
	return filelock.WithLock(path, func() error {
		h, err := LoadHistory(path)
		if err != nil {
			return err
		}
		h.Sessions = append(h.Sessions, record)

		var data []byte
		if isYAML(path) {
			data, err = yaml.Marshal(h)
		} else {
			data, err = json.MarshalIndent(h, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}

		return filelock.AtomicWrite(path, data, constants.StandardFilePerms)
	})
}

// LoadHistory loads history from path
func LoadHistory(path string) (*History, error) {
	h := &History{}

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return empty history
		if os.IsNotExist(err) {
			return h, nil
		}
		return nil, err
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, h)
	} else {
		err = json.Unmarshal(data, h)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse history %s: %w", path, err)
	}

	return h, nil
}
