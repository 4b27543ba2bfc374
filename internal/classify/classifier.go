// Package classify derives groups of problem files from a content index.
package classify

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/substantialcattle5/cleanfiles/internal/config"
	"github.com/substantialcattle5/cleanfiles/internal/deduplication"
	"github.com/substantialcattle5/cleanfiles/internal/fs"
	"github.com/substantialcattle5/cleanfiles/internal/logger"
)

// FileGroup is a non-empty, ordered set of files sharing a criterion
type FileGroup struct {
	Files []deduplication.FileRecord
}

// Paths returns the member paths in group order
func (g FileGroup) Paths() []string {
	paths := make([]string, len(g.Files))
	for i, f := range g.Files {
		paths[i] = f.Path
	}
	return paths
}

// Len returns the number of files in the group
func (g FileGroup) Len() int {
	return len(g.Files)
}

func single(r deduplication.FileRecord) FileGroup {
	return FileGroup{Files: []deduplication.FileRecord{r}}
}

// Classifier groups indexed files by mode
type Classifier struct {
	fs  afero.Fs
	cfg config.Config

	// IncludeUnique makes Duplicates report every hash, including contents
	// that occur only once.
	IncludeUnique bool
}

type classifyFunc func(c *Classifier, idx *deduplication.HashIndex) ([]FileGroup, error)

var classifiers = map[Mode]classifyFunc{
	Duplicates:       (*Classifier).duplicates,
	Empty:            (*Classifier).empty,
	Temp:             (*Classifier).temp,
	SameName:         (*Classifier).sameName,
	BadPermission:    (*Classifier).badPermission,
	BadCharacterName: (*Classifier).badCharacterName,
	MissingInX:       (*Classifier).missingInX,
}

// New creates a classifier. fsys is only consulted for file metadata.
func New(fsys afero.Fs, cfg config.Config) *Classifier {
	return &Classifier{fs: fsys, cfg: cfg}
}

// Classify returns the groups matching mode, ordered by their first member's
// path.
func (c *Classifier) Classify(mode Mode, idx *deduplication.HashIndex) ([]FileGroup, error) {
	fn, ok := classifiers[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %d", int(mode))
	}

	groups, err := fn(c, idx)
	if err != nil {
		return nil, err
	}

	logger.Get().Debug().Str("mode", mode.String()).Int("groups", len(groups)).Msg("classified")
	return groups, nil
}

func (c *Classifier) duplicates(idx *deduplication.HashIndex) ([]FileGroup, error) {
	minCount := 2
	if c.IncludeUnique {
		minCount = 1
	}

	return bucket(idx.All(), func(r deduplication.FileRecord) (string, bool) {
		return r.Hash, idx.Counts[r.Hash] >= minCount
	}, 1), nil
}

func (c *Classifier) empty(idx *deduplication.HashIndex) ([]FileGroup, error) {
	return singles(idx.All(), func(r deduplication.FileRecord) bool {
		return r.Hash == deduplication.EmptyHash
	}), nil
}

func (c *Classifier) temp(idx *deduplication.HashIndex) ([]FileGroup, error) {
	return singles(idx.All(), func(r deduplication.FileRecord) bool {
		return c.cfg.IsTempName(filepath.Base(r.Path))
	}), nil
}

func (c *Classifier) sameName(idx *deduplication.HashIndex) ([]FileGroup, error) {
	return bucket(idx.All(), func(r deduplication.FileRecord) (string, bool) {
		return filepath.Base(r.Path), true
	}, 2), nil
}

func (c *Classifier) badPermission(idx *deduplication.HashIndex) ([]FileGroup, error) {
	var groups []FileGroup
	for _, r := range idx.All() {
		perm, err := fs.FilePermission(c.fs, r.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", r.Path, err)
		}
		if c.cfg.IsBadPermission(perm) {
			groups = append(groups, single(r))
		}
	}
	return groups, nil
}

func (c *Classifier) badCharacterName(idx *deduplication.HashIndex) ([]FileGroup, error) {
	return singles(idx.All(), func(r deduplication.FileRecord) bool {
		return c.cfg.HasBadCharacter(filepath.Base(r.Path))
	}), nil
}

func (c *Classifier) missingInX(idx *deduplication.HashIndex) ([]FileGroup, error) {
	xHashes := idx.XHashes()
	return singles(idx.Y, func(r deduplication.FileRecord) bool {
		_, ok := xHashes[r.Hash]
		return !ok
	}), nil
}

// singles returns one group per matching record
func singles(records []deduplication.FileRecord, match func(deduplication.FileRecord) bool) []FileGroup {
	var groups []FileGroup
	for _, r := range records {
		if match(r) {
			groups = append(groups, single(r))
		}
	}
	return groups
}

// bucket groups records by key, keeping first-seen order of keys and records,
// and drops buckets smaller than minSize.
func bucket(records []deduplication.FileRecord, key func(deduplication.FileRecord) (string, bool), minSize int) []FileGroup {
	var order []string
	buckets := make(map[string][]deduplication.FileRecord)

	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		if _, seen := buckets[k]; !seen {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], r)
	}

	var groups []FileGroup
	for _, k := range order {
		if len(buckets[k]) >= minSize {
			groups = append(groups, FileGroup{Files: buckets[k]})
		}
	}
	return groups
}
