package deduplication

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/substantialcattle5/cleanfiles/internal/logger"
)

// ProgressManager is an interface for progress reporting
type ProgressManager interface {
	InitTotalProgress(totalBytes int64, description string)
	UpdateTotalProgress(bytes int64)
	FinishTotalProgress()
	PrintVerbose(format string, args ...interface{})
}

// Indexer builds a HashIndex from directory trees
type Indexer struct {
	fs          afero.Fs
	progressMgr ProgressManager
}

type pendingFile struct {
	path    string
	size    int64
	primary bool
}

// NewIndexer creates an indexer over the given filesystem
func NewIndexer(fsys afero.Fs) *Indexer {
	return &Indexer{
		fs:          fsys,
		progressMgr: nil, // Will be set later if needed
	}
}

// SetProgressManager sets the progress manager for hashing progress
func (ix *Indexer) SetProgressManager(pm ProgressManager) {
	ix.progressMgr = pm
}

// Build indexes roots. roots[0] is the primary tree X and roots[1:] are the
// secondary trees Y. Any unreadable file aborts the whole build.
func (ix *Indexer) Build(roots []string) (*HashIndex, error) {
	if len(roots) == 0 {
		return nil, errors.New("at least one directory is required")
	}

	var pending []pendingFile
	var totalBytes int64
	seen := make(map[string]struct{})

	for i, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
		}

		err = afero.Walk(ix.fs, absRoot, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return fmt.Errorf("failed to walk %s: %w", path, err)
			}

			// Skip directories, symlinks and special files
			if !info.Mode().IsRegular() {
				return nil
			}

			path = filepath.Clean(path)
			// nested roots: first root to reach a file owns it
			if _, dup := seen[path]; dup {
				return nil
			}
			seen[path] = struct{}{}

			pending = append(pending, pendingFile{path: path, size: info.Size(), primary: i == 0})
			totalBytes += info.Size()
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Get().Debug().Int("files", len(pending)).Int64("bytes", totalBytes).Msg("collected files")

	if ix.progressMgr != nil {
		ix.progressMgr.InitTotalProgress(totalBytes, "Hashing")
	}

	idx := NewHashIndex()
	for _, f := range pending {
		hash, err := HashFile(ix.fs, f.path)
		if err != nil {
			return nil, err
		}
		idx.add(FileRecord{Path: f.path, Hash: hash}, f.size, f.primary)

		if ix.progressMgr != nil {
			ix.progressMgr.UpdateTotalProgress(f.size)
			ix.progressMgr.PrintVerbose("  └─ %s %s\n", hash, f.path)
		}
	}

	if ix.progressMgr != nil {
		ix.progressMgr.FinishTotalProgress()
	}

	idx.sort()
	logger.Get().Debug().Int("x", len(idx.X)).Int("y", len(idx.Y)).Int("hashes", len(idx.Counts)).Msg("index built")
	return idx, nil
}
