package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/substantialcattle5/cleanfiles/internal/constants"
)

// EnsureDirectory ensures a directory exists, creating it if necessary
func EnsureDirectory(fsys afero.Fs, path string) error {
	if _, err := fsys.Stat(path); os.IsNotExist(err) {
		return fsys.MkdirAll(path, constants.StandardDirPerms)
	} else if err != nil {
		return err
	}
	return nil
}

// relativeTo returns dir relative to root, and false when dir is not root or
// below it. Matching is per path element so /b never matches /bc.
func relativeTo(root, dir string) (string, bool) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// MirrorPath maps dir, a directory under one of yRoots, onto the same
// root-relative location under xRoot. The deepest matching Y root wins.
func MirrorPath(xRoot string, yRoots []string, dir string) (string, error) {
	dir = filepath.Clean(dir)

	best := ""
	bestRel := ""
	for _, yRoot := range yRoots {
		yRoot = filepath.Clean(yRoot)
		rel, ok := relativeTo(yRoot, dir)
		if !ok {
			continue
		}
		if len(yRoot) > len(best) {
			best, bestRel = yRoot, rel
		}
	}

	if best == "" {
		return "", fmt.Errorf("%w: %s", ErrNoMatchingRoot, dir)
	}

	return filepath.Join(filepath.Clean(xRoot), bestRel), nil
}

// MirrorDir resolves the mirrored location of dir with MirrorPath and creates
// it, with any missing parents, under xRoot.
func MirrorDir(fsys afero.Fs, xRoot string, yRoots []string, dir string) (string, error) {
	target, err := MirrorPath(xRoot, yRoots, dir)
	if err != nil {
		return "", err
	}

	if err := EnsureDirectory(fsys, target); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", target, err)
	}

	return target, nil
}
