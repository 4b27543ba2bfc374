package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

var (
	// ErrInvalidDirectory is returned when a directory argument is missing or
	// not a directory.
	ErrInvalidDirectory = errors.New("invalid directory")

	// ErrNoMatchingRoot is returned by the mirror resolver when a path lies
	// under none of the secondary roots. Paths handed to the resolver always
	// come from the index, so this indicates a defect.
	ErrNoMatchingRoot = errors.New("no matching secondary root")

	// ErrDestinationExists is returned instead of overwriting a file in the
	// primary tree.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrSameFile is returned when source and destination of a copy are the
	// same file, for example two hard links to one inode.
	ErrSameFile = errors.New("source and destination are the same file")
)

// VerifyDirectories checks that every path exists and is a directory
func VerifyDirectories(fsys afero.Fs, dirs []string) error {
	if len(dirs) == 0 {
		return fmt.Errorf("%w: at least one directory is required", ErrInvalidDirectory)
	}

	for _, dir := range dirs {
		info, err := fsys.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s does not exist", ErrInvalidDirectory, dir)
			}
			if os.IsPermission(err) {
				return fmt.Errorf("%w: permission denied: %s", ErrInvalidDirectory, dir)
			}
			return fmt.Errorf("%w: error accessing %s: %v", ErrInvalidDirectory, dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", ErrInvalidDirectory, dir)
		}
	}
	return nil
}

// ResolveRoots makes every directory absolute and resolves symlinks so the
// walker, which does not follow links, can descend into them.
func ResolveRoots(dirs []string) ([]string, error) {
	resolved := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot resolve %s: %v", ErrInvalidDirectory, dir, err)
		}
		if target, err := filepath.EvalSymlinks(abs); err == nil {
			abs = target
		}
		resolved = append(resolved, abs)
	}
	return resolved, nil
}

// PermissionString renders permission bits as three octal digits, e.g. "644"
func PermissionString(mode os.FileMode) string {
	return fmt.Sprintf("%03o", mode.Perm())
}

// PermissionLabel renders permission bits as rwx triplets, e.g. "rw-r--r--"
func PermissionLabel(mode os.FileMode) string {
	return mode.Perm().String()[1:]
}

// FilePermission returns the octal permission string of path
func FilePermission(fsys afero.Fs, path string) (string, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return "", err
	}
	return PermissionString(info.Mode()), nil
}

// ModTime returns the modification time of path
func ModTime(fsys afero.Fs, path string) (time.Time, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
