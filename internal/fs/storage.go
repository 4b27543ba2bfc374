package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
)

// CopyFile copies the content and permission bits of src to dst, replacing
// dst if it exists. It fails with ErrSameFile when dst is src under another
// name, since truncating dst would also empty src.
func CopyFile(fsys afero.Fs, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}

	dstInfo, err := fsys.Stat(dst)
	switch {
	case err == nil:
		if os.SameFile(info, dstInfo) {
			return fmt.Errorf("%w: %s and %s", ErrSameFile, src, dst)
		}
	case !os.IsNotExist(err):
		return err
	}

	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// OpenFile only applies the mode on creation
	return fsys.Chmod(dst, info.Mode().Perm())
}

// CopyInto copies src into dir under its base name. It refuses to replace an
// existing file and returns the new path.
func CopyInto(fsys afero.Fs, src, dir string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(src))
	if err := ensureAbsent(fsys, dst); err != nil {
		return "", err
	}
	if err := CopyFile(fsys, src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// MoveInto moves src into dir under its base name. It refuses to replace an
// existing file and falls back to copy and remove across devices.
func MoveInto(fsys afero.Fs, src, dir string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(src))
	if err := ensureAbsent(fsys, dst); err != nil {
		return "", err
	}

	err := fsys.Rename(src, dst)
	if err == nil {
		return dst, nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return "", err
	}

	if err := CopyFile(fsys, src, dst); err != nil {
		return "", err
	}
	if err := fsys.Remove(src); err != nil {
		return "", fmt.Errorf("copied to %s but failed to remove source: %w", dst, err)
	}
	return dst, nil
}

// RenameInDir renames path to newName inside the same directory and returns
// the new path. An existing file named newName is replaced.
func RenameInDir(fsys afero.Fs, path, newName string) (string, error) {
	dst, err := siblingPath(path, newName)
	if err != nil {
		return "", err
	}
	if err := fsys.Rename(path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// RenameInDirExclusive is RenameInDir that fails with ErrDestinationExists
// instead of replacing another file.
func RenameInDirExclusive(fsys afero.Fs, path, newName string) (string, error) {
	dst, err := siblingPath(path, newName)
	if err != nil {
		return "", err
	}
	if err := ensureAbsent(fsys, dst); err != nil {
		return "", err
	}
	if err := fsys.Rename(path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func siblingPath(path, newName string) (string, error) {
	if newName == "" || newName == "." || newName == ".." || newName != filepath.Base(newName) {
		return "", fmt.Errorf("invalid file name %q", newName)
	}
	return filepath.Join(filepath.Dir(path), newName), nil
}

func ensureAbsent(fsys afero.Fs, path string) error {
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDestinationExists, path)
	}
	return nil
}
