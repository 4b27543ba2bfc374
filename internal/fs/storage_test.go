package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/substantialcattle5/cleanfiles/testutil"
)

func TestCopyFile(t *testing.T) {
	dir := testutil.TempDir(t, "copy")
	src := testutil.CreateTestFileWithMode(t, dir, "new.txt", "fresh content", 0o600)
	dst := testutil.CreateTestFile(t, dir, "old.txt", "stale")

	if err := CopyFile(afero.NewOsFs(), src, dst); err != nil {
		t.Fatalf("CopyFile() unexpected error: %v", err)
	}

	testutil.AssertFileContent(t, dst, "fresh content")
	testutil.AssertFileMode(t, dst, 0o600)
	testutil.AssertFileContent(t, src, "fresh content")
}

func TestCopyInto(t *testing.T) {
	dir := testutil.TempDir(t, "copy-into")
	src := testutil.CreateTestFile(t, dir, filepath.Join("y", "f.txt"), "data")
	target := filepath.Join(dir, "x")
	testutil.CreateTestFile(t, target, "keep.txt", "")

	fsys := afero.NewOsFs()
	got, err := CopyInto(fsys, src, target)
	if err != nil {
		t.Fatalf("CopyInto() unexpected error: %v", err)
	}
	if got != filepath.Join(target, "f.txt") {
		t.Errorf("CopyInto() = %q", got)
	}
	testutil.AssertFileContent(t, got, "data")
	testutil.AssertFileExists(t, src)

	if _, err := CopyInto(fsys, src, target); !errors.Is(err, ErrDestinationExists) {
		t.Errorf("second CopyInto() error = %v, want ErrDestinationExists", err)
	}
}

func TestMoveInto(t *testing.T) {
	dir := testutil.TempDir(t, "move-into")
	src := testutil.CreateTestFile(t, dir, filepath.Join("y", "f.txt"), "data")
	target := filepath.Join(dir, "x")
	testutil.CreateTestFile(t, target, "other.txt", "")

	got, err := MoveInto(afero.NewOsFs(), src, target)
	if err != nil {
		t.Fatalf("MoveInto() unexpected error: %v", err)
	}
	testutil.AssertFileContent(t, got, "data")
	testutil.AssertFileNotExists(t, src)
}

func TestMoveIntoRefusesOverwrite(t *testing.T) {
	dir := testutil.TempDir(t, "move-overwrite")
	src := testutil.CreateTestFile(t, dir, filepath.Join("y", "f.txt"), "new")
	existing := testutil.CreateTestFile(t, dir, filepath.Join("x", "f.txt"), "old")

	_, err := MoveInto(afero.NewOsFs(), src, filepath.Dir(existing))
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("MoveInto() error = %v, want ErrDestinationExists", err)
	}
	testutil.AssertFileContent(t, existing, "old")
	testutil.AssertFileExists(t, src)
}

func TestRenameInDir(t *testing.T) {
	dir := testutil.TempDir(t, "rename")
	path := testutil.CreateTestFile(t, filepath.Join(dir, "sub"), "a:b.txt", "x")

	fsys := afero.NewOsFs()
	got, err := RenameInDir(fsys, path, "a_b.txt")
	if err != nil {
		t.Fatalf("RenameInDir() unexpected error: %v", err)
	}
	if got != filepath.Join(dir, "sub", "a_b.txt") {
		t.Errorf("RenameInDir() = %q", got)
	}
	testutil.AssertFileExists(t, got)
	testutil.AssertFileNotExists(t, path)

	for _, bad := range []string{"", ".", "..", filepath.Join("..", "escape.txt")} {
		if _, err := RenameInDir(fsys, got, bad); err == nil {
			t.Errorf("RenameInDir(%q) expected error, got nil", bad)
		}
	}
}

func TestCopyFileRefusesSameFile(t *testing.T) {
	dir := testutil.TempDir(t, "copy-same")
	src := testutil.CreateTestFile(t, dir, "a.txt", "precious")
	link := filepath.Join(dir, "b.txt")
	if err := os.Link(src, link); err != nil {
		t.Skipf("hard links not supported: %v", err)
	}

	fsys := afero.NewOsFs()
	for _, dst := range []string{src, link} {
		if err := CopyFile(fsys, src, dst); !errors.Is(err, ErrSameFile) {
			t.Errorf("CopyFile(%s, %s) error = %v, want ErrSameFile", src, dst, err)
		}
	}
	testutil.AssertFileContent(t, src, "precious")
}

func TestRenameInDirExclusive(t *testing.T) {
	dir := testutil.TempDir(t, "rename-exclusive")
	path := testutil.CreateTestFile(t, dir, "a:b.txt", "new")
	existing := testutil.CreateTestFile(t, dir, "a_b.txt", "old")

	fsys := afero.NewOsFs()
	if _, err := RenameInDirExclusive(fsys, path, "a_b.txt"); !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("RenameInDirExclusive() error = %v, want ErrDestinationExists", err)
	}
	testutil.AssertFileContent(t, existing, "old")
	testutil.AssertFileExists(t, path)

	got, err := RenameInDirExclusive(fsys, path, "a-b.txt")
	if err != nil {
		t.Fatalf("RenameInDirExclusive() unexpected error: %v", err)
	}
	testutil.AssertFileContent(t, got, "new")
}
