package action

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/substantialcattle5/cleanfiles/internal/classify"
	"github.com/substantialcattle5/cleanfiles/internal/config"
	"github.com/substantialcattle5/cleanfiles/internal/deduplication"
	"github.com/substantialcattle5/cleanfiles/internal/fs"
	"github.com/substantialcattle5/cleanfiles/testutil"
)

type scriptedInput struct {
	selection int
	name      string
	err       error
	asked     int
}

func (s *scriptedInput) SelectFile(paths []string) (int, error) {
	s.asked++
	return s.selection, s.err
}

func (s *scriptedInput) NewName(path string) (string, error) {
	s.asked++
	return s.name, s.err
}

type recordingReporter struct {
	notices []Notice
}

func (r *recordingReporter) Report(n Notice) {
	r.notices = append(r.notices, n)
}

func (r *recordingReporter) ops() []string {
	ops := make([]string, len(r.notices))
	for i, n := range r.notices {
		ops[i] = n.Op
	}
	return ops
}

func group(paths ...string) classify.FileGroup {
	var g classify.FileGroup
	for _, p := range paths {
		g.Files = append(g.Files, deduplication.FileRecord{Path: p})
	}
	return g
}

func newOsExecutor(roots []string, input Input) (*Executor, *recordingReporter) {
	rep := &recordingReporter{}
	return NewExecutor(afero.NewOsFs(), config.Default(), roots, input, rep), rep
}

func TestDelete(t *testing.T) {
	dir := testutil.TempDir(t, "exec-delete")
	a := testutil.CreateTestFile(t, dir, "a.tmp", "a")
	b := testutil.CreateTestFile(t, dir, "b.tmp", "b")

	e, rep := newOsExecutor([]string{dir}, nil)
	if err := e.Execute(Delete, group(a, b)); err != nil {
		t.Fatalf("Execute(Delete) unexpected error: %v", err)
	}

	testutil.AssertFileNotExists(t, a)
	testutil.AssertFileNotExists(t, b)
	if got := rep.ops(); !reflect.DeepEqual(got, []string{"delete", "delete"}) {
		t.Errorf("notices = %v, want two deletes", got)
	}
}

func TestDeleteStopsAtFirstFailure(t *testing.T) {
	dir := testutil.TempDir(t, "exec-delete-fail")
	missing := filepath.Join(dir, "gone.txt")
	b := testutil.CreateTestFile(t, dir, "b.txt", "b")

	e, rep := newOsExecutor([]string{dir}, nil)
	err := e.Execute(Delete, group(missing, b))

	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("Execute(Delete) error = %v, want *OpError", err)
	}
	if opErr.Op != "delete" || opErr.Path != missing {
		t.Errorf("OpError = %+v, want delete of %s", opErr, missing)
	}
	testutil.AssertFileExists(t, b)
	if len(rep.notices) != 1 || rep.notices[0].Err == nil {
		t.Errorf("notices = %+v, want a single failure notice", rep.notices)
	}
}

func TestSkipLeavesFilesAlone(t *testing.T) {
	dir := testutil.TempDir(t, "exec-skip")
	a := testutil.CreateTestFile(t, dir, "a", "a")

	e, rep := newOsExecutor([]string{dir}, nil)
	if err := e.Execute(Skip, group(a)); err != nil {
		t.Fatalf("Execute(Skip) unexpected error: %v", err)
	}
	testutil.AssertFileContent(t, a, "a")
	if got := rep.ops(); !reflect.DeepEqual(got, []string{"skip"}) {
		t.Errorf("notices = %v, want [skip]", got)
	}
}

func TestKeepNewest(t *testing.T) {
	dir := testutil.TempDir(t, "exec-newest")
	base := time.Now().Add(-time.Hour)

	oldest := testutil.CreateTestFile(t, dir, "a/report.txt", "v1")
	newest := testutil.CreateTestFile(t, dir, "b/report.txt", "v3")
	middle := testutil.CreateTestFile(t, dir, "c/report.txt", "v2")
	testutil.SetModTime(t, oldest, base)
	testutil.SetModTime(t, newest, base.Add(20*time.Minute))
	testutil.SetModTime(t, middle, base.Add(10*time.Minute))

	e, _ := newOsExecutor([]string{dir}, nil)
	if err := e.Execute(KeepNewest, group(oldest, newest, middle)); err != nil {
		t.Fatalf("Execute(KeepNewest) unexpected error: %v", err)
	}

	testutil.AssertFileContent(t, newest, "v3")
	testutil.AssertFileNotExists(t, oldest)
	testutil.AssertFileNotExists(t, middle)

	// a second pass over the survivor changes nothing
	if err := e.Execute(KeepNewest, group(newest)); err != nil {
		t.Fatalf("second Execute(KeepNewest) unexpected error: %v", err)
	}
	testutil.AssertFileContent(t, newest, "v3")
}

func TestKeepNewestTieKeepsFirst(t *testing.T) {
	dir := testutil.TempDir(t, "exec-newest-tie")
	mtime := time.Now().Add(-time.Hour)

	first := testutil.CreateTestFile(t, dir, "first", "x")
	second := testutil.CreateTestFile(t, dir, "second", "x")
	testutil.SetModTime(t, first, mtime)
	testutil.SetModTime(t, second, mtime)

	e, _ := newOsExecutor([]string{dir}, nil)
	if err := e.Execute(KeepNewest, group(first, second)); err != nil {
		t.Fatalf("Execute(KeepNewest) unexpected error: %v", err)
	}
	testutil.AssertFileExists(t, first)
	testutil.AssertFileNotExists(t, second)
}

func TestAutoFixPermission(t *testing.T) {
	dir := testutil.TempDir(t, "exec-chmod")
	path := testutil.CreateTestFileWithMode(t, dir, "open.sh", "echo", 0o777)

	e, rep := newOsExecutor([]string{dir}, nil)
	if err := e.Execute(AutoFixPermission, group(path)); err != nil {
		t.Fatalf("Execute(AutoFixPermission) unexpected error: %v", err)
	}
	testutil.AssertFileMode(t, path, 0o644)
	if rep.notices[0].Target != "644" {
		t.Errorf("notice target = %q, want 644", rep.notices[0].Target)
	}
}

func TestAutoFixCharacters(t *testing.T) {
	dir := testutil.TempDir(t, "exec-fixchars")
	path := testutil.CreateTestFile(t, dir, "what?is;this.txt", "data")

	e, rep := newOsExecutor([]string{dir}, nil)
	if err := e.Execute(AutoFixCharacters, group(path)); err != nil {
		t.Fatalf("Execute(AutoFixCharacters) unexpected error: %v", err)
	}

	fixed := filepath.Join(dir, "what_is_this.txt")
	testutil.AssertFileNotExists(t, path)
	testutil.AssertFileContent(t, fixed, "data")
	if rep.notices[0].Target != fixed {
		t.Errorf("notice target = %q, want %q", rep.notices[0].Target, fixed)
	}

	// already clean: nothing to rename
	if err := e.Execute(AutoFixCharacters, group(fixed)); err != nil {
		t.Fatalf("second Execute(AutoFixCharacters) unexpected error: %v", err)
	}
	testutil.AssertFileContent(t, fixed, "data")
}

func TestAutoFixCharactersKeepsExistingFile(t *testing.T) {
	dir := testutil.TempDir(t, "exec-fixchars-clash")
	path := testutil.CreateTestFile(t, dir, "a?b.txt", "renamed")
	existing := testutil.CreateTestFile(t, dir, "a_b.txt", "existing")

	e, rep := newOsExecutor([]string{dir}, nil)
	err := e.Execute(AutoFixCharacters, group(path))

	var opErr *OpError
	if !errors.As(err, &opErr) || !errors.Is(err, fs.ErrDestinationExists) {
		t.Fatalf("Execute(AutoFixCharacters) error = %v, want *OpError wrapping ErrDestinationExists", err)
	}
	testutil.AssertFileContent(t, existing, "existing")
	testutil.AssertFileContent(t, path, "renamed")
	if len(rep.notices) != 1 || rep.notices[0].Err == nil {
		t.Errorf("notices = %+v, want a single failure notice", rep.notices)
	}
}

func TestManualRename(t *testing.T) {
	dir := testutil.TempDir(t, "exec-rename")
	path := testutil.CreateTestFile(t, dir, "sub/bad|name", "data")

	in := &scriptedInput{name: "good-name"}
	e, _ := newOsExecutor([]string{dir}, in)
	if err := e.Execute(ManualRename, group(path)); err != nil {
		t.Fatalf("Execute(ManualRename) unexpected error: %v", err)
	}

	testutil.AssertFileContent(t, filepath.Join(dir, "sub", "good-name"), "data")
	testutil.AssertFileNotExists(t, path)
}

func TestManualRenameInputError(t *testing.T) {
	dir := testutil.TempDir(t, "exec-rename-eof")
	path := testutil.CreateTestFile(t, dir, "bad|name", "data")

	in := &scriptedInput{err: errors.New("input closed")}
	e, _ := newOsExecutor([]string{dir}, in)
	err := e.Execute(ManualRename, group(path))
	if err == nil {
		t.Fatal("Execute(ManualRename) expected error, got nil")
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		t.Errorf("input error reported as OpError: %v", err)
	}
	testutil.AssertFileExists(t, path)
}

func TestManualRenameRejectsPath(t *testing.T) {
	dir := testutil.TempDir(t, "exec-rename-path")
	path := testutil.CreateTestFile(t, dir, "bad|name", "data")

	in := &scriptedInput{name: "../escape"}
	e, _ := newOsExecutor([]string{dir}, in)
	var opErr *OpError
	if err := e.Execute(ManualRename, group(path)); !errors.As(err, &opErr) {
		t.Fatalf("Execute(ManualRename) error = %v, want *OpError", err)
	}
	testutil.AssertFileExists(t, path)
}

func TestReplaceOldWithNew(t *testing.T) {
	dir := testutil.TempDir(t, "exec-replace")
	base := time.Now().Add(-time.Hour)

	old := testutil.CreateTestFileWithMode(t, dir, "x/config.ini", "old", 0o600)
	fresh := testutil.CreateTestFileWithMode(t, dir, "y/config.ini", "new", 0o640)
	testutil.SetModTime(t, old, base)
	testutil.SetModTime(t, fresh, base.Add(time.Minute))

	e, rep := newOsExecutor([]string{dir}, nil)
	if err := e.Execute(ReplaceOldWithNew, group(old, fresh)); err != nil {
		t.Fatalf("Execute(ReplaceOldWithNew) unexpected error: %v", err)
	}

	testutil.AssertFileContent(t, old, "new")
	testutil.AssertFileMode(t, old, 0o640)
	testutil.AssertFileContent(t, fresh, "new")
	if got := rep.ops(); !reflect.DeepEqual(got, []string{"replace"}) {
		t.Errorf("notices = %v, want [replace]", got)
	}
}

func TestReplaceOldWithNewHardLink(t *testing.T) {
	dir := testutil.TempDir(t, "exec-replace-link")
	base := time.Now().Add(-time.Hour)

	old := testutil.CreateTestFile(t, dir, "a/report.txt", "precious")
	linked := filepath.Join(dir, "b", "report.txt")
	if err := os.MkdirAll(filepath.Dir(linked), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Link(old, linked); err != nil {
		t.Skipf("hard links not supported: %v", err)
	}
	// both names share one inode, so they share the mtime too
	testutil.SetModTime(t, linked, base)

	e, rep := newOsExecutor([]string{dir}, nil)
	err := e.Execute(ReplaceOldWithNew, group(old, linked))

	var opErr *OpError
	if !errors.As(err, &opErr) || !errors.Is(err, fs.ErrSameFile) {
		t.Fatalf("Execute(ReplaceOldWithNew) error = %v, want *OpError wrapping ErrSameFile", err)
	}
	testutil.AssertFileContent(t, old, "precious")
	testutil.AssertFileContent(t, linked, "precious")
	if len(rep.notices) != 1 || rep.notices[0].Err == nil || rep.notices[0].Op != "replace" {
		t.Errorf("notices = %+v, want a single failed replace", rep.notices)
	}
}

func TestKeepSelected(t *testing.T) {
	dir := testutil.TempDir(t, "exec-select")
	a := testutil.CreateTestFile(t, dir, "a", "same")
	b := testutil.CreateTestFile(t, dir, "b", "same")
	c := testutil.CreateTestFile(t, dir, "c", "same")

	in := &scriptedInput{selection: 1}
	e, _ := newOsExecutor([]string{dir}, in)
	if err := e.Execute(KeepSelected, group(a, b, c)); err != nil {
		t.Fatalf("Execute(KeepSelected) unexpected error: %v", err)
	}

	testutil.AssertFileNotExists(t, a)
	testutil.AssertFileExists(t, b)
	testutil.AssertFileNotExists(t, c)
	if in.asked != 1 {
		t.Errorf("input asked %d times, want 1", in.asked)
	}
}

func TestKeepSelectedOutOfRange(t *testing.T) {
	dir := testutil.TempDir(t, "exec-select-range")
	a := testutil.CreateTestFile(t, dir, "a", "same")
	b := testutil.CreateTestFile(t, dir, "b", "same")

	e, rep := newOsExecutor([]string{dir}, &scriptedInput{selection: 5})
	var opErr *OpError
	if err := e.Execute(KeepSelected, group(a, b)); !errors.As(err, &opErr) {
		t.Fatalf("Execute(KeepSelected) error = %v, want *OpError", err)
	}
	testutil.AssertFileExists(t, a)
	testutil.AssertFileExists(t, b)
	if opErr.Path != a || len(rep.notices) != 1 || rep.notices[0].Path != a {
		t.Errorf("failure reported for %q (notices %+v), want %q", opErr.Path, rep.notices, a)
	}
}

func TestCopyAndMoveToX(t *testing.T) {
	tests := []struct {
		name       string
		action     Action
		keepSource bool
	}{
		{"Copy", CopyToX, true},
		{"Move", MoveToX, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			src := "/b/sub/deep/f.txt"
			if err := fsys.MkdirAll("/a", 0o755); err != nil {
				t.Fatal(err)
			}
			if err := fsys.MkdirAll("/b/sub/deep", 0o755); err != nil {
				t.Fatal(err)
			}
			if err := afero.WriteFile(fsys, src, []byte("payload"), 0o644); err != nil {
				t.Fatal(err)
			}

			rep := &recordingReporter{}
			e := NewExecutor(fsys, config.Default(), []string{"/a", "/b/sub"}, nil, rep)
			if err := e.Execute(tt.action, group(src)); err != nil {
				t.Fatalf("Execute(%v) unexpected error: %v", tt.action, err)
			}

			data, err := afero.ReadFile(fsys, "/a/deep/f.txt")
			if err != nil || string(data) != "payload" {
				t.Fatalf("mirrored file = %q, %v; want payload", data, err)
			}

			exists, _ := afero.Exists(fsys, src)
			if exists != tt.keepSource {
				t.Errorf("source exists = %v, want %v", exists, tt.keepSource)
			}
			if rep.notices[0].Target != "/a/deep/f.txt" {
				t.Errorf("notice target = %q, want /a/deep/f.txt", rep.notices[0].Target)
			}
		})
	}
}

func TestCopyToXRefusesOverwrite(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/y", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := fsys.MkdirAll("/x", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, "/y/f", []byte("from y"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, "/x/f", []byte("from x"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := NewExecutor(fsys, config.Default(), []string{"/x", "/y"}, nil, nil)
	err := e.Execute(CopyToX, group("/y/f"))
	if !errors.Is(err, fs.ErrDestinationExists) {
		t.Fatalf("Execute(CopyToX) error = %v, want ErrDestinationExists", err)
	}

	data, _ := afero.ReadFile(fsys, "/x/f")
	if string(data) != "from x" {
		t.Errorf("X file content = %q, want it untouched", data)
	}
}

func TestMoveToXOutsideRoots(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/elsewhere", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, "/elsewhere/f", []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := NewExecutor(fsys, config.Default(), []string{"/x", "/y"}, nil, nil)
	err := e.Execute(MoveToX, group("/elsewhere/f"))

	var opErr *OpError
	if !errors.As(err, &opErr) || !errors.Is(err, fs.ErrNoMatchingRoot) {
		t.Fatalf("Execute(MoveToX) error = %v, want OpError wrapping ErrNoMatchingRoot", err)
	}
	if exists, _ := afero.Exists(fsys, "/elsewhere/f"); !exists {
		t.Error("source was removed despite the failure")
	}
}

func TestSingleScopeUsesFirstMember(t *testing.T) {
	dir := testutil.TempDir(t, "exec-scope")
	first := testutil.CreateTestFileWithMode(t, dir, "first", "", 0o777)
	second := testutil.CreateTestFileWithMode(t, dir, "second", "", 0o777)

	e, _ := newOsExecutor([]string{dir}, nil)
	if err := e.Execute(AutoFixPermission, group(first, second)); err != nil {
		t.Fatalf("Execute(AutoFixPermission) unexpected error: %v", err)
	}
	testutil.AssertFileMode(t, first, 0o644)
	testutil.AssertFileMode(t, second, os.FileMode(0o777))
}

func TestExecuteEmptyGroup(t *testing.T) {
	e := NewExecutor(afero.NewMemMapFs(), config.Default(), []string{"/x"}, nil, nil)
	if err := e.Execute(Delete, classify.FileGroup{}); err == nil {
		t.Error("Execute() expected error for empty group, got nil")
	}
}
