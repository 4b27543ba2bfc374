package fs

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/substantialcattle5/cleanfiles/testutil"
)

func TestMirrorPath(t *testing.T) {
	tests := []struct {
		name    string
		x       string
		ys      []string
		dir     string
		want    string
		wantErr bool
	}{
		{name: "nested directory", x: "/a", ys: []string{"/b"}, dir: "/b/sub", want: "/a/sub"},
		{name: "root itself", x: "/a", ys: []string{"/b"}, dir: "/b", want: "/a"},
		{name: "second root", x: "/a", ys: []string{"/b", "/c"}, dir: "/c/d/e", want: "/a/d/e"},
		{name: "deepest root wins", x: "/a", ys: []string{"/b", "/b/inner"}, dir: "/b/inner/z", want: "/a/z"},
		{name: "trailing slash root", x: "/a/", ys: []string{"/b/"}, dir: "/b/sub", want: "/a/sub"},
		{name: "sibling with common prefix", x: "/a", ys: []string{"/b"}, dir: "/bc/sub", wantErr: true},
		{name: "outside every root", x: "/a", ys: []string{"/b"}, dir: "/elsewhere", wantErr: true},
		{name: "no secondary roots", x: "/a", ys: nil, dir: "/b/sub", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MirrorPath(tt.x, tt.ys, tt.dir)
			if tt.wantErr {
				if !errors.Is(err, ErrNoMatchingRoot) {
					t.Fatalf("MirrorPath() error = %v, want ErrNoMatchingRoot", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("MirrorPath() unexpected error: %v", err)
			}
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("MirrorPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMirrorDirCreatesDirectories(t *testing.T) {
	base := testutil.TempDir(t, "mirror")
	x := filepath.Join(base, "a")
	y := filepath.Join(base, "b")
	file := testutil.CreateTestFile(t, y, filepath.Join("sub", "f.txt"), "payload")

	fsys := afero.NewOsFs()
	got, err := MirrorDir(fsys, x, []string{y}, filepath.Dir(file))
	if err != nil {
		t.Fatalf("MirrorDir() unexpected error: %v", err)
	}

	want := filepath.Join(x, "sub")
	if got != want {
		t.Errorf("MirrorDir() = %q, want %q", got, want)
	}
	testutil.AssertDirExists(t, want)

	// idempotent once the directory exists
	again, err := MirrorDir(fsys, x, []string{y}, filepath.Dir(file))
	if err != nil || again != want {
		t.Errorf("second MirrorDir() = %q, %v; want %q, nil", again, err, want)
	}
}

func TestMirrorDirNoMatchingRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	_, err := MirrorDir(fsys, "/a", []string{"/b"}, "/c/d")
	if !errors.Is(err, ErrNoMatchingRoot) {
		t.Fatalf("MirrorDir() error = %v, want ErrNoMatchingRoot", err)
	}
	if exists, _ := afero.DirExists(fsys, "/a"); exists {
		t.Error("MirrorDir() should not create anything when no root matches")
	}
}
