package action

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/substantialcattle5/cleanfiles/internal/classify"
	"github.com/substantialcattle5/cleanfiles/internal/config"
	"github.com/substantialcattle5/cleanfiles/internal/fs"
	"github.com/substantialcattle5/cleanfiles/internal/logger"
)

// Input supplies the answers some actions need from the user
type Input interface {
	// SelectFile returns the 0-based index of the path to keep
	SelectFile(paths []string) (int, error)
	// NewName returns the new base name for path
	NewName(path string) (string, error)
}

// Notice describes one attempted mutation
type Notice struct {
	Op     string
	Path   string
	Target string
	Err    error
}

// Reporter receives a Notice for every mutation the executor attempts
type Reporter interface {
	Report(n Notice)
}

// OpError is returned when a filesystem mutation fails
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

type nopReporter struct{}

func (nopReporter) Report(Notice) {}

type handler func(e *Executor, paths []string) error

var handlers = map[Action]handler{
	Delete:            (*Executor).deleteAll,
	Skip:              (*Executor).skip,
	KeepNewest:        (*Executor).keepNewest,
	AutoFixPermission: (*Executor).fixPermission,
	AutoFixCharacters: (*Executor).fixCharacters,
	ManualRename:      (*Executor).manualRename,
	ReplaceOldWithNew: (*Executor).replaceOldWithNew,
	KeepSelected:      (*Executor).keepSelected,
	MoveToX:           (*Executor).moveToX,
	CopyToX:           (*Executor).copyToX,
}

// Executor applies actions to file groups
type Executor struct {
	fs       afero.Fs
	cfg      config.Config
	xRoot    string
	yRoots   []string
	input    Input
	reporter Reporter
}

// NewExecutor creates an executor. roots[0] is the primary tree and the rest
// are the secondary trees used for mirroring. A nil reporter discards notices.
func NewExecutor(fsys afero.Fs, cfg config.Config, roots []string, input Input, reporter Reporter) *Executor {
	if reporter == nil {
		reporter = nopReporter{}
	}

	e := &Executor{
		fs:       fsys,
		cfg:      cfg,
		input:    input,
		reporter: reporter,
	}
	if len(roots) > 0 {
		e.xRoot = roots[0]
		e.yRoots = roots[1:]
	}
	return e
}

// Execute applies a to group. Mutation failures are returned as *OpError;
// any other error comes from the Input and should end the session.
func (e *Executor) Execute(a Action, group classify.FileGroup) error {
	fn, ok := handlers[a]
	if !ok {
		return fmt.Errorf("unknown action %d", int(a))
	}
	if group.Len() == 0 {
		return errors.New("empty file group")
	}

	paths := group.Paths()
	if a.Scope() == ScopeSingle {
		paths = paths[:1]
	}

	logger.Get().Debug().Str("action", a.String()).Strs("paths", paths).Msg("dispatch")
	return fn(e, paths)
}

// fail reports a failed mutation and returns it as an *OpError
func (e *Executor) fail(op, path, target string, err error) error {
	e.reporter.Report(Notice{Op: op, Path: path, Target: target, Err: err})
	return &OpError{Op: op, Path: path, Err: err}
}

func (e *Executor) ok(op, path, target string) {
	e.reporter.Report(Notice{Op: op, Path: path, Target: target})
}

func (e *Executor) remove(path string) error {
	if err := e.fs.Remove(path); err != nil {
		return e.fail("delete", path, "", err)
	}
	e.ok("delete", path, "")
	return nil
}

// removeExcept deletes every path but paths[keep], stopping at the first
// failure.
func (e *Executor) removeExcept(paths []string, keep int) error {
	e.ok("keep", paths[keep], "")
	for i, path := range paths {
		if i == keep {
			continue
		}
		if err := e.remove(path); err != nil {
			return err
		}
	}
	return nil
}

// newest returns the index of the path with the greatest mtime. Ties go to
// the earlier path.
func (e *Executor) newest(paths []string) (int, error) {
	best := 0
	var bestTime time.Time
	for i, path := range paths {
		mtime, err := fs.ModTime(e.fs, path)
		if err != nil {
			return 0, e.fail("stat", path, "", err)
		}
		if i == 0 || mtime.After(bestTime) {
			best, bestTime = i, mtime
		}
	}
	return best, nil
}

func (e *Executor) deleteAll(paths []string) error {
	for _, path := range paths {
		if err := e.remove(path); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) skip(paths []string) error {
	e.ok("skip", paths[0], "")
	return nil
}

func (e *Executor) keepNewest(paths []string) error {
	keep, err := e.newest(paths)
	if err != nil {
		return err
	}
	return e.removeExcept(paths, keep)
}

func (e *Executor) fixPermission(paths []string) error {
	path := paths[0]
	perm, err := e.cfg.PermissionReplacement()
	if err != nil {
		return e.fail("chmod", path, e.cfg.BadPermissionReplacement, err)
	}
	if err := e.fs.Chmod(path, perm); err != nil {
		return e.fail("chmod", path, e.cfg.BadPermissionReplacement, err)
	}
	e.ok("chmod", path, e.cfg.BadPermissionReplacement)
	return nil
}

func (e *Executor) fixCharacters(paths []string) error {
	path := paths[0]
	fixed := e.cfg.FixName(filepath.Base(path))
	if fixed == filepath.Base(path) {
		e.ok("skip", path, "")
		return nil
	}
	return e.rename(path, fixed, fs.RenameInDirExclusive)
}

func (e *Executor) manualRename(paths []string) error {
	path := paths[0]
	name, err := e.input.NewName(path)
	if err != nil {
		return err
	}
	return e.rename(path, name, fs.RenameInDir)
}

func (e *Executor) rename(path, name string, move func(afero.Fs, string, string) (string, error)) error {
	target := filepath.Join(filepath.Dir(path), name)
	renamed, err := move(e.fs, path, name)
	if err != nil {
		return e.fail("rename", path, target, err)
	}
	e.ok("rename", path, renamed)
	return nil
}

func (e *Executor) replaceOldWithNew(paths []string) error {
	src, err := e.newest(paths)
	if err != nil {
		return err
	}

	for i, path := range paths {
		if i == src {
			continue
		}
		if err := fs.CopyFile(e.fs, paths[src], path); err != nil {
			return e.fail("replace", path, paths[src], err)
		}
		e.ok("replace", path, paths[src])
	}
	return nil
}

func (e *Executor) keepSelected(paths []string) error {
	keep, err := e.input.SelectFile(paths)
	if err != nil {
		return err
	}
	if keep < 0 || keep >= len(paths) {
		return e.fail("keep", paths[0], "", fmt.Errorf("selection %d out of range 1-%d", keep+1, len(paths)))
	}
	return e.removeExcept(paths, keep)
}

func (e *Executor) moveToX(paths []string) error {
	return e.transfer("move", paths[0], fs.MoveInto)
}

func (e *Executor) copyToX(paths []string) error {
	return e.transfer("copy", paths[0], fs.CopyInto)
}

// transfer places path into its mirrored directory under the primary tree
func (e *Executor) transfer(op, path string, place func(afero.Fs, string, string) (string, error)) error {
	dir, err := fs.MirrorDir(e.fs, e.xRoot, e.yRoots, filepath.Dir(path))
	if err != nil {
		if errors.Is(err, fs.ErrNoMatchingRoot) {
			logger.Get().Error().Err(err).Str("path", path).Strs("roots", e.yRoots).Msg("file outside every secondary root")
		}
		return e.fail(op, path, "", err)
	}

	dst, err := place(e.fs, path, dir)
	if err != nil {
		return e.fail(op, path, filepath.Join(dir, filepath.Base(path)), err)
	}
	e.ok(op, path, dst)
	return nil
}
