// Package session drives the interactive review of classified file groups:
// it presents each group, asks for an action and dispatches it.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/substantialcattle5/cleanfiles/internal/action"
	"github.com/substantialcattle5/cleanfiles/internal/classify"
	"github.com/substantialcattle5/cleanfiles/internal/config"
	"github.com/substantialcattle5/cleanfiles/internal/fs"
	"github.com/substantialcattle5/cleanfiles/internal/logger"
)

// ErrInvalidChoice is reported when a chooser returns an index outside the
// action menu. The user is asked again.
var ErrInvalidChoice = errors.New("invalid choice")

// Chooser collects the user's decisions
type Chooser interface {
	action.Input

	// ChooseAction returns the 1-based index of the chosen label and whether
	// the choice should stick for the rest of the run.
	ChooseAction(labels []string) (int, bool, error)
}

// Executor applies an action to a group
type Executor interface {
	Execute(a action.Action, group classify.FileGroup) error
}

// FileView is one group member as presented to the user
type FileView struct {
	Path   string
	Detail string
}

// GroupView is a group as presented to the user
type GroupView struct {
	Index int
	Total int
	Mode  classify.Mode
	Files []FileView
}

// Renderer presents session progress
type Renderer interface {
	RenderGroup(v GroupView)
	RenderError(err error)
	RenderGroupEnd()
}

// Failure records a dispatch that did not complete
type Failure struct {
	Group  int
	Action action.Action
	Err    error
}

// Summary is the outcome of a session
type Summary struct {
	Mode     classify.Mode
	Groups   int
	Total    int
	Actions  map[string]int
	Failures []Failure
}

// Dispatched returns the number of actions dispatched
func (s Summary) Dispatched() int {
	n := 0
	for _, count := range s.Actions {
		n += count
	}
	return n
}

// Options holds the collaborators of a Controller
type Options struct {
	Mode     classify.Mode
	Config   config.Config
	Fs       afero.Fs
	Chooser  Chooser
	Executor Executor
	Renderer Renderer
}

// Controller runs one review session
type Controller struct {
	mode     classify.Mode
	fs       afero.Fs
	chooser  Chooser
	executor Executor
	renderer Renderer
	actions  []action.Action
	labels   []string
}

// New creates a controller for opts.Mode
func New(opts Options) *Controller {
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	actions := action.Catalog(opts.Mode)
	return &Controller{
		mode:     opts.Mode,
		fs:       fsys,
		chooser:  opts.Chooser,
		executor: opts.Executor,
		renderer: opts.Renderer,
		actions:  actions,
		labels:   action.Labels(actions, opts.Config),
	}
}

// Run presents every group in order. Failed dispatches are recorded and the
// run continues; a chooser error or a cancelled context ends the run early
// with the summary so far.
func (c *Controller) Run(ctx context.Context, groups []classify.FileGroup) (Summary, error) {
	summary := Summary{
		Mode:    c.mode,
		Total:   len(groups),
		Actions: make(map[string]int),
	}

	sticky := -1
	for i, group := range groups {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		c.renderer.RenderGroup(c.view(i+1, len(groups), group))
		summary.Groups++

		choice := sticky
		if choice < 0 {
			idx, stick, err := c.choose()
			if err != nil {
				return summary, err
			}
			choice = idx
			if stick {
				sticky = idx
			}
		}

		a := c.actions[choice]
		summary.Actions[a.String()]++

		if err := c.executor.Execute(a, group); err != nil {
			var opErr *action.OpError
			if !errors.As(err, &opErr) {
				return summary, err
			}
			summary.Failures = append(summary.Failures, Failure{Group: i + 1, Action: a, Err: err})
			logger.Get().Debug().Err(err).Int("group", i+1).Str("action", a.String()).Msg("dispatch failed")
		}

		c.renderer.RenderGroupEnd()
	}

	return summary, nil
}

// choose asks until the chooser returns an index inside the menu and returns
// it 0-based.
func (c *Controller) choose() (int, bool, error) {
	for {
		idx, sticky, err := c.chooser.ChooseAction(c.labels)
		if err != nil {
			return 0, false, err
		}
		if idx >= 1 && idx <= len(c.actions) {
			return idx - 1, sticky, nil
		}
		c.renderer.RenderError(fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidChoice, idx, len(c.actions)))
	}
}

func (c *Controller) view(index, total int, group classify.FileGroup) GroupView {
	v := GroupView{Index: index, Total: total, Mode: c.mode}
	for _, path := range group.Paths() {
		f := FileView{Path: path}
		if c.mode == classify.BadPermission {
			if info, err := c.fs.Stat(path); err == nil {
				f.Detail = fs.PermissionLabel(info.Mode())
			}
		}
		v.Files = append(v.Files, f)
	}
	return v
}
