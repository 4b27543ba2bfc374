/*
Copyright © 2025 SubstantialCattle5, nilaysharan.com
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/substantialcattle5/cleanfiles/internal/action"
	"github.com/substantialcattle5/cleanfiles/internal/classify"
	"github.com/substantialcattle5/cleanfiles/internal/config"
	"github.com/substantialcattle5/cleanfiles/internal/constants"
	"github.com/substantialcattle5/cleanfiles/internal/deduplication"
	"github.com/substantialcattle5/cleanfiles/internal/filelock"
	"github.com/substantialcattle5/cleanfiles/internal/fs"
	"github.com/substantialcattle5/cleanfiles/internal/history"
	"github.com/substantialcattle5/cleanfiles/internal/logger"
	"github.com/substantialcattle5/cleanfiles/internal/progress"
	"github.com/substantialcattle5/cleanfiles/internal/session"
	"github.com/substantialcattle5/cleanfiles/internal/ui"
)

const (
	statusCompleted   = "completed"
	statusInterrupted = "interrupted"
	statusFailed      = "failed"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] X [Y...]",
	Short: "Find problem files and clean them up interactively",
	Long: `Index the primary directory X and the secondary directories Y, classify
their files in the chosen mode and review the resulting groups one by one.

For every group you pick an action from the mode's menu. Answer "<n>*" instead
of "<n>" to apply the same action to every remaining group.

Example:
  cleanfiles run --mode temp ~/photos ~/backup/photos
  cleanfiles run --mode missing-in-x ~/music /media/usb/music
  cleanfiles run ~/docs                     # choose the mode interactively
  echo "1*" | cleanfiles run -m empty ~/docs`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("mode", "m", "", "Mode number (1-7) or name; asked interactively when omitted")
	runCmd.Flags().Bool("include-unique", false, "In duplicates mode also list content found only once")
	addHistoryFlag(runCmd)
	runCmd.Flags().Bool("no-history", false, "Do not record this session in the history file")
}

// addHistoryFlag registers --history on cmd
func addHistoryFlag(cmd *cobra.Command) {
	cmd.Flags().String("history", "", "Session history file, YAML when ending in .yaml/.yml (default is $HOME/"+constants.DefaultHistoryFileName+")")
}

// historyPath returns the --history flag or the default location
func historyPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("history"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot find home directory: %w", err)
	}
	return filepath.Join(home, constants.DefaultHistoryFileName), nil
}

func runSession(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	modeFlag, _ := cmd.Flags().GetString("mode")
	includeUnique, _ := cmd.Flags().GetBool("include-unique")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	cfgPath, err := configPath(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	fsys := afero.NewOsFs()
	if err := fs.VerifyDirectories(fsys, args); err != nil {
		return err
	}
	roots, err := fs.ResolveRoots(args)
	if err != nil {
		return err
	}

	lock, err := filelock.AcquireSession(roots[0])
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	out := cmd.OutOrStdout()
	chooser := ui.NewChooser(cmd.InOrStdin(), out)

	mode, err := resolveMode(modeFlag, chooser)
	if err != nil {
		return err
	}

	pm := progress.NewManager(progress.Options{Quiet: quiet, Verbose: verbose, Out: cmd.ErrOrStderr()})
	ctx := pm.SetupCancellation(cmd.Context())
	defer pm.Cleanup()

	start := time.Now()
	record := history.SessionRecord{
		ID:          uuid.New().String(),
		Timestamp:   start.UTC().Format(time.RFC3339),
		Mode:        mode.String(),
		Directories: roots,
	}

	summary, runErr := review(ctx, fsys, cfg, mode, roots, includeUnique, chooser, pm, out, quiet)

	record.Groups = summary.Groups
	record.TotalGroups = summary.Total
	record.Actions = summary.Actions
	record.Failures = len(summary.Failures)
	record.DurationMs = time.Since(start).Milliseconds()
	record.Status = sessionStatus(runErr)
	if pm.IsCancelled() {
		record.Status = statusInterrupted
	}
	if runErr != nil {
		record.Error = runErr.Error()
	}

	if !noHistory {
		if path, err := historyPath(cmd); err != nil {
			logger.Get().Warn().Err(err).Msg("session not recorded")
		} else if err := history.AddRecord(path, record); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to record session in %s: %v\n", path, err)
		}
	}

	if record.Status == statusInterrupted && !errors.Is(runErr, io.EOF) {
		return nil
	}
	return runErr
}

// review indexes the roots, classifies them and runs the interactive session
func review(ctx context.Context, fsys afero.Fs, cfg config.Config, mode classify.Mode, roots []string,
	includeUnique bool, chooser ui.Chooser, pm *progress.Manager, out io.Writer, quiet bool,
) (session.Summary, error) {
	summary := session.Summary{Mode: mode, Actions: map[string]int{}}

	pm.PrintInfo("Indexing %d director(ies)...\n", len(roots))
	indexer := deduplication.NewIndexer(fsys)
	indexer.SetProgressManager(pm)
	idx, err := indexer.Build(roots)
	if err != nil {
		return summary, fmt.Errorf("indexing failed: %w", err)
	}

	classifier := classify.New(fsys, cfg)
	classifier.IncludeUnique = includeUnique
	groups, err := classifier.Classify(mode, idx)
	if err != nil {
		return summary, err
	}

	console := ui.NewConsole(out, quiet)
	console.PrintBanner(mode, deduplication.ComputeStats(idx), len(groups))
	if len(groups) == 0 {
		console.Infof("Nothing to clean up in mode %s", mode.Title())
	}

	controller := session.New(session.Options{
		Mode:     mode,
		Config:   cfg,
		Fs:       fsys,
		Chooser:  chooser,
		Executor: action.NewExecutor(fsys, cfg, roots, chooser, console),
		Renderer: console,
	})

	summary, err = controller.Run(ctx, groups)
	console.PrintSummary(summary)
	return summary, err
}

// resolveMode parses --mode or asks the chooser for one
func resolveMode(flag string, chooser ui.Chooser) (classify.Mode, error) {
	if flag != "" {
		return classify.ParseMode(flag)
	}
	return chooser.SelectMode()
}

// sessionStatus classifies how a session ended
func sessionStatus(err error) string {
	switch {
	case err == nil:
		return statusCompleted
	case errors.Is(err, context.Canceled), errors.Is(err, ui.ErrCancelled), errors.Is(err, io.EOF):
		return statusInterrupted
	default:
		return statusFailed
	}
}
