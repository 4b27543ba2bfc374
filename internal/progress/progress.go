// Package progress reports indexing progress and turns interrupt signals into
// context cancellation.
package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/schollz/progressbar/v3"
)

// Options configures progress bar behavior
type Options struct {
	Quiet   bool
	Verbose bool
	// Out receives bars and messages; nil means stderr.
	Out io.Writer
}

// Manager handles the hashing progress bar and cancellation
type Manager struct {
	options    Options
	out        io.Writer
	totalBar   *progressbar.ProgressBar
	cancelFunc context.CancelFunc
	cancelled  bool
	cancelMux  sync.Mutex
	signalChan chan os.Signal
}

// NewManager creates a new progress manager
func NewManager(options Options) *Manager {
	out := options.Out
	if out == nil {
		out = os.Stderr
	}
	return &Manager{
		options:    options,
		out:        out,
		signalChan: make(chan os.Signal, 1),
	}
}

// SetupCancellation returns a context that is cancelled on the first SIGINT
// or SIGTERM. Later signals get the default behavior, so a second Ctrl-C
// while blocked on input still terminates the process.
func (pm *Manager) SetupCancellation(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	pm.cancelFunc = cancel

	signal.Notify(pm.signalChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-pm.signalChan:
			signal.Stop(pm.signalChan)
			pm.cancelMux.Lock()
			pm.cancelled = true
			pm.cancelMux.Unlock()
			fmt.Fprintln(pm.out, "\nInterrupted: stopping after the current group")
			cancel()
		case <-ctx.Done():
			// Context already cancelled
		}
	}()

	return ctx
}

// IsCancelled checks if the operation was cancelled by a signal
func (pm *Manager) IsCancelled() bool {
	pm.cancelMux.Lock()
	defer pm.cancelMux.Unlock()
	return pm.cancelled
}

// Cleanup removes signal handlers
func (pm *Manager) Cleanup() {
	signal.Stop(pm.signalChan)
	if pm.cancelFunc != nil {
		pm.cancelFunc()
	}
}

// InitTotalProgress initializes the byte progress bar
func (pm *Manager) InitTotalProgress(totalBytes int64, description string) {
	if pm.options.Quiet {
		return
	}

	pm.totalBar = progressbar.NewOptions64(totalBytes,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(pm.out),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(65),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(pm.out, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// UpdateTotalProgress advances the bar by bytes
func (pm *Manager) UpdateTotalProgress(bytes int64) {
	if pm.options.Quiet || pm.totalBar == nil {
		return
	}
	// #nosec G104 - progress bar errors are not critical for functionality
	pm.totalBar.Add64(bytes)
}

// FinishTotalProgress marks the bar as complete
func (pm *Manager) FinishTotalProgress() {
	if pm.options.Quiet || pm.totalBar == nil {
		return
	}
	// #nosec G104 - progress bar errors are not critical for functionality
	pm.totalBar.Finish()
}

// PrintVerbose prints verbose information if verbose mode is enabled
func (pm *Manager) PrintVerbose(format string, args ...interface{}) {
	if !pm.options.Verbose {
		return
	}
	pm.print(format, args...)
}

// PrintInfo prints informational messages (unless quiet mode)
func (pm *Manager) PrintInfo(format string, args ...interface{}) {
	if pm.options.Quiet {
		return
	}
	pm.print(format, args...)
}

func (pm *Manager) print(format string, args ...interface{}) {
	// Clear the progress bar before printing to avoid line breaks
	if pm.totalBar != nil {
		// #nosec G104 - progress bar clear is not critical for functionality
		pm.totalBar.Clear()
	}

	fmt.Fprintf(pm.out, format, args...)
	if len(format) == 0 || format[len(format)-1] != '\n' {
		fmt.Fprintln(pm.out)
	}
}
