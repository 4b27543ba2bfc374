package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/substantialcattle5/cleanfiles/internal/action"
	"github.com/substantialcattle5/cleanfiles/internal/classify"
	"github.com/substantialcattle5/cleanfiles/internal/deduplication"
	"github.com/substantialcattle5/cleanfiles/internal/session"
	"github.com/substantialcattle5/cleanfiles/util"
)

const groupSeparator = "--------------------------------"

// Console prints session progress and action notices for a human reader.
// Failures are always printed; quiet suppresses everything else that is not
// needed to answer a prompt.
type Console struct {
	out     io.Writer
	quiet   bool
	header  *color.Color
	success *color.Color
	failure *color.Color
	faint   *color.Color
}

// NewConsole creates a console writing to out
func NewConsole(out io.Writer, quiet bool) *Console {
	return &Console{
		out:     out,
		quiet:   quiet,
		header:  color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		faint:   color.New(color.Faint),
	}
}

// Infof prints an informational line unless quiet
func (c *Console) Infof(format string, args ...interface{}) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.out, format, args...)
	if !strings.HasSuffix(format, "\n") {
		fmt.Fprintln(c.out)
	}
}

// PrintBanner describes the index and the work ahead
func (c *Console) PrintBanner(mode classify.Mode, stats deduplication.IndexStats, groups int) {
	if c.quiet {
		return
	}

	fmt.Fprintf(c.out, "📂 Indexed %d file(s), %s, %d unique content hash(es)\n",
		stats.TotalFiles, util.HumanReadableSize(stats.TotalSize), stats.UniqueHashes)
	if stats.DuplicateFiles > 0 {
		fmt.Fprintf(c.out, "   %d duplicate file(s), %s reclaimable\n",
			stats.DuplicateFiles, util.HumanReadableSize(stats.ReclaimableBytes))
	}
	c.header.Fprintf(c.out, "🔍 %d group(s) found in mode %s\n", groups, mode.Title())
	fmt.Fprintln(c.out, groupSeparator)
}

// RenderGroup prints the group header and its members
func (c *Console) RenderGroup(v session.GroupView) {
	c.header.Fprintf(c.out, "[%d/%d]: %d file(s) found in mode %s\n", v.Index, v.Total, len(v.Files), v.Mode.Title())
	for _, f := range v.Files {
		if f.Detail != "" {
			fmt.Fprintf(c.out, "\t - %s (%s)\n", f.Path, f.Detail)
			continue
		}
		fmt.Fprintf(c.out, "\t - %s\n", f.Path)
	}
}

// RenderError prints a recoverable input problem
func (c *Console) RenderError(err error) {
	c.failure.Fprintf(c.out, "%v\n", err)
}

// RenderGroupEnd separates consecutive groups
func (c *Console) RenderGroupEnd() {
	fmt.Fprintln(c.out, groupSeparator)
}

// Report prints the outcome of one mutation
func (c *Console) Report(n action.Notice) {
	if n.Err != nil {
		c.failure.Fprintf(c.out, "✗ Failed to %s %s: %v\n", n.Op, n.Path, n.Err)
		return
	}
	if c.quiet {
		return
	}
	c.success.Fprintf(c.out, "✓ %s\n", describe(n))
}

func describe(n action.Notice) string {
	switch n.Op {
	case "delete":
		return "Deleting file " + n.Path
	case "keep":
		return "Keeping file " + n.Path
	case "move":
		return fmt.Sprintf("Moving file %s to %s", n.Path, n.Target)
	case "copy":
		return fmt.Sprintf("Copying file %s to %s", n.Path, n.Target)
	case "chmod":
		return fmt.Sprintf("Changing %s permissions to %s", n.Path, n.Target)
	case "rename":
		return fmt.Sprintf("Renaming %s to %s", n.Path, n.Target)
	case "replace":
		return fmt.Sprintf("Replacing %s with %s", n.Path, n.Target)
	case "skip":
		return "Skipping " + n.Path
	default:
		return fmt.Sprintf("%s %s", n.Op, n.Path)
	}
}

// PrintSummary prints the session summary table and any failures
func (c *Console) PrintSummary(s session.Summary) {
	if len(s.Failures) > 0 {
		c.failure.Fprintf(c.out, "\n⚠️  %d action(s) failed:\n", len(s.Failures))
		for _, f := range s.Failures {
			fmt.Fprintf(c.out, "  • group %d (%s): %v\n", f.Group, f.Action, f.Err)
		}
	}
	if c.quiet {
		return
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, SummaryTable(s))
}
