package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/substantialcattle5/cleanfiles/internal/action"
	"github.com/substantialcattle5/cleanfiles/internal/classify"
	"github.com/substantialcattle5/cleanfiles/internal/config"
	"github.com/substantialcattle5/cleanfiles/internal/history"
	"github.com/substantialcattle5/cleanfiles/internal/session"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// formatActions renders action counts as "delete=2, skip=1" in name order
func formatActions(actions map[string]int) string {
	if len(actions) == 0 {
		return "-"
	}

	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, actions[name])
	}
	return strings.Join(parts, ", ")
}

// SummaryTable renders the outcome of one session
func SummaryTable(s session.Summary) string {
	names := make([]string, 0, len(s.Actions))
	for name := range s.Actions {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := [][]string{
		{"Mode", s.Mode.String()},
		{"Groups reviewed", fmt.Sprintf("%d/%d", s.Groups, s.Total)},
		{"Actions", fmt.Sprintf("%d", s.Dispatched())},
	}
	for _, name := range names {
		rows = append(rows, []string{"  " + name, fmt.Sprintf("%d", s.Actions[name])})
	}
	rows = append(rows, []string{"Failures", fmt.Sprintf("%d", len(s.Failures))})

	return renderTable([]string{"Session", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}

// HistoryTable renders past sessions, one per row
func HistoryTable(records []history.SessionRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Timestamp,
			r.Mode,
			strings.Join(r.Directories, " "),
			fmt.Sprintf("%d/%d", r.Groups, r.TotalGroups),
			formatActions(r.Actions),
			fmt.Sprintf("%d", r.Failures),
			(time.Duration(r.DurationMs) * time.Millisecond).String(),
			r.Status,
		})
	}

	return renderTable(
		[]string{"Time", "Mode", "Directories", "Groups", "Actions", "Failures", "Duration", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignLeft},
	)
}

// ModesTable renders every mode with the actions it offers
func ModesTable(cfg config.Config) string {
	rows := make([][]string, 0, len(classify.Modes()))
	for _, m := range classify.Modes() {
		labels := action.Labels(action.Catalog(m), cfg)
		rows = append(rows, []string{
			fmt.Sprintf("%d", int(m)),
			m.String(),
			m.Description(),
			strings.Join(labels, "\n"),
		})
	}

	return renderTable(
		[]string{"#", "Name", "Description", "Actions"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	)
}
