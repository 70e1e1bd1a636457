// Package static provides non-interactive terminal output components.
//
// This package contains the tables printed by list, stats and repos.
package static

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/hookr/internal/config"
	"github.com/raphi011/hookr/internal/store"
	"github.com/raphi011/hookr/internal/ui/styles"
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	return t.String() + "\n"
}

// HookHeaders are the columns of HookTableRow.
var HookHeaders = []string{"NAME", "COMMAND", "DIRECTORY", "PATTERNS", "DESCRIPTION"}

// HookTableRow formats a hook definition for `list --table`.
func HookTableRow(h config.Hook) []string {
	dir := h.Command.Dir()
	if dir == "" {
		dir = "-"
	}
	return []string{
		h.Name,
		h.Command.String(),
		dir,
		strings.Join(h.GlobPatterns, " "),
		h.Description,
	}
}

// StatsHeaders are the columns of StatsTableRow.
var StatsHeaders = []string{"HOOK", "RUNS", "PASSED", "FAILED", "SUCCESS"}

// StatsTableRow formats a hook's counters.
func StatsTableRow(r store.HookRecord) []string {
	return []string{
		r.Name,
		strconv.FormatInt(r.TotalRuns, 10),
		strconv.FormatInt(r.SuccessfulRuns, 10),
		strconv.FormatInt(r.FailedRuns(), 10),
		successRate(r),
	}
}

func successRate(r store.HookRecord) string {
	if r.TotalRuns == 0 {
		return "-"
	}
	pct := float64(r.SuccessfulRuns) / float64(r.TotalRuns) * 100
	return fmt.Sprintf("%.0f%%", pct)
}

// RunHeaders are the columns of RunTableRow.
var RunHeaders = []string{"STARTED", "OUTCOME", "DURATION", "REPO"}

// RunTableRow formats one entry of a hook's run history.
func RunTableRow(r store.Run) []string {
	return []string{
		r.StartedAt.Local().Format(time.DateTime),
		formatOutcome(r),
		r.Duration.Round(time.Millisecond).String(),
		r.Repo,
	}
}

func formatOutcome(r store.Run) string {
	switch r.Outcome {
	case store.OutcomeSuccess:
		return styles.SuccessStyle.Render("✓ passed")
	case store.OutcomeFailure:
		code := "?"
		if r.ExitCode != nil {
			code = strconv.Itoa(*r.ExitCode)
		}
		return styles.ErrorStyle.Render("✗ exit " + code)
	default:
		return styles.WarningStyle.Render("⚡ " + r.Outcome)
	}
}

// BindingHeaders are the columns of BindingRows.
var BindingHeaders = []string{"REPO", "TRIGGER", "HOOKS"}

// BindingRows groups bindings by repository and trigger point, keeping the
// order the bindings are given in.
func BindingRows(bindings []store.Binding) [][]string {
	type key struct {
		repo, point string
	}
	var (
		order []key
		hooks = make(map[key][]string)
	)
	for _, b := range bindings {
		k := key{b.Repo, b.Point.String()}
		if _, ok := hooks[k]; !ok {
			order = append(order, k)
		}
		hooks[k] = append(hooks[k], b.Name)
	}

	rows := make([][]string, 0, len(order))
	for _, k := range order {
		rows = append(rows, []string{k.repo, k.point, strings.Join(hooks[k], " → ")})
	}
	return rows
}
