package static

import (
	"strings"
	"testing"
	"time"

	"github.com/raphi011/hookr/internal/config"
	"github.com/raphi011/hookr/internal/store"
	"github.com/raphi011/hookr/internal/trigger"
)

func TestRenderTable_Empty(t *testing.T) {
	t.Parallel()

	if got := RenderTable([]string{"A"}, nil); got != "" {
		t.Errorf("RenderTable(no rows) = %q, want empty", got)
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	out := RenderTable([]string{"NAME", "RUNS"}, [][]string{{"lint", "3"}, {"fmt", "12"}})
	for _, want := range []string{"NAME", "RUNS", "lint", "fmt", "12"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderTable() missing %q in %q", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("RenderTable() should end with a newline")
	}
}

func TestHookTableRow(t *testing.T) {
	t.Parallel()

	dir := "/src/app"
	row := HookTableRow(config.Hook{
		Name:         "lint",
		Command:      config.Command{Cmd: "golangci-lint", Args: config.ParseArgs("run ./..."), Directory: &dir},
		GlobPatterns: []string{"**/*.go", "go.mod"},
		Description:  "run linters",
	})

	// Must have exactly as many columns as headers
	if len(row) != len(HookHeaders) {
		t.Fatalf("expected %d columns, got %d", len(HookHeaders), len(row))
	}
	want := []string{"lint", "golangci-lint run ./...", "/src/app", "**/*.go go.mod", "run linters"}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %d (%s) = %q, want %q", i, HookHeaders[i], row[i], want[i])
		}
	}

	row = HookTableRow(config.Hook{Name: "fmt", Command: config.Command{Cmd: "gofmt"}})
	if row[2] != "-" {
		t.Errorf("DIRECTORY without directory = %q, want -", row[2])
	}
}

func TestStatsTableRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rec  store.HookRecord
		want []string
	}{
		{store.HookRecord{Name: "lint", TotalRuns: 4, SuccessfulRuns: 3}, []string{"lint", "4", "3", "1", "75%"}},
		{store.HookRecord{Name: "new"}, []string{"new", "0", "0", "0", "-"}},
	}
	for _, tt := range tests {
		row := StatsTableRow(tt.rec)
		if strings.Join(row, "|") != strings.Join(tt.want, "|") {
			t.Errorf("StatsTableRow(%+v) = %v, want %v", tt.rec, row, tt.want)
		}
	}
}

func TestRunTableRow(t *testing.T) {
	t.Parallel()

	code := 2
	row := RunTableRow(store.Run{
		Outcome:   store.OutcomeFailure,
		ExitCode:  &code,
		StartedAt: time.Now(),
		Duration:  1234567 * time.Microsecond,
		Repo:      "/src/app",
	})

	if len(row) != len(RunHeaders) {
		t.Fatalf("expected %d columns, got %d", len(RunHeaders), len(row))
	}
	// OUTCOME is styled, only check the text
	if !strings.Contains(row[1], "exit 2") {
		t.Errorf("OUTCOME = %q, want exit 2", row[1])
	}
	if row[2] != "1.235s" {
		t.Errorf("DURATION = %q, want 1.235s", row[2])
	}
}

func TestBindingRows(t *testing.T) {
	t.Parallel()

	rows := BindingRows([]store.Binding{
		{Name: "fmt", Repo: "/a", Point: trigger.PreCommit},
		{Name: "lint", Repo: "/b", Point: trigger.PrePush},
		{Name: "lint", Repo: "/a", Point: trigger.PreCommit},
	})

	want := [][]string{
		{"/a", "pre-commit", "fmt → lint"},
		{"/b", "pre-push", "lint"},
	}
	if len(rows) != len(want) {
		t.Fatalf("BindingRows() = %v, want %v", rows, want)
	}
	for i := range want {
		if strings.Join(rows[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}
