package store

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/raphi011/hookr/internal/trigger"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "hookr.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func intPtr(i int) *int { return &i }

func TestOpen_InMemory(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, MemoryPath)
	if err != nil {
		t.Fatalf("Open(memory) error = %v", err)
	}
	defer s.Close()

	if err := s.RegisterHook(ctx, "lint"); err != nil {
		t.Fatalf("RegisterHook() error = %v", err)
	}
	ok, err := s.IsHookRegistered(ctx, "lint")
	if err != nil || !ok {
		t.Errorf("IsHookRegistered() = %v, %v; want true, nil", ok, err)
	}
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "hookr.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.RegisterHook(ctx, "lint"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// migrations are not re-applied and data survives
	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer s.Close()
	if ok, _ := s.IsHookRegistered(ctx, "lint"); !ok {
		t.Error("hook not registered after reopen")
	}
}

func TestRegisterHook_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	if err := s.RegisterHook(ctx, "lint"); err != nil {
		t.Fatalf("RegisterHook() error = %v", err)
	}
	if err := s.RecordRun(ctx, Run{Name: "lint", Outcome: OutcomeSuccess}); err != nil {
		t.Fatal(err)
	}
	before, _, _ := s.Hook(ctx, "lint")

	if err := s.RegisterHook(ctx, "lint"); err != nil {
		t.Fatalf("second RegisterHook() error = %v", err)
	}
	after, ok, err := s.Hook(ctx, "lint")
	if err != nil || !ok {
		t.Fatalf("Hook() = %v, %v", ok, err)
	}
	if after != before {
		t.Errorf("record after re-register = %+v, want %+v", after, before)
	}
}

func TestIsHookRegistered(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	ok, err := s.IsHookRegistered(ctx, "missing")
	if err != nil {
		t.Fatalf("IsHookRegistered() error = %v", err)
	}
	if ok {
		t.Error("IsHookRegistered(missing) = true, want false")
	}
}

func TestRecordRun_Counters(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	if err := s.RegisterHook(ctx, "lint"); err != nil {
		t.Fatal(err)
	}

	runs := []Run{
		{Name: "lint", Outcome: OutcomeSuccess, ExitCode: intPtr(0)},
		{Name: "lint", Outcome: OutcomeFailure, ExitCode: intPtr(2)},
		{Name: "lint", Outcome: OutcomeSignaled},
		{Name: "lint", Outcome: OutcomeSuccess, ExitCode: intPtr(0)},
	}
	for _, r := range runs {
		if err := s.RecordRun(ctx, r); err != nil {
			t.Fatalf("RecordRun(%s) error = %v", r.Outcome, err)
		}
	}

	rec, _, err := s.Hook(ctx, "lint")
	if err != nil {
		t.Fatal(err)
	}
	if rec.TotalRuns != 4 || rec.SuccessfulRuns != 2 || rec.FailedRuns() != 2 {
		t.Errorf("record = %+v, want total 4, successful 2", rec)
	}
}

func TestRecordRun_SuccessfulNeverExceedsTotal(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	if err := s.RegisterHook(ctx, "fuzz"); err != nil {
		t.Fatal(err)
	}

	outcomes := []string{OutcomeSuccess, OutcomeFailure, OutcomeSignaled}
	r := rand.New(rand.NewPCG(1, 2))
	for i := range 60 {
		o := outcomes[r.IntN(len(outcomes))]
		if err := s.RecordRun(ctx, Run{Name: "fuzz", Outcome: o}); err != nil {
			t.Fatalf("RecordRun #%d error = %v", i, err)
		}
		rec, _, err := s.Hook(ctx, "fuzz")
		if err != nil {
			t.Fatal(err)
		}
		if rec.SuccessfulRuns > rec.TotalRuns {
			t.Fatalf("after run #%d: successful %d > total %d", i, rec.SuccessfulRuns, rec.TotalRuns)
		}
		if rec.TotalRuns != int64(i+1) {
			t.Fatalf("after run #%d: total = %d, want %d", i, rec.TotalRuns, i+1)
		}
	}
}

func TestRecordRun_UnregisteredIsNoop(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	if err := s.RecordRun(ctx, Run{Name: "ghost", Outcome: OutcomeFailure}); err != nil {
		t.Errorf("RecordRun(unregistered) = %v, want nil", err)
	}
	if ok, _ := s.IsHookRegistered(ctx, "ghost"); ok {
		t.Error("RecordRun must not register the hook")
	}
	runs, err := s.History(ctx, "ghost", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("History(ghost) = %d runs, want 0", len(runs))
	}
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	if err := s.RegisterHook(ctx, "lint"); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, o := range []string{OutcomeSuccess, OutcomeFailure, OutcomeSuccess} {
		run := Run{
			Name:      "lint",
			Repo:      "/src/app",
			Outcome:   o,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Duration:  1500 * time.Millisecond,
		}
		if o == OutcomeFailure {
			run.ExitCode = intPtr(3)
		}
		if err := s.RecordRun(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.History(ctx, "lint", 2)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("History() = %d runs, want 2", len(runs))
	}
	if !runs[0].StartedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("newest run started %v, want %v", runs[0].StartedAt, base.Add(2*time.Minute))
	}
	if runs[1].Outcome != OutcomeFailure || runs[1].ExitCode == nil || *runs[1].ExitCode != 3 {
		t.Errorf("second run = %+v, want failure with exit code 3", runs[1])
	}
	if runs[0].ID == "" || runs[0].ID == runs[1].ID {
		t.Errorf("run ids = %q, %q; want distinct generated ids", runs[0].ID, runs[1].ID)
	}
	if runs[0].Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v, want 1.5s", runs[0].Duration)
	}
	if runs[0].Repo != "/src/app" {
		t.Errorf("Repo = %q", runs[0].Repo)
	}
}

func TestBindings(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	repo := "/src/app"

	for _, name := range []string{"a", "b"} {
		if err := s.RegisterHook(ctx, name); err != nil {
			t.Fatal(err)
		}
	}

	exists, err := s.BindingExists(ctx, repo, trigger.PreCommit)
	if err != nil || exists {
		t.Fatalf("BindingExists(empty) = %v, %v; want false, nil", exists, err)
	}

	if err := s.AddBinding(ctx, "a", repo, trigger.PreCommit); err != nil {
		t.Fatalf("AddBinding(a) error = %v", err)
	}
	if err := s.AddBinding(ctx, "b", repo, trigger.PreCommit); err != nil {
		t.Fatalf("AddBinding(b) error = %v", err)
	}
	if err := s.AddBinding(ctx, "b", repo, trigger.PrePush); err != nil {
		t.Fatalf("AddBinding(b, pre-push) error = %v", err)
	}

	tests := []struct {
		name  string
		point trigger.Point
		hook  string
		want  bool
	}{
		{"a on pre-commit", trigger.PreCommit, "a", true},
		{"b on pre-commit", trigger.PreCommit, "b", true},
		{"a on pre-push", trigger.PrePush, "a", false},
		{"other repo", trigger.CommitMsg, "a", false},
	}
	for _, tt := range tests {
		got, err := s.BindingMatches(ctx, repo, tt.point, tt.hook)
		if err != nil {
			t.Fatalf("BindingMatches(%s) error = %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("BindingMatches(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}

	names, err := s.Bindings(ctx, repo, trigger.PreCommit)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Bindings() = %v, want [a b]", names)
	}

	forB, err := s.BindingsForHook(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}
	if len(forB) != 2 || forB[0].Point != trigger.PreCommit || forB[1].Point != trigger.PrePush {
		t.Errorf("BindingsForHook(b) = %+v", forB)
	}

	removed, err := s.RemoveBinding(ctx, "a", repo, trigger.PreCommit)
	if err != nil || !removed {
		t.Fatalf("RemoveBinding(a) = %v, %v; want true, nil", removed, err)
	}
	removed, err = s.RemoveBinding(ctx, "a", repo, trigger.PreCommit)
	if err != nil || removed {
		t.Errorf("second RemoveBinding(a) = %v, %v; want false, nil", removed, err)
	}

	all, err := s.AllBindings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("AllBindings() = %+v, want 2 bindings", all)
	}
}

func TestAddBinding_Errors(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	repo := "/src/app"

	// foreign key: hook must be registered first
	err := s.AddBinding(ctx, "unregistered", repo, trigger.PreCommit)
	var storeErr *Error
	if !errors.As(err, &storeErr) {
		t.Errorf("AddBinding(unregistered) error = %v, want *store.Error", err)
	}

	if err := s.RegisterHook(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddBinding(ctx, "a", repo, trigger.PreCommit); err != nil {
		t.Fatal(err)
	}
	if err := s.AddBinding(ctx, "a", repo, trigger.PreCommit); !errors.As(err, &storeErr) {
		t.Errorf("duplicate AddBinding() error = %v, want *store.Error", err)
	}
	if err := s.AddBinding(ctx, "a", repo, trigger.Point(0)); !errors.As(err, &storeErr) {
		t.Errorf("AddBinding(invalid point) error = %v, want *store.Error", err)
	}
}

func TestDeleteHook(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	if err := s.RegisterHook(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddBinding(ctx, "a", "/src/app", trigger.PreCommit); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordRun(ctx, Run{Name: "a", Outcome: OutcomeSuccess}); err != nil {
		t.Fatal(err)
	}

	deleted, err := s.DeleteHook(ctx, "a")
	if err != nil || !deleted {
		t.Fatalf("DeleteHook() = %v, %v; want true, nil", deleted, err)
	}

	if ok, _ := s.IsHookRegistered(ctx, "a"); ok {
		t.Error("hook still registered after DeleteHook")
	}
	if exists, _ := s.BindingExists(ctx, "/src/app", trigger.PreCommit); exists {
		t.Error("binding still exists after DeleteHook")
	}
	if runs, _ := s.History(ctx, "a", 0); len(runs) != 0 {
		t.Errorf("History() = %d runs after DeleteHook, want 0", len(runs))
	}

	deleted, err = s.DeleteHook(ctx, "a")
	if err != nil || deleted {
		t.Errorf("second DeleteHook() = %v, %v; want false, nil", deleted, err)
	}
}

func TestSplitSQL(t *testing.T) {
	t.Parallel()

	got := splitSQL("CREATE TABLE a (x INT);\n\n  ;CREATE INDEX i ON a(x);\n")
	if len(got) != 2 || got[0] != "CREATE TABLE a (x INT)" || got[1] != "CREATE INDEX i ON a(x)" {
		t.Errorf("splitSQL() = %q", got)
	}
}
