package repositories

import (
	"testing"

	"github.com/desertthunder/cioprune/internal/models"
	"github.com/desertthunder/cioprune/internal/shared"
)

func newTestRepo(t *testing.T) *OutcomeRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	// every pooled connection to :memory: would get its own empty database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo := NewOutcomeRepository(db)
	if err := repo.Init(); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return repo
}

func outcome(id string, success bool, msg string) models.Outcome {
	return models.Outcome{
		Target:  models.Target{Identifier: id, Email: id + "@x.com", OriginalID: id},
		Success: success,
		Error:   msg,
	}
}

func TestOutcomeRepository_Init(t *testing.T) {
	repo := newTestRepo(t)

	// Init must be idempotent
	if err := repo.Init(); err != nil {
		t.Errorf("second Init() error = %v", err)
	}
}

func TestOutcomeRepository_ListRuns(t *testing.T) {
	repo := newTestRepo(t)

	for _, o := range []models.Outcome{
		outcome("a", true, ""),
		outcome("b", false, "not_found"),
		outcome("c", true, ""),
	} {
		if err := repo.Create("run-1", o); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if err := repo.Create("run-2", outcome("d", true, "")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	runs, err := repo.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}

	byID := map[string]RunSummary{}
	for _, run := range runs {
		byID[run.RunID] = run
	}

	run1 := byID["run-1"]
	if run1.Total != 3 || run1.Succeeded != 2 || run1.Failed != 1 {
		t.Errorf("run-1 = %d/%d/%d, want total=3 ok=2 failed=1", run1.Total, run1.Succeeded, run1.Failed)
	}
	if byID["run-2"].Total != 1 {
		t.Errorf("run-2 total = %d, want 1", byID["run-2"].Total)
	}
}

func TestOutcomeRepository_Failures(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Create("run-1", outcome("a", true, "")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for _, id := range []string{"b", "c", "d"} {
		if err := repo.Create("run-1", outcome(id, false, "boom-"+id)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	t.Run("all failures", func(t *testing.T) {
		failures, err := repo.Failures("run-1", 0)
		if err != nil {
			t.Fatalf("Failures() error = %v", err)
		}
		if len(failures) != 3 {
			t.Fatalf("len(failures) = %d, want 3", len(failures))
		}
		if failures[0].Target.Identifier != "b" || failures[0].Error != "boom-b" {
			t.Errorf("failures[0] = %+v", failures[0])
		}
	})

	t.Run("limited", func(t *testing.T) {
		failures, err := repo.Failures("run-1", 2)
		if err != nil {
			t.Fatalf("Failures() error = %v", err)
		}
		if len(failures) != 2 {
			t.Errorf("len(failures) = %d, want 2", len(failures))
		}
	})

	t.Run("unknown run", func(t *testing.T) {
		failures, err := repo.Failures("run-404", 0)
		if err != nil {
			t.Fatalf("Failures() error = %v", err)
		}
		if len(failures) != 0 {
			t.Errorf("len(failures) = %d, want 0", len(failures))
		}
	})
}

func TestAuditAdapter(t *testing.T) {
	repo := newTestRepo(t)
	adapter := NewAuditAdapter(repo)

	if err := adapter.RecordOutcome("run-1", outcome("a", false, "boom")); err != nil {
		t.Fatalf("RecordOutcome() error = %v", err)
	}

	failures, err := repo.Failures("run-1", 0)
	if err != nil {
		t.Fatalf("Failures() error = %v", err)
	}
	if len(failures) != 1 || failures[0].Target.Identifier != "a" {
		t.Errorf("failures = %+v, want the recorded outcome", failures)
	}
}
