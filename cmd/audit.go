package main

import (
	"context"
	"time"

	"github.com/desertthunder/cioprune/internal/repositories"
	"github.com/desertthunder/cioprune/internal/shared"
	"github.com/urfave/cli/v3"
)

// auditRepo opens the audit database read path for a command invocation.
func (r *Runner) auditRepo(cmd *cli.Command) (*repositories.OutcomeRepository, func(), error) {
	path := cmd.String("db")
	if path == "" {
		path = r.config.Audit.Path
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, nil, err
	}

	return repositories.NewOutcomeRepository(db), func() { db.Close() }, nil
}

// AuditSummary prints one line per recorded run, most recent first.
func (r *Runner) AuditSummary(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.auditRepo(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	runs, err := repo.ListRuns()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		r.writePlain("No recorded runs.\n")
		return nil
	}

	r.writePlainHeader("Recorded Runs")
	for _, run := range runs {
		r.writePlain("%s  %s\n", run.RunID, run.StartedAt.Format("2006-01-02 15:04:05"))
		r.writePlain("  total %d | ok %d | failed %d | took %s\n",
			run.Total, run.Succeeded, run.Failed, run.EndedAt.Sub(run.StartedAt).Round(time.Second))
	}
	return nil
}

// AuditFailures prints the failed outcomes recorded for one run.
func (r *Runner) AuditFailures(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.auditRepo(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	runID := cmd.String("run-id")
	failures, err := repo.Failures(runID, cmd.Int("limit"))
	if err != nil {
		return err
	}

	if len(failures) == 0 {
		r.writePlain("No failures recorded for run %s.\n", runID)
		return nil
	}

	r.writePlain("Failures for run %s:\n", runID)
	for i, f := range failures {
		r.writePlain("  %d. %s (%s): %s\n", i+1, f.Target.Identifier, f.Target.Email, f.Error)
	}
	return nil
}

// SetupConfig writes the example configuration to disk.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.writePlain("Wrote %s\n", path)
	return nil
}

// SetupDatabase creates the audit database schema.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.auditRepo(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := repo.Init(); err != nil {
		return err
	}

	r.logger.Info("audit database initialized")
	r.writePlain("Audit database ready.\n")
	return nil
}
