package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/cioprune/internal/formatter"
	"github.com/desertthunder/cioprune/internal/records"
	"github.com/desertthunder/cioprune/internal/repositories"
	"github.com/desertthunder/cioprune/internal/shared"
	"github.com/desertthunder/cioprune/internal/tasks"
	"github.com/urfave/cli/v3"
)

// failureSampleSize caps how many failures the summary prints.
const failureSampleSize = 10

// Run deletes every customer in the CSV file through the Track API.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	file := cmd.String("file")
	sequential := cmd.Bool("sequential")

	opts := r.purgeOpts(cmd)

	r.writePlain("customer.io bulk customer deletion\n")
	r.writePlain("File: %s\n\n", file)

	// The concurrent path is the dangerous one, so it gates on the stronger
	// literal before anything else happens.
	if sequential {
		if !r.confirm(fmt.Sprintf("This will delete ALL customers from '%s'.\nAre you sure you want to proceed? (yes/no): ", file), "yes") {
			r.writePlain("Operation cancelled.\n")
			return nil
		}
	} else {
		if !r.confirm(fmt.Sprintf("This will delete ALL customers from '%s' at high speed.\nThis is IRREVERSIBLE. Type 'DELETE' to confirm: ", file), "DELETE") {
			r.writePlain("Operation cancelled.\n")
			return nil
		}
	}

	if err := r.ensureDeleter(cmd.String("region")); err != nil {
		return err
	}

	r.writePlain("\nLoading customers from '%s'...\n", file)
	targets, err := records.LoadCSV(file)
	if err != nil {
		return err
	}

	if len(targets) == 0 {
		r.writePlain("No customers found in the CSV file.\n")
		return nil
	}

	r.writePlain("Found %d customers to delete.\n", len(targets))

	if !r.confirm(fmt.Sprintf("\nProceed with deleting %d customers? (yes/no): ", len(targets)), "yes") {
		r.writePlain("Operation cancelled.\n")
		return nil
	}

	logger, runID := shared.RunLogger(r.logger)
	opts.RunID = runID

	if cmd.Bool("audit") {
		recorder, closeDB, err := r.openAudit(cmd.String("audit-db"))
		if err != nil {
			return err
		}
		defer closeDB()
		opts.Recorder = recorder
	}

	logger.Info("starting purge", "targets", len(targets), "workers", opts.Workers, "sequential", sequential)
	r.writePlain("\n")

	progressCh := make(chan tasks.ProgressUpdate, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.Starting:
				r.writePlain("%s\n", update.Message)
			case tasks.Deleting, tasks.Pacing:
				r.writePlain("  %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Purge(ctx, progressCh, targets, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.printSummary(result)

	if path := cmd.String("report"); path != "" {
		if err := r.writeReports(result, runID, path); err != nil {
			return err
		}
	}

	logger.Info("purge finished", "ok", result.Stats.Succeeded, "failed", result.Stats.Failed)
	return nil
}

// Inspect loads the CSV file and reports target counts without deleting anything.
func (r *Runner) Inspect(ctx context.Context, cmd *cli.Command) error {
	file := cmd.String("file")

	targets, err := records.LoadCSV(file)
	if err != nil {
		return err
	}

	byEmail := 0
	for _, t := range targets {
		if t.OriginalID == "" {
			byEmail++
		}
	}

	r.writePlainHeader("CSV Inspection")
	r.writePlain("File: %s\n", file)
	r.writePlain("Deletion targets: %d\n", len(targets))
	r.writePlain("Identified by id: %d\n", len(targets)-byEmail)
	r.writePlain("Identified by email: %d\n", byEmail)
	return nil
}

// purgeOpts assembles engine options from config defaults and flag overrides.
func (r *Runner) purgeOpts(cmd *cli.Command) tasks.PurgeOpts {
	cfg := r.config.Engine

	opts := tasks.PurgeOpts{
		Workers:       cfg.Workers,
		JitterMin:     time.Duration(cfg.JitterMinMs) * time.Millisecond,
		JitterMax:     time.Duration(cfg.JitterMaxMs) * time.Millisecond,
		ProgressEvery: cfg.ProgressEvery,
		RateLimit:     cfg.RateLimit,
		BatchSize:     cfg.BatchSize,
	}

	if cmd.IsSet("workers") {
		opts.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("progress-every") {
		opts.ProgressEvery = cmd.Int("progress-every")
	}
	if cmd.IsSet("rate") {
		opts.RateLimit = cmd.Float("rate")
	}

	if cmd.Bool("sequential") {
		// Sequential pacing replaces jitter with a flat inter-batch delay.
		opts.Workers = 1
		opts.JitterMin = 0
		opts.JitterMax = 0
		opts.FlatDelay = time.Duration(cfg.FlatDelayMs) * time.Millisecond
		if cmd.IsSet("flat-delay-ms") {
			opts.FlatDelay = time.Duration(cmd.Int("flat-delay-ms")) * time.Millisecond
		}
	}

	return opts
}

// openAudit opens the audit database and returns the recorder and a closer.
func (r *Runner) openAudit(path string) (tasks.OutcomeRecorder, func(), error) {
	if path == "" {
		path = r.config.Audit.Path
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, nil, err
	}

	repo := repositories.NewOutcomeRepository(db)
	if err := repo.Init(); err != nil {
		db.Close()
		return nil, nil, err
	}

	return repositories.NewAuditAdapter(repo), func() { db.Close() }, nil
}

// printSummary writes the final run summary and a capped failure sample.
func (r *Runner) printSummary(result *tasks.PurgeResult) {
	stats := result.Stats
	avgPerMin := 0.0
	if result.Elapsed > 0 {
		avgPerMin = float64(stats.Processed) / result.Elapsed.Seconds() * 60
	}

	r.writePlain("\n")
	r.writePlainHeader("Deletion Complete")
	r.writePlain("Total time: %.1fs (%.1f minutes)\n", result.Elapsed.Seconds(), result.Elapsed.Minutes())
	r.writePlain("Total customers: %d\n", stats.Total)
	r.writePlain("%s\n", okStyle.Render(fmt.Sprintf("Successfully deleted: %d", stats.Succeeded)))
	r.writePlain("%s\n", errStyle.Render(fmt.Sprintf("Failed deletions: %d", stats.Failed)))
	r.writePlain("Average rate: %.0f customers/minute\n", avgPerMin)

	if len(result.Failures) == 0 {
		return
	}

	sample := result.Failures
	if len(sample) > failureSampleSize {
		sample = sample[:failureSampleSize]
	}

	r.writePlain("\nFailed deletions (showing first %d):\n", len(sample))
	for i, f := range sample {
		r.writePlain("  %d. %s (%s): %s\n", i+1, f.Target.Identifier, f.Target.Email, f.Error)
	}
	if extra := len(result.Failures) - len(sample); extra > 0 {
		r.writePlain("%s\n", warnStyle.Render(fmt.Sprintf("  ... and %d more failures", extra)))
	}
}

// writeReports writes the failure CSV and a JSON run summary next to it.
func (r *Runner) writeReports(result *tasks.PurgeResult, runID, path string) error {
	if err := formatter.WriteFailureReport(result.Failures, path); err != nil {
		return err
	}

	report := formatter.RunReport{
		RunID:          runID,
		Total:          result.Stats.Total,
		Succeeded:      result.Stats.Succeeded,
		Failed:         result.Stats.Failed,
		ElapsedSeconds: result.Elapsed.Seconds(),
		FailureReport:  path,
	}
	if result.Elapsed > 0 {
		report.AvgPerMin = float64(result.Stats.Processed) / result.Elapsed.Seconds() * 60
	}

	if err := formatter.WriteRunReport(report, path+".summary.json"); err != nil {
		return err
	}

	r.writePlain("\nFailure report written to %s\n", path)
	return nil
}
