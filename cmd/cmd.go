// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		runCommand, inspectCommand, auditCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// runCommand performs the actual purge
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Delete every customer listed in a CSV export",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the customer CSV export",
				Required: true,
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Concurrent deletion workers",
			},
			&cli.IntFlag{
				Name:  "progress-every",
				Usage: "Emit a progress line every N deletions",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Requests-per-second ceiling (0 disables)",
			},
			&cli.BoolFlag{
				Name:  "sequential",
				Usage: "Single worker with a flat delay between batches instead of jitter",
			},
			&cli.IntFlag{
				Name:  "flat-delay-ms",
				Usage: "Inter-batch delay for --sequential",
			},
			&cli.StringFlag{
				Name:  "region",
				Usage: "customer.io region (us or eu)",
				Value: "us",
			},
			&cli.BoolFlag{
				Name:  "audit",
				Usage: "Record every outcome in the audit database",
			},
			&cli.StringFlag{
				Name:  "audit-db",
				Usage: "Path to the audit database (default from config)",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write a failure report CSV (plus a JSON summary) to this path",
			},
		},
		Action: r.Run,
	}
}

// inspectCommand previews a CSV file without deleting anything
func inspectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Preview deletion targets in a CSV export",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the customer CSV export",
				Required: true,
			},
		},
		Action: r.Inspect,
	}
}

// auditCommand inspects the local outcome audit log
func auditCommand(r *Runner) *cli.Command {
	dbFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:  "db",
			Usage: "Path to the audit database (default from config)",
		}
	}

	return &cli.Command{
		Name:  "audit",
		Usage: "Inspect recorded purge runs",
		Commands: []*cli.Command{
			{
				Name:   "summary",
				Usage:  "List recorded runs with their counts",
				Flags:  []cli.Flag{dbFlag()},
				Action: r.AuditSummary,
			},
			{
				Name:  "failures",
				Usage: "List failed deletions recorded for a run",
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "run-id",
						Usage:    "Run identifier (see audit summary)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum failures to print (0 for all)",
					},
				},
				Action: r.AuditFailures,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the audit database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the audit database schema",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "db",
						Usage: "Path to the audit database (default from config)",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
