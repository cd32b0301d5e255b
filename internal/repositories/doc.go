// package repositories provides the SQLite persistence layer for run audit logs.
//
// Each purge run writes one row per outcome, keyed by run_id, so past runs can
// be inspected after the console scrollback is gone. This is an audit trail
// only; nothing reads it to resume or dedupe a run.
package repositories
