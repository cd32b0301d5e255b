// Package tasks orchestrates bulk customer deletion with real-time progress reporting.
//
// # Core Operation
//
// The [Engine] interface defines a single operation:
//
//   - [Engine.Purge] : Delete every target through a [services.Deleter]
//     using a bounded worker pool with jittered pacing, aggregate outcomes,
//     and report throughput and ETA at configurable intervals.
//
// # Dispatch Model
//
// A feeder goroutine pushes targets into a jobs channel consumed by
// [PurgeOpts.Workers] workers. Each worker handles one target fully (jitter
// sleep, optional rate-limiter wait, delete call, outcome capture) before
// taking the next, so in-flight requests never exceed the worker count.
// Outcomes flow back over a channel to the caller goroutine, which owns all
// counters; no locks are shared between workers.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, counters, and a formatted
// message. Updates use select with default to prevent blocking; a slow
// consumer drops updates rather than stalling deletion.
//
// # Pacing Modes
//
// The fast path runs N workers with a random pre-request jitter. Setting
// [PurgeOpts.FlatDelay] switches to the sequential variant: one worker and a
// fixed pause after every [PurgeOpts.BatchSize] targets. Both are the same
// engine under different configuration.
package tasks
