// Package models defines the core value types shared across the application.
//
// A [Target] is one customer row slated for deletion, produced by the records
// loader. An [Outcome] is the recorded result of attempting to delete one
// target. Both are plain immutable values; all mutation during a run happens
// in the engine's aggregation loop.
package models
