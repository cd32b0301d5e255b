package tasks

import (
	"fmt"
	"time"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Completed targets at the time of the update
	Total   int    // Total targets in the run
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data (e.g. ProgressSnapshot)
}

// Operation phase enumeration
type Phase int

const (
	Starting Phase = iota
	Deleting
	Pacing
	Completed
)

func (p Phase) String() string {
	switch p {
	case Starting:
		return "starting"
	case Deleting:
		return "deleting"
	case Pacing:
		return "pacing"
	case Completed:
		return "completed"
	default:
		return ""
	}
}

func startingUpdate(total, workers int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Starting,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Deleting %d customers with %d workers...", total, workers),
	}
}

func progressUpdate(snap ProgressSnapshot) ProgressUpdate {
	return ProgressUpdate{
		Phase: Deleting,
		Step:  snap.Processed,
		Total: snap.Total,
		Message: fmt.Sprintf("[%d/%d] %.1f%% | ✓ %d ok | ✗ %d failed | %.0f/min avg | %.0f/min recent | ETA %.1fmin",
			snap.Processed, snap.Total, snap.Percent, snap.Succeeded, snap.Failed,
			snap.AvgPerMin, snap.IntervalPerMin, snap.ETAMinutes),
		Data: snap,
	}
}

func pacingUpdate(processed, total int, delay time.Duration) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Pacing,
		Step:    processed,
		Total:   total,
		Message: fmt.Sprintf("Processed %d customers, waiting %s...", processed, delay),
	}
}

func completedUpdate(snap ProgressSnapshot) ProgressUpdate {
	return ProgressUpdate{
		Phase: Completed,
		Step:  snap.Processed,
		Total: snap.Total,
		Message: fmt.Sprintf("Deletion completed in %.1fs: %d ok, %d failed (%.0f/min)",
			snap.Elapsed.Seconds(), snap.Succeeded, snap.Failed, snap.AvgPerMin),
		Data: snap,
	}
}
