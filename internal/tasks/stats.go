package tasks

import (
	"time"

	"github.com/desertthunder/cioprune/internal/models"
)

// RunStats tracks aggregate counters for one purge run.
//
// Owned by the single aggregation loop in [PurgeEngine.Purge]; it is not safe
// for concurrent writers and does not need to be.
type RunStats struct {
	Total     int
	Processed int
	Succeeded int
	Failed    int
	StartedAt time.Time

	lastReportAt    time.Time
	lastReportCount int
}

// NewRunStats creates counters for a run over total targets, anchored at now.
func NewRunStats(total int, now time.Time) *RunStats {
	return &RunStats{Total: total, StartedAt: now, lastReportAt: now}
}

// Record folds one outcome into the counters.
func (s *RunStats) Record(o models.Outcome) {
	s.Processed++
	if o.Success {
		s.Succeeded++
	} else {
		s.Failed++
	}
}

// ProgressSnapshot is a point-in-time view of a run used for progress lines.
type ProgressSnapshot struct {
	Processed      int
	Total          int
	Succeeded      int
	Failed         int
	Percent        float64
	AvgPerMin      float64 // since run start
	IntervalPerMin float64 // since the previous snapshot
	ETAMinutes     float64
	Elapsed        time.Duration
}

// Snapshot computes rates and ETA as of now and advances the interval marker.
//
// Every division is guarded: on the first tick (elapsed ≈ 0) or with nothing
// processed yet, rates and ETA degenerate to zero instead of NaN/Inf.
func (s *RunStats) Snapshot(now time.Time) ProgressSnapshot {
	elapsed := now.Sub(s.StartedAt)
	interval := now.Sub(s.lastReportAt)
	intervalCount := s.Processed - s.lastReportCount

	snap := ProgressSnapshot{
		Processed: s.Processed,
		Total:     s.Total,
		Succeeded: s.Succeeded,
		Failed:    s.Failed,
		Elapsed:   elapsed,
	}

	if s.Total > 0 {
		snap.Percent = float64(s.Processed) / float64(s.Total) * 100
	}
	if elapsed > 0 {
		snap.AvgPerMin = float64(s.Processed) / elapsed.Seconds() * 60
	}
	if interval > 0 {
		snap.IntervalPerMin = float64(intervalCount) / interval.Seconds() * 60
	}
	if s.Processed > 0 && elapsed > 0 {
		perSecond := float64(s.Processed) / elapsed.Seconds()
		snap.ETAMinutes = float64(s.Total-s.Processed) / perSecond / 60
	}

	s.lastReportAt = now
	s.lastReportCount = s.Processed
	return snap
}
