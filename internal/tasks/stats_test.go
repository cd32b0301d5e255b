package tasks

import (
	"math"
	"testing"
	"time"

	"github.com/desertthunder/cioprune/internal/models"
)

func TestRunStats_Record(t *testing.T) {
	stats := NewRunStats(3, time.Now())

	stats.Record(models.Outcome{Success: true})
	stats.Record(models.Outcome{Success: false, Error: "boom"})
	stats.Record(models.Outcome{Success: true})

	if stats.Processed != 3 {
		t.Errorf("Processed = %d, want 3", stats.Processed)
	}
	if stats.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", stats.Succeeded)
	}
	if stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", stats.Failed)
	}
	if stats.Succeeded+stats.Failed != stats.Processed {
		t.Errorf("Succeeded+Failed = %d, want Processed = %d", stats.Succeeded+stats.Failed, stats.Processed)
	}
}

func TestRunStats_Snapshot(t *testing.T) {
	start := time.Date(2025, 5, 25, 12, 0, 0, 0, time.UTC)

	t.Run("rates and eta after one minute", func(t *testing.T) {
		stats := NewRunStats(200, start)
		for i := 0; i < 100; i++ {
			stats.Record(models.Outcome{Success: true})
		}

		snap := stats.Snapshot(start.Add(time.Minute))

		if snap.Percent != 50 {
			t.Errorf("Percent = %v, want 50", snap.Percent)
		}
		if snap.AvgPerMin != 100 {
			t.Errorf("AvgPerMin = %v, want 100", snap.AvgPerMin)
		}
		if snap.IntervalPerMin != 100 {
			t.Errorf("IntervalPerMin = %v, want 100", snap.IntervalPerMin)
		}
		// 100 remaining at 100/min
		if snap.ETAMinutes != 1 {
			t.Errorf("ETAMinutes = %v, want 1", snap.ETAMinutes)
		}
	})

	t.Run("interval rate measures only the recent window", func(t *testing.T) {
		stats := NewRunStats(300, start)
		for i := 0; i < 100; i++ {
			stats.Record(models.Outcome{Success: true})
		}
		stats.Snapshot(start.Add(time.Minute))

		for i := 0; i < 50; i++ {
			stats.Record(models.Outcome{Success: true})
		}
		snap := stats.Snapshot(start.Add(2 * time.Minute))

		if snap.AvgPerMin != 75 {
			t.Errorf("AvgPerMin = %v, want 75", snap.AvgPerMin)
		}
		if snap.IntervalPerMin != 50 {
			t.Errorf("IntervalPerMin = %v, want 50", snap.IntervalPerMin)
		}
	})

	t.Run("zero elapsed never divides by zero", func(t *testing.T) {
		stats := NewRunStats(100, start)
		snap := stats.Snapshot(start)

		for name, v := range map[string]float64{
			"AvgPerMin":      snap.AvgPerMin,
			"IntervalPerMin": snap.IntervalPerMin,
			"ETAMinutes":     snap.ETAMinutes,
		} {
			if v != 0 {
				t.Errorf("%s = %v, want 0 on first tick", name, v)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%s is not finite: %v", name, v)
			}
		}
	})

	t.Run("zero total yields zero percent", func(t *testing.T) {
		stats := NewRunStats(0, start)
		snap := stats.Snapshot(start.Add(time.Second))
		if snap.Percent != 0 {
			t.Errorf("Percent = %v, want 0", snap.Percent)
		}
	})
}
