package repositories

import (
	"github.com/desertthunder/cioprune/internal/models"
)

// AuditAdapter implements tasks.OutcomeRecorder using OutcomeRepository.
//
// The engine invokes it from its aggregation loop, one outcome at a time, so
// no locking is needed here.
type AuditAdapter struct {
	repo *OutcomeRepository
}

// NewAuditAdapter creates a new AuditAdapter with the given repository
func NewAuditAdapter(repo *OutcomeRepository) *AuditAdapter {
	return &AuditAdapter{repo: repo}
}

// RecordOutcome persists a single outcome row for the run.
func (a *AuditAdapter) RecordOutcome(runID string, outcome models.Outcome) error {
	return a.repo.Create(runID, outcome)
}
