package services

import "context"

// Deleter deletes a single customer profile by identifier.
//
// Implementations return nil on success and an error describing the failure
// otherwise. Callers treat every error as final for that identifier; there is
// no retry contract.
type Deleter interface {
	Delete(ctx context.Context, identifier string) error
}
