package models

// Target represents one customer slated for deletion.
//
// Identifier is never empty: it holds the CSV id column when present,
// otherwise the email address. Email is kept for reporting even when the id
// was used, and OriginalID preserves the raw id column as read.
type Target struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	OriginalID string `json:"original_id"`
}

// Outcome records the result of attempting to delete a single target.
//
// Exactly one Outcome exists per Target consumed by the engine. A failed
// delete carries the error message; it is never retried.
type Outcome struct {
	Target  Target `json:"target"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
