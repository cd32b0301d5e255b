// package shared defines shared helpers
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// RunLogger creates a child [log.Logger] tagged with a freshly generated run identifier.
//
// Every log line produced during a purge run carries the same run_id, which is
// also recorded in the audit log for cross-referencing.
func RunLogger(l *log.Logger) (*log.Logger, string) {
	id := GenerateID()
	return l.With("run_id", id), id
}

// GenerateID generates a new v4 [uuid.UUID] as a string
func GenerateID() string {
	return uuid.New().String()
}
