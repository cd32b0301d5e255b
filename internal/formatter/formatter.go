// package formatter writes purge run artifacts to disk (failure report CSV, run summary JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/desertthunder/cioprune/internal/models"
)

// FailureReportCSV renders failed outcomes as CSV with columns: Identifier, Email, OriginalID, Error
func FailureReportCSV(failures []models.Outcome) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Identifier", "Email", "OriginalID", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, f := range failures {
		record := []string{
			f.Target.Identifier,
			f.Target.Email,
			f.Target.OriginalID,
			f.Error,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteFailureReport writes the failure CSV to path.
func WriteFailureReport(failures []models.Outcome, path string) error {
	data, err := FailureReportCSV(failures)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write failure report: %w", err)
	}
	return nil
}

// RunReport summarizes a completed purge run for the JSON report file.
type RunReport struct {
	RunID          string  `json:"run_id"`
	Total          int     `json:"total"`
	Succeeded      int     `json:"succeeded"`
	Failed         int     `json:"failed"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	AvgPerMin      float64 `json:"avg_per_min"`
	FailureReport  string  `json:"failure_report,omitempty"` // path of the failure CSV, when written
}

// WriteRunReport writes the run summary as pretty-printed JSON to path.
func WriteRunReport(report RunReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
