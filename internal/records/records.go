// Package records loads deletion targets from CSV exports.
//
// The loader is header-driven: it locates the id and email columns by name
// (case-insensitive), ignores everything else, and skips rows where both are
// blank. The id column wins as the deletion identifier, with email as the
// fallback. Read problems are fatal; there is no partial-result continuation.
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/cioprune/internal/models"
	"github.com/desertthunder/cioprune/internal/shared"
)

// LoadCSV reads a customer export file and returns the deletion targets in
// file order.
//
// Returns [shared.ErrFileNotFound] when the path does not exist and
// [shared.ErrReadFailed] for structural problems (no header, neither an id
// nor an email column, ragged rows).
func LoadCSV(path string) ([]models.Target, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", shared.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrReadFailed, err)
	}
	defer file.Close()

	return parse(csv.NewReader(file))
}

func parse(reader *csv.Reader) ([]models.Target, error) {
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header row", shared.ErrReadFailed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrReadFailed, err)
	}

	idCol, emailCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "id":
			idCol = i
		case "email":
			emailCol = i
		}
	}

	if idCol == -1 && emailCol == -1 {
		return nil, fmt.Errorf("%w: no id or email column in header", shared.ErrReadFailed)
	}

	var targets []models.Target
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrReadFailed, err)
		}

		id := field(row, idCol)
		email := field(row, emailCol)

		// Skip rows with no identifier at all
		if id == "" && email == "" {
			continue
		}

		identifier := id
		if identifier == "" {
			identifier = email
		}

		targets = append(targets, models.Target{
			Identifier: identifier,
			Email:      email,
			OriginalID: id,
		})
	}

	return targets, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
