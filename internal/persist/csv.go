// Package persist reads and writes the session history file.
//
// The on-disk format is a flat CSV with one row per calculation:
// operation, operand_a, operand_b, result, timestamp (RFC 3339).
// Writes are atomic: the file is staged in the same directory and
// renamed into place.
package persist

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dshills/tally/internal/engine/calc"
)

var header = []string{"operation", "operand_a", "operand_b", "result", "timestamp"}

// Save writes records to path, creating parent directories as needed.
func Save(path string, records []calc.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tally-history-*")
	if err != nil {
		return fmt.Errorf("staging history file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Operation,
			rec.OperandA.String(),
			rec.OperandB.String(),
			rec.Result.String(),
			rec.Timestamp.Format(time.RFC3339Nano),
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("writing history: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing history file: %w", err)
	}
	return nil
}

// Load reads records from path. A missing file yields an empty history,
// not an error.
func Load(path string) ([]calc.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Skip the header row.
	records := make([]calc.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("parsing %s row %d: %w", path, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (calc.Record, error) {
	a, err := decimal.NewFromString(row[1])
	if err != nil {
		return calc.Record{}, fmt.Errorf("operand_a %q: %w", row[1], err)
	}
	b, err := decimal.NewFromString(row[2])
	if err != nil {
		return calc.Record{}, fmt.Errorf("operand_b %q: %w", row[2], err)
	}
	result, err := decimal.NewFromString(row[3])
	if err != nil {
		return calc.Record{}, fmt.Errorf("result %q: %w", row[3], err)
	}
	ts, err := time.Parse(time.RFC3339Nano, row[4])
	if err != nil {
		return calc.Record{}, fmt.Errorf("timestamp %q: %w", row[4], err)
	}

	return calc.Record{
		ID:        uuid.New(),
		Operation: row[0],
		OperandA:  a,
		OperandB:  b,
		Result:    result,
		Timestamp: ts,
	}, nil
}
