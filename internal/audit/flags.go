package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/txaudit/internal/model"
)

// Header is the CSV header for the flag log.
const Header = "run_id,kind,account,reason,value,threshold"

const (
	numFields    = 6
	colRunID     = 0
	colKind      = 1
	colAccount   = 2
	colReason    = 3
	colValue     = 4
	colThreshold = 5
)

// Record is one row of the flag log: a Flag tagged with the run that produced it.
type Record struct {
	RunID string
	Flag
}

// MarshalRecord converts a Record to a CSV row.
func MarshalRecord(r Record) []string {
	row := make([]string, numFields)
	row[colRunID] = r.RunID
	row[colKind] = string(r.Kind)
	row[colAccount] = r.Account
	row[colReason] = string(r.Reason)
	row[colValue] = r.Value.String()
	row[colThreshold] = r.Threshold.String()
	return row
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(record []string) (Record, error) {
	if len(record) != numFields {
		return Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	kind, err := model.ParseKind(record[colKind])
	if err != nil {
		return Record{}, err
	}

	value, err := decimal.NewFromString(record[colValue])
	if err != nil {
		return Record{}, fmt.Errorf("parsing value %q: %w", record[colValue], err)
	}

	threshold, err := decimal.NewFromString(record[colThreshold])
	if err != nil {
		return Record{}, fmt.Errorf("parsing threshold %q: %w", record[colThreshold], err)
	}

	return Record{
		RunID: record[colRunID],
		Flag: Flag{
			Kind:      kind,
			Account:   record[colAccount],
			Reason:    Reason(record[colReason]),
			Value:     value,
			Threshold: threshold,
		},
	}, nil
}

// WriteFlags writes flags for one run, header included.
func WriteFlags(w io.Writer, runID string, flags []Flag) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return writeRows(cw, runID, flags)
}

// AppendFlags appends flags to the CSV file at path, creating the file and
// header if needed.
func AppendFlags(path, runID string, flags []Flag) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating flag log dir: %w", err)
		}
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening flag log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	return writeRows(cw, runID, flags)
}

func writeRows(cw *csv.Writer, runID string, flags []Flag) error {
	for i, f := range flags {
		if err := cw.Write(MarshalRecord(Record{RunID: runID, Flag: f})); err != nil {
			return fmt.Errorf("writing flag %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFlags reads every record from a flag log.
func ReadFlags(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading flag log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var out []Record
	for i, rec := range records[1:] {
		r, err := UnmarshalRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, r)
	}
	return out, nil
}
