// Package runlog keeps an append-only audit trail of conversion runs
// next to the output files, so an operator can reconcile what was
// generated before uploading it to the settlement tool.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp time.Time
	RunID     string
	Kind      string
	Provider  string
	Input     string
	Written   int
	Skipped   int
	TotalBAT  string
	Files     int
}

// Header is the CSV header for runs.csv.
const Header = "timestamp,run_id,kind,provider,input,records_written,records_skipped,total_bat,output_files"

const (
	numFields    = 9
	logFile      = "runs.csv"
	colTimestamp = 0
	colRunID     = 1
	colKind      = 2
	colProvider  = 3
	colInput     = 4
	colWritten   = 5
	colSkipped   = 6
	colTotalBAT  = 7
	colFiles     = 8
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colKind] = e.Kind
	row[colProvider] = e.Provider
	row[colInput] = e.Input
	row[colWritten] = strconv.Itoa(e.Written)
	row[colSkipped] = strconv.Itoa(e.Skipped)
	row[colTotalBAT] = e.TotalBAT
	row[colFiles] = strconv.Itoa(e.Files)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	written, err := strconv.Atoi(record[colWritten])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing records_written %q: %w", record[colWritten], err)
	}

	skipped, err := strconv.Atoi(record[colSkipped])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing records_skipped %q: %w", record[colSkipped], err)
	}

	files, err := strconv.Atoi(record[colFiles])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing output_files %q: %w", record[colFiles], err)
	}

	return Entry{
		Timestamp: ts,
		RunID:     record[colRunID],
		Kind:      record[colKind],
		Provider:  record[colProvider],
		Input:     record[colInput],
		Written:   written,
		Skipped:   skipped,
		TotalBAT:  record[colTotalBAT],
		Files:     files,
	}, nil
}

// Append writes entries to <dir>/runs.csv, creating the file and
// header if needed.
func Append(dir string, entries []Entry) error {
	path := filepath.Join(dir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <dir>/runs.csv. Returns nil if the
// file does not exist.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
