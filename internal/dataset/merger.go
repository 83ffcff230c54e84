package dataset

import (
	"fmt"
	"time"

	"namecorrector/domain/core"
	"namecorrector/domain/dataset"
	"namecorrector/domain/taxon"
	"namecorrector/internal"
)

// MergeResult describes a merged table
type MergeResult struct {
	Table           *dataset.Table `json:"-"`
	RowCount        int            `json:"row_count"`
	ColumnCount     int            `json:"column_count"`
	AppendedColumns []string       `json:"appended_columns"`
	ExecutionTime   time.Duration  `json:"execution_time"`
	Warnings        []string       `json:"warnings,omitempty"`
}

// Merger appends correction columns to an uploaded table by row position
type Merger struct {
	logger *internal.Logger
}

// NewMerger creates a new table merger
func NewMerger(logger *internal.Logger) *Merger {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Merger{logger: logger.With("Merger")}
}

// Merge returns a new table holding every input column followed by the four
// correction columns. Record i lands on row i; the input table is not
// modified. Appended headers that collide with input headers get a ".<n>"
// suffix so the input columns keep their names.
func (m *Merger) Merge(table *dataset.Table, records []taxon.CorrectionRecord, columns []string) (*MergeResult, error) {
	startTime := time.Now()

	if table == nil {
		return nil, core.ErrEmptyTable
	}
	if len(records) != table.RowCount() {
		return nil, fmt.Errorf("%w: %d records for %d rows", core.ErrLengthMismatch, len(records), table.RowCount())
	}
	if len(columns) != 4 {
		return nil, fmt.Errorf("expected 4 correction column names, got %d", len(columns))
	}

	width := table.ColumnCount()
	headers := make([]string, 0, width+len(columns))
	headers = append(headers, table.Headers...)
	headers = append(headers, columns...)
	headers = dataset.NormalizeHeaders(headers)

	var warnings []string
	for i, name := range columns {
		if got := headers[width+i]; got != name {
			warnings = append(warnings, fmt.Sprintf("column %q already present, appended as %q", name, got))
		}
	}

	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		merged := make([]string, 0, len(headers))
		merged = append(merged, row...)
		merged = append(merged, records[i].Cells()...)
		rows[i] = merged
	}

	result := &MergeResult{
		Table:           &dataset.Table{Headers: headers, Rows: rows},
		RowCount:        len(rows),
		ColumnCount:     len(headers),
		AppendedColumns: headers[width:],
		ExecutionTime:   time.Since(startTime),
		Warnings:        warnings,
	}
	for _, w := range warnings {
		m.logger.Warn("%s", w)
	}
	m.logger.Debug("merged %d rows into %d columns", result.RowCount, result.ColumnCount)
	return result, nil
}
