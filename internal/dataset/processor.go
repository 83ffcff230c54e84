// Package dataset drives a spreadsheet through the correction pipeline:
// parse the upload, correct one column, append the results and encode the
// downloadable workbook.
package dataset

import (
	"context"
	"fmt"
	"time"

	"namecorrector/domain/core"
	"namecorrector/domain/dataset"
	"namecorrector/domain/taxon"
	"namecorrector/internal"
	"namecorrector/internal/correction"
	"namecorrector/internal/errors"
	"namecorrector/ports"
)

// ColumnNamer supplies the localized headers of the appended columns
type ColumnNamer interface {
	CorrectionColumns() []string
}

// Result is the outcome of one correction run
type Result struct {
	Table   *dataset.Table           `json:"-"`
	Records []taxon.CorrectionRecord `json:"records"`
	Summary correction.Summary       `json:"summary"`
	Merge   *MergeResult             `json:"merge"`
	Export  *dataset.Export          `json:"-"`
}

// Processor handles upload parsing and correction runs
type Processor struct {
	reader  ports.SpreadsheetReader
	writer  ports.SpreadsheetWriter
	engine  *correction.Engine
	merger  *Merger
	columns ColumnNamer
	logger  *internal.Logger
}

// NewProcessor creates a new dataset processor
func NewProcessor(reader ports.SpreadsheetReader, writer ports.SpreadsheetWriter, engine *correction.Engine, columns ColumnNamer, logger *internal.Logger) *Processor {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Processor{
		reader:  reader,
		writer:  writer,
		engine:  engine,
		merger:  NewMerger(logger),
		columns: columns,
		logger:  logger.With("DatasetProcessor"),
	}
}

// ProcessUpload parses an uploaded spreadsheet. The first row is the header.
func (p *Processor) ProcessUpload(upload *dataset.Upload) (*dataset.Table, error) {
	if err := p.validateUpload(upload); err != nil {
		return nil, errors.Wrap(err, "upload validation failed")
	}

	p.logger.Info("starting processing for file: %s (%d bytes)", upload.Filename, upload.Size)
	table, err := p.reader.ReadUpload(upload)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", upload.Filename)
	}
	p.logger.Info("loaded %d rows x %d columns from %s", table.RowCount(), table.ColumnCount(), upload.Filename)
	return table, nil
}

// SuggestColumn returns the column most likely to hold scientific names
func (p *Processor) SuggestColumn(table *dataset.Table) string {
	return p.reader.DetectNameColumn(table)
}

// Correct queries every value of column in row order, appends the
// correction columns and encodes the workbook. progress may be nil.
func (p *Processor) Correct(ctx context.Context, table *dataset.Table, column string, progress correction.ProgressFunc) (*Result, error) {
	startTime := time.Now()

	names, err := table.Column(column)
	if err != nil {
		return nil, errors.WithCode(errors.CodeNotFound, err)
	}

	records, err := p.engine.CorrectWithProgress(ctx, names, progress)
	if err != nil {
		return nil, errors.Wrap(err, "correction run aborted")
	}

	merged, err := p.merger.Merge(table, records, p.columns.CorrectionColumns())
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge corrections")
	}

	export, err := p.Export(merged.Table)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Table:   merged.Table,
		Records: records,
		Summary: correction.Summarize(records),
		Merge:   merged,
		Export:  export,
	}
	p.logger.Info("corrected column %q: %d/%d matched in %s, export %s",
		column, result.Summary.Matched, result.Summary.Total, time.Since(startTime).Round(time.Millisecond), export.Filename)
	return result, nil
}

// Export encodes a table as a timestamped workbook
func (p *Processor) Export(table *dataset.Table) (*dataset.Export, error) {
	data, err := p.writer.Write(table)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write workbook")
	}
	now := core.Now()
	return &dataset.Export{
		Filename:    dataset.ExportName(now),
		ContentType: dataset.SpreadsheetMIME,
		Data:        data,
		Checksum:    core.NewHash(data),
		CreatedAt:   now,
	}, nil
}

func (p *Processor) validateUpload(upload *dataset.Upload) error {
	if upload == nil || upload.File == nil {
		return errors.InvalidInput("no file provided")
	}
	if upload.Filename == "" {
		return errors.InvalidInput("filename is required")
	}
	if _, err := upload.Format(); err != nil {
		return errors.InvalidInput(fmt.Sprintf("unsupported file type: %s (expected .xlsx or .csv)", upload.Filename))
	}
	return nil
}
