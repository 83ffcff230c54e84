package excel

import (
	"regexp"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"namecorrector/domain/dataset"
	"namecorrector/internal"
	"namecorrector/internal/errors"
)

var plainDecimal = regexp.MustCompile(`^-?(0|[1-9][0-9]{0,14})(\.[0-9]{1,15})?$`)

// DataWriter serializes tables into in-memory workbooks
type DataWriter struct {
	config ExcelConfig
	logger *internal.Logger
}

// NewDataWriter creates a workbook writer
func NewDataWriter(config ExcelConfig, logger *internal.Logger) *DataWriter {
	if config.ExportSheet == "" {
		config.ExportSheet = DefaultSheetName
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataWriter{config: config, logger: logger.With("DataWriter")}
}

// Write renders the table on a single sheet: the header row then data rows.
// Empty cells are left unset so reading the bytes back yields the same table.
func (w *DataWriter) Write(table *dataset.Table) ([]byte, error) {
	startTime := time.Now()
	f := excelize.NewFile()
	defer f.Close()

	sheet := w.config.ExportSheet
	if current := f.GetSheetName(0); current != sheet {
		if err := f.SetSheetName(current, sheet); err != nil {
			return nil, errors.Wrap(err, "failed to name export sheet")
		}
	}

	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "failed to write header row")
	}

	for i, row := range table.Rows {
		values := make([]interface{}, len(row))
		for j, cell := range row {
			values[j] = w.cellValue(cell)
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, errors.Wrap(err, "failed to address row")
		}
		if err := f.SetSheetRow(sheet, cellRef, &values); err != nil {
			return nil, errors.Wrapf(err, "failed to write row %d", i+1)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize workbook")
	}
	w.logger.Info("workbook written in %.2fms (%d columns, %d rows, %d bytes)",
		float64(time.Since(startTime).Nanoseconds())/1e6, table.ColumnCount(), table.RowCount(), buf.Len())
	return buf.Bytes(), nil
}

// cellValue stores plain decimals as numbers when they survive a float64
// round trip unchanged; everything else stays text.
func (w *DataWriter) cellValue(cell string) interface{} {
	if cell == "" {
		return nil
	}
	if !w.config.NumericCells || !plainDecimal.MatchString(cell) {
		return cell
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || strconv.FormatFloat(v, 'f', -1, 64) != cell {
		return cell
	}
	return v
}
