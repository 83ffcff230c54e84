package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"namecorrector/domain/dataset"
	"namecorrector/internal"
	"namecorrector/internal/errors"
)

// DataReader reads uploaded Excel and CSV files into a dataset.Table
type DataReader struct {
	config ExcelConfig
	logger *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ExcelConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{config: config, logger: logger.With("DataReader")}
}

// ReadUpload dispatches on the upload's extension
func (r *DataReader) ReadUpload(upload *dataset.Upload) (*dataset.Table, error) {
	format, err := upload.Format()
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s (expected .xlsx or .csv)", upload.Filename))
	}
	r.logger.Info("Starting to read %s file: %s", format, upload.Filename)

	switch format {
	case dataset.FormatCSV:
		return r.ReadCSV(upload.File)
	default:
		return r.ReadExcel(upload.File)
	}
}

// ReadExcel reads the configured (or first) sheet of a workbook
func (r *DataReader) ReadExcel(src io.Reader) (*dataset.Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeInvalidInput, err), "failed to open Excel file")
	}
	defer f.Close()

	sheet := r.config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.InvalidInput("Excel file has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeInvalidInput, err), fmt.Sprintf("failed to read sheet %q", sheet))
	}
	r.logger.Debug("Sheet %q read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// ReadCSV reads comma-separated data; a leading UTF-8 BOM is dropped
func (r *DataReader) ReadCSV(src io.Reader) (*dataset.Table, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeInvalidInput, err), "failed to read CSV file")
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}
	r.logger.Debug("CSV file read (%d rows)", len(rows))

	return r.processRows(rows)
}

// processRows turns the header row and data rows into a Table
func (r *DataReader) processRows(rows [][]string) (*dataset.Table, error) {
	if len(rows) == 0 {
		return nil, errors.InvalidInput("file is empty: a header row is required")
	}
	if err := r.cleanCells(rows); err != nil {
		return nil, err
	}

	table, err := dataset.NewTable(rows[0], rows[1:])
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeInvalidInput, err), "file has no columns")
	}

	r.logger.Info("file processed (%d columns, %d rows)", table.ColumnCount(), table.RowCount())
	return table, nil
}

// cleanCells rewrites cells in place to text a workbook can store verbatim:
// invalid UTF-8 becomes U+FFFD and characters XML cannot carry are dropped.
// Cells longer than excelize.TotalCellChars are rejected.
func (r *DataReader) cleanCells(rows [][]string) error {
	cleaned := 0
	for i, row := range rows {
		for j, cell := range row {
			clean := cleanCell(cell)
			if clean != cell {
				row[j] = clean
				cleaned++
			}
			if n := utf8.RuneCountInString(clean); n > excelize.TotalCellChars {
				return errors.InvalidInput(fmt.Sprintf("cell in row %d, column %d has %d characters (limit %d)",
					i+1, j+1, n, excelize.TotalCellChars))
			}
		}
	}
	if cleaned > 0 {
		r.logger.Warn("%d cells contained characters a workbook cannot store; they were cleaned", cleaned)
	}
	return nil
}

func cleanCell(cell string) string {
	cell = strings.ToValidUTF8(cell, "\uFFFD")
	return strings.Map(func(c rune) rune {
		if isXMLChar(c) {
			return c
		}
		return -1
	}, cell)
}

// isXMLChar reports whether c is allowed in XML 1.0 character data
func isXMLChar(c rune) bool {
	return c == '\t' || c == '\n' || c == '\r' ||
		(c >= 0x20 && c <= 0xD7FF) ||
		(c >= 0xE000 && c <= 0xFFFD) ||
		(c >= 0x10000 && c <= 0x10FFFF)
}

// DetectNameColumn suggests the column most likely to hold scientific names:
// the first header matching a configured hint, else the first column whose
// non-empty values mostly look like binomials, else the first column.
func (r *DataReader) DetectNameColumn(table *dataset.Table) string {
	if table == nil || len(table.Headers) == 0 {
		return ""
	}

	for _, hint := range r.config.NameHints {
		for _, header := range table.Headers {
			if strings.EqualFold(strings.TrimSpace(header), hint) {
				return header
			}
		}
	}

	for idx, header := range table.Headers {
		if r.looksLikeNameColumn(table, idx) {
			return header
		}
	}

	return table.Headers[0]
}

// looksLikeNameColumn checks if most non-empty values are "Genus epithet ..."
func (r *DataReader) looksLikeNameColumn(table *dataset.Table, idx int) bool {
	nonEmpty, binomial := 0, 0
	for _, row := range table.Rows {
		value := strings.TrimSpace(row[idx])
		if value == "" {
			continue
		}
		nonEmpty++
		words := strings.Fields(value)
		if len(words) >= 2 && isCapitalized(words[0]) && isLowerWord(words[1]) {
			binomial++
		}
	}
	return nonEmpty > 0 && float64(binomial)/float64(nonEmpty) > 0.5
}

func isCapitalized(word string) bool {
	for i, c := range word {
		if i == 0 {
			if c < 'A' || c > 'Z' {
				return false
			}
			continue
		}
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return len(word) > 1
}

func isLowerWord(word string) bool {
	for _, c := range word {
		if (c < 'a' || c > 'z') && c != '-' {
			return false
		}
	}
	return len(word) > 1
}
