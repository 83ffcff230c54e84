package ports

import (
	"namecorrector/domain/dataset"
)

// SpreadsheetReader parses an uploaded spreadsheet into a table
type SpreadsheetReader interface {
	ReadUpload(upload *dataset.Upload) (*dataset.Table, error)
	DetectNameColumn(table *dataset.Table) string
}

// SpreadsheetWriter encodes a table as a workbook
type SpreadsheetWriter interface {
	Write(table *dataset.Table) ([]byte, error)
}
