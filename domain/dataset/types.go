package dataset

import (
	"io"
	"path/filepath"
	"strings"

	"namecorrector/domain/core"
)

// Format is the spreadsheet encoding of an upload
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// SpreadsheetMIME is the content type of generated workbooks
const SpreadsheetMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Upload is a spreadsheet received from the browser
type Upload struct {
	Filename string
	Size     int64
	MimeType string
	File     io.Reader
}

// Format infers the spreadsheet encoding from the file extension
func (u *Upload) Format() (Format, error) {
	return FormatFromName(u.Filename)
}

// FormatFromName maps .xlsx/.xlsm to FormatXLSX and .csv to FormatCSV
func FormatFromName(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", core.ErrUnsupportedInput
	}
}

// Export is a generated workbook ready for download
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
	Checksum    core.Hash
	CreatedAt   core.Timestamp
}

// ExportName returns corrected_names_<timestamp>.xlsx
func ExportName(at core.Timestamp) string {
	return "corrected_names_" + at.FileStamp() + ".xlsx"
}
