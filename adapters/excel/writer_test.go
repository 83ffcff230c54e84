package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"namecorrector/domain/dataset"
	"namecorrector/internal/errors"
)

func TestWriteRoundTrip(t *testing.T) {
	table, err := dataset.NewTable(
		[]string{"id", "species", "weight", "code", "nombre_corregido", "estatus"},
		[][]string{
			{"1", "Panthera leo", "190.5", "007", "Panthera leo (Linnaeus, 1758)", "ACCEPTED"},
			{"2", "xyzabc123", "", "1e3", "", "No encontrado"},
			{"3", "", "-4", "12345678901234567890", "", "Error 503"},
		},
	)
	require.NoError(t, err)

	data, err := NewDataWriter(DefaultExcelConfig(), quietLogger()).Write(table)
	require.NoError(t, err)

	back, err := NewDataReader(DefaultExcelConfig(), quietLogger()).ReadExcel(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, table.Headers, back.Headers)
	assert.Equal(t, table.Rows, back.Rows)
	assert.True(t, table.Equal(back))
}

func TestWriteRoundTripCSVCells(t *testing.T) {
	cases := map[string]struct {
		cell string
		want string
	}{
		"control character": {"Panthera\x01leo", "Pantheraleo"},
		"form feed":         {"Puma\fconcolor", "Pumaconcolor"},
		"invalid utf-8":     {"Quercus \xff\xferobur", "Quercus \uFFFDrobur"},
		"kept whitespace":   {"a\tb\nc", "a\tb\nc"},
		"padded":            {"  Puma  ", "  Puma  "},
		"at cell limit":     {strings.Repeat("a", excelize.TotalCellChars), strings.Repeat("a", excelize.TotalCellChars)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var src bytes.Buffer
			src.WriteString("species\n\"")
			src.WriteString(tc.cell)
			src.WriteString("\"\n")

			table, err := NewDataReader(DefaultExcelConfig(), quietLogger()).ReadCSV(&src)
			require.NoError(t, err)
			require.Equal(t, tc.want, table.Rows[0][0])

			data, err := NewDataWriter(DefaultExcelConfig(), quietLogger()).Write(table)
			require.NoError(t, err)
			back, err := NewDataReader(DefaultExcelConfig(), quietLogger()).ReadExcel(bytes.NewReader(data))
			require.NoError(t, err)
			assert.True(t, table.Equal(back), "got %q", back.Rows)
		})
	}
}

func TestReadCSVRejectsOversizedCell(t *testing.T) {
	src := strings.NewReader("species\n" + strings.Repeat("a", excelize.TotalCellChars+1) + "\n")

	_, err := NewDataReader(DefaultExcelConfig(), quietLogger()).ReadCSV(src)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Contains(t, err.Error(), "row 2, column 1")
}

func TestWriteCellTypes(t *testing.T) {
	table, err := dataset.NewTable(
		[]string{"n", "s"},
		[][]string{{"190.5", "007"}},
	)
	require.NoError(t, err)

	data, err := NewDataWriter(DefaultExcelConfig(), quietLogger()).Write(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())

	numType, err := f.GetCellType(DefaultSheetName, "A2")
	require.NoError(t, err)
	assert.NotContains(t, []excelize.CellType{excelize.CellTypeSharedString, excelize.CellTypeInlineString}, numType)

	strType, err := f.GetCellType(DefaultSheetName, "B2")
	require.NoError(t, err)
	assert.Contains(t, []excelize.CellType{excelize.CellTypeSharedString, excelize.CellTypeInlineString}, strType)
}

func TestWriteCustomSheetName(t *testing.T) {
	table, err := dataset.NewTable([]string{"species"}, [][]string{{"Puma concolor"}})
	require.NoError(t, err)

	cfg := DefaultExcelConfig()
	cfg.ExportSheet = "Corregidos"
	data, err := NewDataWriter(cfg, quietLogger()).Write(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Corregidos"}, f.GetSheetList())
}

func TestCellValue(t *testing.T) {
	w := NewDataWriter(DefaultExcelConfig(), quietLogger())

	assert.Nil(t, w.cellValue(""))
	assert.Equal(t, 42.0, w.cellValue("42"))
	assert.Equal(t, -0.25, w.cellValue("-0.25"))
	assert.Equal(t, "0042", w.cellValue("0042"))
	assert.Equal(t, "1.50", w.cellValue("1.50"))
	assert.Equal(t, "1e3", w.cellValue("1e3"))
	assert.Equal(t, "Panthera", w.cellValue("Panthera"))

	cfg := DefaultExcelConfig()
	cfg.NumericCells = false
	assert.Equal(t, "42", NewDataWriter(cfg, quietLogger()).cellValue("42"))
}
