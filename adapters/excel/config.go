package excel

// ExcelConfig holds configuration for spreadsheet reading and writing
type ExcelConfig struct {
	SheetName    string   `json:"sheet_name"`    // sheet to read; empty means the first sheet
	ExportSheet  string   `json:"export_sheet"`  // sheet name of generated workbooks
	NameHints    []string `json:"name_hints"`    // header names suggesting a scientific-name column
	NumericCells bool     `json:"numeric_cells"` // store plain decimal strings as numbers on export
}

// DefaultExcelConfig returns sensible defaults for spreadsheet processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		ExportSheet: DefaultSheetName,
		NameHints: []string{
			"scientificname",
			"scientific_name",
			"nombre_cientifico",
			"nombrecientifico",
			"nombre científico",
			"species",
			"especie",
			"taxon",
			"name",
			"nombre",
		},
		NumericCells: true,
	}
}
