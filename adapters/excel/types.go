package excel

// DefaultSheetName is the sheet created for exported workbooks
const DefaultSheetName = "Sheet1"

const utf8BOM = "\ufeff"
