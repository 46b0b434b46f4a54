package importer

// RowError is one failed row in an import result, keyed by the 1-based
// spreadsheet row number users see in their editor.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarises one import run. Blank rows are excluded from
// ProcessedCount; every failed row appears exactly once in Errors.
type ImportResult struct {
	Message        string     `json:"message"`
	ProcessedCount int        `json:"processedCount"`
	SuccessCount   int        `json:"successCount"`
	ErrorCount     int        `json:"errorCount"`
	Errors         []RowError `json:"errors"`
}

func (r *ImportResult) addError(row int, err error) {
	r.Errors = append(r.Errors, RowError{Row: row, Message: err.Error()})
	r.ErrorCount++
}
