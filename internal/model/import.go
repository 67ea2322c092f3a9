package model

// ImportReport summarizes a bulk import. Skipped rows are identified by their
// 1-based line (CSV) or row (spreadsheet) number, header included.
type ImportReport struct {
	FileName    string `json:"fileName"`
	TotalRows   int    `json:"totalRows"`
	Imported    int    `json:"imported"`
	Skipped     int    `json:"skipped"`
	SkippedRows []int  `json:"skippedRows"`
}

// ImportResponse is the body of a successful import.
type ImportResponse struct {
	Message string       `json:"message"`
	Report  ImportReport `json:"report"`
}

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}
