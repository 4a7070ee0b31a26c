package combine

// Header is the ordered list of field names written as the first output record.
type Header []string

// Row is one decoded data record. Fields are kept as text and are not
// checked against the header width.
type Row []string

// FileStats summarizes what a single input file contributed.
type FileStats struct {
	Path           string // The file path
	Rows           int    // Data records appended to the accumulator
	Skipped        int    // Malformed records that were dropped
	CapturedHeader bool   // Whether this file supplied the combined header
}

// Result describes a completed run.
type Result struct {
	OutputPath   string      // The combined CSV file
	XLSXPath     string      // The companion workbook, empty when not requested
	Header       Header      // The header that was written
	HeaderSource string      // File the header came from, empty if none
	Files        []FileStats // Per-file statistics in visit order
	Rows         int         // Total data rows written
	Skipped      int         // Total malformed records dropped
}
