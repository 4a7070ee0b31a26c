package combine

// Accumulator collects the combined header and every decoded row in visit
// order. The header slot is write-once: the first SetHeader call wins and
// later calls are ignored. It is used from a single goroutine.
type Accumulator struct {
	header       Header
	hasHeader    bool
	headerSource string
	rows         []Row
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// SetHeader stores h as the combined header if none has been captured yet.
// It reports whether h was kept.
func (a *Accumulator) SetHeader(h Header, source string) bool {
	if a.hasHeader {
		return false
	}
	a.header = append(Header(nil), h...)
	a.hasHeader = true
	a.headerSource = source
	return true
}

// Header returns the captured header and whether one has been captured.
func (a *Accumulator) Header() (Header, bool) {
	return a.header, a.hasHeader
}

// HeaderSource returns the path of the file that supplied the header.
func (a *Accumulator) HeaderSource() string {
	return a.headerSource
}

// Append adds a row at the end.
func (a *Accumulator) Append(r Row) {
	a.rows = append(a.rows, r)
}

// Rows returns the accumulated rows in insertion order.
func (a *Accumulator) Rows() []Row {
	return a.rows
}

// Len returns the number of accumulated rows.
func (a *Accumulator) Len() int {
	return len(a.rows)
}
