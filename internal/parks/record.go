package parks

import "errors"

var (
	// ErrNoBlocks is returned when the parser produced nothing to extract from.
	ErrNoBlocks = errors.New("parks: no blocks to extract")
	// ErrParkNameMissing is returned when no level-1 heading names the park.
	ErrParkNameMissing = errors.New("parks: no level-1 heading with the park name")
)

// Detail keys with dedicated coercion.
const (
	DetailEstablished = "established"
	DetailSize        = "size"
	DetailSizeAcres   = "size_acres"
	DetailSizeRaw     = "size_raw"
)

// Row is one reconstructed table row keyed by semantic column name. A nil
// value is a cell missing from a short column.
type Row map[string]*string

// Value returns the cell for key, or nil.
func (r Row) Value(key string) *string {
	if r == nil {
		return nil
	}
	return r[key]
}

// Record is everything extracted from one park guide.
type Record struct {
	Name string
	// Details holds the key/value lines between the H1 and the first H2.
	// "established" is an int when it parses, a string otherwise; "size"
	// becomes "size_acres" (int) or "size_raw" (string).
	Details     map[string]any
	Description string
	Camping     []Row
	Fees        []Row
	Seasons     []Row
	Attractions []Row
}

func newRecord() *Record {
	return &Record{Details: map[string]any{}}
}

// Rows returns the rows collected for a list section.
func (r *Record) Rows(section Section) []Row {
	switch section {
	case SectionCamping:
		return r.Camping
	case SectionFees:
		return r.Fees
	case SectionSeasons:
		return r.Seasons
	case SectionAttractions:
		return r.Attractions
	}
	return nil
}

func (r *Record) appendRows(section Section, rows []Row) {
	switch section {
	case SectionCamping:
		r.Camping = append(r.Camping, rows...)
	case SectionFees:
		r.Fees = append(r.Fees, rows...)
	case SectionSeasons:
		r.Seasons = append(r.Seasons, rows...)
	case SectionAttractions:
		r.Attractions = append(r.Attractions, rows...)
	}
}

// DetailString returns a details value rendered as text, or nil when absent.
func (r *Record) DetailString(key string) *string {
	value, ok := r.Details[key]
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case string:
		return &v
	default:
		return nil
	}
}

// DetailInt returns an integer details value, or nil when absent or textual.
func (r *Record) DetailInt(key string) *int64 {
	switch v := r.Details[key].(type) {
	case int:
		n := int64(v)
		return &n
	case int64:
		return &v
	}
	return nil
}

var (
	errTableNoHeaders     = errors.New("table has no headers")
	errTableNoRows        = errors.New("table has headers but no rows")
	errTableColumnMissing = errors.New("table column missing")
)
