package seogen

import "strings"

// Column names recognized by ingestion. Any other header is kept in
// Record.Attributes.
const (
	ColumnTitle       = "title"
	ColumnDescription = "description"
	ColumnContent     = "content"
	ColumnKeywords    = "keywords"
	ColumnLocation    = "location"

	// Optional hotel columns override the configured hotel defaults.
	ColumnImage       = "image"
	ColumnPriceRange  = "price_range"
	ColumnRatingValue = "rating_value"
	ColumnCountry     = "country"
)

// RequiredColumns lists the headers an ingested table must carry.
var RequiredColumns = []string{ColumnTitle, ColumnDescription, ColumnContent}

// Record represents the source material for one page, one row of the
// ingested table. Records are immutable once constructed.
type Record struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"` // newline-delimited paragraphs
	Keywords    string `json:"keywords,omitempty"`
	Location    string `json:"location,omitempty"`

	// Attributes holds columns outside the known set, keyed by header.
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Validate returns EMISSINGFIELD if the record lacks text needed for derivation.
func (r *Record) Validate() error {
	if r.Title == "" {
		return Errorf(EMISSINGFIELD, "record title required")
	}
	if r.Content == "" {
		return Errorf(EMISSINGFIELD, "record %q content required", r.Title)
	}
	return nil
}

// Field returns the value of the named column and whether it is set.
func (r *Record) Field(name string) (string, bool) {
	switch name {
	case ColumnTitle:
		return r.Title, r.Title != ""
	case ColumnDescription:
		return r.Description, r.Description != ""
	case ColumnContent:
		return r.Content, r.Content != ""
	case ColumnKeywords:
		return r.Keywords, r.Keywords != ""
	case ColumnLocation:
		return r.Location, r.Location != ""
	}
	v, ok := r.Attributes[name]
	return v, ok
}

// Paragraphs splits the content body on newlines.
func (r *Record) Paragraphs() []string {
	return strings.Split(r.Content, "\n")
}

// NewRecord builds a record from a header→value row. Unknown headers are
// copied into Attributes.
func NewRecord(row map[string]string) *Record {
	r := &Record{}
	for k, v := range row {
		switch k {
		case ColumnTitle:
			r.Title = v
		case ColumnDescription:
			r.Description = v
		case ColumnContent:
			r.Content = v
		case ColumnKeywords:
			r.Keywords = v
		case ColumnLocation:
			r.Location = v
		default:
			if r.Attributes == nil {
				r.Attributes = make(map[string]string)
			}
			r.Attributes[k] = v
		}
	}
	return r
}
