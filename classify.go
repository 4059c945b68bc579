package seogen

import "strings"

// ContentType tags the structured-data shape generated for a record.
type ContentType string

// ContentType constants.
const (
	ContentTypeArticle ContentType = "Article"
	ContentTypeHotel   ContentType = "Hotel"
)

// Keywords that mark a record as lodging. Matching is substring containment,
// so "roommate" counts as "room".
var (
	hotelContentTerms = []string{"hotel", "room", "suite", "accommodation"}
	hotelTitleTerms   = []string{"hotel", "room", "suite"}
)

// Classify returns the content type of a record. Records mentioning lodging
// in the title or body are hotels; everything else is an article.
func Classify(r *Record) ContentType {
	if containsAny(strings.ToLower(r.Content), hotelContentTerms) ||
		containsAny(strings.ToLower(r.Title), hotelTitleTerms) {
		return ContentTypeHotel
	}
	return ContentTypeArticle
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
