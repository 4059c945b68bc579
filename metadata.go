package seogen

import (
	"regexp"
	"sort"
	"strings"
)

// MaxMetaDescription is the maximum length, in characters, of a meta description.
const MaxMetaDescription = 160

// MaxKeywords is the number of keywords extracted from content when none
// are given explicitly.
const MaxKeywords = 5

// FeaturesHeader is the fixed closing header suggestion.
const FeaturesHeader = "Features & Amenities"

// Metadata holds the search-engine metadata derived for one page.
type Metadata struct {
	TitleTag        string   `json:"titleTag"`
	MetaDescription string   `json:"metaDescription"`
	Keywords        []string `json:"keywords"`
	Headers         []string `json:"headers"`
}

// MetadataDeriver derives SEO metadata from a record.
type MetadataDeriver interface {
	// DeriveMetadata returns EMISSINGFIELD if the record cannot be derived.
	DeriveMetadata(r *Record) (*Metadata, error)
}

// DeriveMetadata computes SEO metadata for a record using cfg's brand.
func DeriveMetadata(r *Record, cfg Config) (*Metadata, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return &Metadata{
		TitleTag:        r.Title + cfg.TitleSuffix(),
		MetaDescription: truncate(r.Description, MaxMetaDescription),
		Keywords:        keywords(r),
		Headers:         headers(r),
	}, nil
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func keywords(r *Record) []string {
	if r.Keywords != "" {
		parts := strings.Split(r.Keywords, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		return parts
	}
	return ExtractKeywords(r.Content, MaxKeywords)
}

func headers(r *Record) []string {
	h := []string{r.Title}
	if r.Location != "" {
		h = append(h, r.Title+" in "+r.Location)
	}
	return append(h, FeaturesHeader)
}

var nonWordRe = regexp.MustCompile(`\W`)

// ExtractKeywords returns up to n of the most frequent words in text.
// Words are lower-cased, stripped of non-word characters and must be longer
// than three characters. Equal counts keep the order words were first seen.
func ExtractKeywords(text string, n int) []string {
	counts := make(map[string]int)
	var order []string

	for _, word := range slugSpaceRe.Split(strings.ToLower(text), -1) {
		clean := nonWordRe.ReplaceAllString(word, "")
		if len(clean) <= 3 {
			continue
		}
		if counts[clean] == 0 {
			order = append(order, clean)
		}
		counts[clean]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	if order == nil {
		return []string{}
	}
	return order
}
