package seogen

import (
	"regexp"
	"strings"
	"unicode"
)

// whitespace matches ASCII and Unicode space separators, so titles with
// non-breaking spaces split into words.
const whitespace = `[\t\n\v\f\r\p{Z}\x{FEFF}]`

var (
	slugSpaceRe    = regexp.MustCompile(whitespace + `+`)
	slugInvalidRe  = regexp.MustCompile(`[^\w\-]+`)
	slugHyphensRe  = regexp.MustCompile(`-{2,}`)
	slugLeadingRe  = regexp.MustCompile(`^-+`)
	slugTrailingRe = regexp.MustCompile(`-+$`)
)

// Slugify canonicalizes a title into a lowercase, hyphen-separated slug.
// The steps run in a fixed order; reordering them changes the output.
// Distinct titles may produce the same slug.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = strings.TrimFunc(s, isSpace)
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugInvalidRe.ReplaceAllString(s, "")
	s = slugHyphensRe.ReplaceAllString(s, "-")
	s = slugLeadingRe.ReplaceAllString(s, "")
	return slugTrailingRe.ReplaceAllString(s, "")
}

// PageURL joins a base URL and a slug into an absolute page URL.
func PageURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/" + slug
}

// isSpace reports whether r belongs to the whitespace class.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}
