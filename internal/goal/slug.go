package goal

import (
	"strings"
	"unicode"
)

const (
	// SlugMaxLength bounds generated slugs to keep branch names readable.
	SlugMaxLength = 50

	// slugMinWordBoundary is the minimum length kept when trimming a
	// truncated slug back to a word boundary.
	slugMinWordBoundary = 30
)

// Slugify converts a free-text description into a lowercase hyphen slug:
// keep [a-z0-9], map whitespace/underscore/hyphen runs to a single hyphen,
// drop everything else, trim hyphens, bound the length. Slugify is
// idempotent: an already-slugified string passes through unchanged.
func Slugify(text string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '_' || r == '-':
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	s := strings.Trim(b.String(), "-")
	s = truncateSlug(s)
	return strings.Trim(s, "-")
}

// truncateSlug limits the slug to SlugMaxLength, preferring word boundaries.
func truncateSlug(s string) string {
	if len(s) <= SlugMaxLength {
		return s
	}
	s = s[:SlugMaxLength]
	if idx := strings.LastIndex(s, "-"); idx > slugMinWordBoundary {
		s = s[:idx]
	}
	return s
}
