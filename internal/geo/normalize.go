// Package geo implements free-text province resolution for the DRC map:
// text normalization, the compiled province catalog, and the n-gram matcher
// the chat layer runs over every outgoing message.
package geo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented characters and drops the combining marks,
// so "Kasaï" and "Kasai" produce the same key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// dashRunes are the Unicode dash and hyphen look-alikes folded to plain '-'.
var dashRunes = map[rune]bool{
	'‐': true, // hyphen
	'‑': true, // non-breaking hyphen
	'‒': true, // figure dash
	'–': true, // en dash
	'—': true, // em dash
	'―': true, // horizontal bar
	'−': true, // minus sign
	'﹘': true, // small em dash
	'﹣': true, // small hyphen-minus
	'－': true, // fullwidth hyphen-minus
}

// Normalize canonicalizes text for catalog lookups: strips diacritics, folds
// dash variants to "-", turns punctuation into spaces, collapses whitespace
// and lowercases. The result contains only lowercase ASCII letters, digits,
// single spaces and hyphens. Normalize is total and idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Keep going with the raw text; worst case a lookup key misses.
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	prevSpace := true // swallows leading whitespace
	for _, r := range folded {
		switch {
		case r == '-' || dashRunes[r]:
			b.WriteByte('-')
			prevSpace = false
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevSpace = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevSpace = false
		default:
			// Whitespace and punctuation both collapse to one space.
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}
