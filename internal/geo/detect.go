package geo

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DetectionKind classifies a resolution outcome.
type DetectionKind string

const (
	DetectionNone      DetectionKind = "none"
	DetectionMatched   DetectionKind = "matched"
	DetectionAmbiguous DetectionKind = "ambiguous"
)

// Detection is the outcome of resolving one free-text message. Province is
// set for matched results; Options carries the sorted, de-duplicated
// candidate set (always two or more) for ambiguous ones.
type Detection struct {
	Kind     DetectionKind `json:"kind"`
	Province string        `json:"province,omitempty"`
	Options  []string      `json:"options,omitempty"`
}

// minPrefixRunes guards the single-token prefix fallback against matching
// half the catalog on one or two letters.
const minPrefixRunes = 3

// DetectProvince resolves free text to zero, one or many candidate provinces.
//
// The text is normalized and every contiguous n-gram of one to three tokens
// is looked up in the index; province names in this domain are at most three
// words, so longer n-grams cannot match. All unique hits are reported rather
// than the longest one: a message that brushes both "Kasai" and
// "Kasai-Central" comes back ambiguous so the caller can ask the user instead
// of the resolver guessing wrong silently.
//
// When the whole input is a single token it is additionally treated as a
// prefix over the closed province list, merged with the exact hits. A bare
// "kasai" therefore offers Kasai, Kasai-Central and Kasai-Oriental, and a
// truncated "tshop" still finds Tshopo.
func DetectProvince(text string, idx *Index) Detection {
	if idx == nil {
		return Detection{Kind: DetectionNone}
	}

	tokens := strings.Fields(Normalize(text))
	if len(tokens) == 0 {
		return Detection{Kind: DetectionNone}
	}

	grams := make(map[string]struct{})
	for n := 1; n <= 3; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams[strings.Join(tokens[i:i+n], " ")] = struct{}{}
		}
	}

	hits := make(map[string]struct{})
	for g := range grams {
		if canon, ok := idx.Lookup(g); ok {
			hits[canon] = struct{}{}
		}
	}

	if len(tokens) == 1 && utf8.RuneCountInString(tokens[0]) >= minPrefixRunes {
		for _, p := range Provinces {
			key := Normalize(p)
			if !strings.HasPrefix(key, tokens[0]) {
				continue
			}
			if canon, ok := idx.Lookup(key); ok {
				hits[canon] = struct{}{}
			}
		}
	}

	return classify(hits)
}

func classify(hits map[string]struct{}) Detection {
	switch len(hits) {
	case 0:
		return Detection{Kind: DetectionNone}
	case 1:
		for p := range hits {
			return Detection{Kind: DetectionMatched, Province: p}
		}
	}

	options := make([]string, 0, len(hits))
	for p := range hits {
		options = append(options, p)
	}
	sort.Slice(options, func(i, j int) bool {
		return strings.ToLower(options[i]) < strings.ToLower(options[j])
	})
	return Detection{Kind: DetectionAmbiguous, Options: options}
}
