package namenorm

// Package namenorm canonicalizes raw player input before it reaches the
// submission pipeline. The canonical form is the one stored in the
// pending-name set and compared by the similarity matcher, so every caller
// must go through Normalize.

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining diacritical marks after canonical
// decomposition, so "Beyoncé" and "Beyonce" normalize identically.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize returns the canonical form of a submitted name: NFD-decomposed,
// trimmed, diacritics stripped, and with the first internal space replaced
// by an underscore. Only the first space is substituted; this mirrors the
// Wikidata page-title convention for the common "Given Family" case.
// Normalize is total: it never fails, and empty input yields "". Callers
// reject empty results before starting the pipeline.
func Normalize(raw string) string {
	s, _, err := transform.String(stripMarks, raw)
	if err != nil {
		// transform only fails on a misbehaving Transformer; fall back to
		// the raw text rather than dropping the submission.
		s = raw
	}
	s = strings.TrimSpace(s)
	return strings.Replace(s, " ", "_", 1)
}
