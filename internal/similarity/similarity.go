package similarity

// Package similarity detects near-duplicate submissions against the
// accepted rosters. Distances are computed normalized-vs-normalized: the
// candidate arrives already normalized, and each accepted display name is
// normalized the same way before comparison, so the check is symmetric
// under the canonical representation.

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/lndk/hundred-names/internal/game"
	"github.com/lndk/hundred-names/internal/namenorm"
)

// DefaultThreshold is the maximum edit distance treated as a duplicate.
const DefaultThreshold = 2

// Matcher flags candidates whose name sits within Threshold edits of an
// accepted entity, or whose external id collides with one.
type Matcher struct {
	Threshold int
}

func NewMatcher(threshold int) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{Threshold: threshold}
}

// IsDuplicate reports whether the normalized candidate duplicates any
// accepted entity. candidateID may be empty when the submission has not
// been resolved yet; when both ids are known, id equality is authoritative
// and overrides edit distance.
func (m *Matcher) IsDuplicate(candidate, candidateID string, accepted []game.Person) bool {
	cand := strings.ToLower(candidate)
	for _, p := range accepted {
		if candidateID != "" && p.WikidataID != "" && candidateID == p.WikidataID {
			return true
		}
		name := strings.ToLower(namenorm.Normalize(p.Name))
		if levenshtein.ComputeDistance(cand, name) <= m.Threshold {
			return true
		}
	}
	return false
}
