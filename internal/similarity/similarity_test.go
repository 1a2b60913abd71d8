package similarity

import (
	"testing"

	"github.com/lndk/hundred-names/internal/game"
)

func accepted(names ...string) []game.Person {
	out := make([]game.Person, len(names))
	for i, n := range names {
		out[i] = game.Person{Name: n}
	}
	return out
}

func TestIsDuplicateEditDistance(t *testing.T) {
	m := NewMatcher(2)

	if !m.IsDuplicate("Marie_Curie", "", accepted("Marie Curie")) {
		t.Fatal("exact match (after normalization) should be a duplicate")
	}
	if !m.IsDuplicate("Mari_Curie", "", accepted("Marie Curie")) {
		t.Fatal("one edit away should be a duplicate at threshold 2")
	}
	if m.IsDuplicate("Pierre_Curie", "", accepted("Marie Curie")) {
		t.Fatal("five edits away should not be a duplicate at threshold 2")
	}
}

func TestIsDuplicateCaseInsensitive(t *testing.T) {
	m := NewMatcher(2)
	if !m.IsDuplicate("marie_curie", "", accepted("MARIE CURIE")) {
		t.Fatal("comparison must ignore case")
	}
}

func TestIsDuplicateSymmetric(t *testing.T) {
	m := NewMatcher(2)
	a, b := "Marie_Curie", "Mari_Curie"
	ab := m.IsDuplicate(a, "", accepted(b))
	ba := m.IsDuplicate(b, "", accepted(a))
	if ab != ba {
		t.Fatalf("duplicate check is not symmetric: %v vs %v", ab, ba)
	}
}

func TestIsDuplicateIDCollision(t *testing.T) {
	m := NewMatcher(2)
	prior := []game.Person{{Name: "Completely Different", WikidataID: "Q7186"}}

	if !m.IsDuplicate("Marie_Curie", "Q7186", prior) {
		t.Fatal("matching external ids are authoritative duplicates")
	}
	if m.IsDuplicate("Marie_Curie", "Q937", prior) {
		t.Fatal("distinct ids with distant names are not duplicates")
	}
	// Unknown candidate id must not suppress the distance check.
	if !m.IsDuplicate("Marie_Curie", "", []game.Person{{Name: "Marie Curie", WikidataID: "Q7186"}}) {
		t.Fatal("missing candidate id should fall back to edit distance")
	}
}

func TestNewMatcherDefaultThreshold(t *testing.T) {
	if m := NewMatcher(0); m.Threshold != DefaultThreshold {
		t.Fatalf("expected default threshold %d, got %d", DefaultThreshold, m.Threshold)
	}
}
