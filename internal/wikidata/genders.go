package wikidata

import "github.com/lndk/hundred-names/internal/game"

// defaultGenderByClaim maps Wikidata P21 (sex or gender) claim values to
// game categories. Classification is a pure table lookup — never inferred
// from labels — so recognizing a new identity category is a data change.
// Claim values absent from the table resolve to unspecified, which the
// pipeline rejects rather than admits.
var defaultGenderByClaim = map[string]game.Gender{
	"Q6581097":  game.GenderMale,   // male
	"Q2449503":  game.GenderMale,   // trans man
	"Q6581072":  game.GenderFemale, // female
	"Q1052281":  game.GenderFemale, // trans woman
	"Q18274210": game.GenderNonBinary,
	"Q22258207": game.GenderFluid,
	"Q20676560": game.GenderAgender,
	"Q1739990":  game.GenderBigender,
	"Q31431":    game.GenderTwoSpirit,
	"Q23408324": game.GenderQueer,
}

// genderTable returns the claim mapping with optional config overrides
// merged on top of the defaults.
func genderTable(overrides map[string]string) map[string]game.Gender {
	table := make(map[string]game.Gender, len(defaultGenderByClaim)+len(overrides))
	for claim, g := range defaultGenderByClaim {
		table[claim] = g
	}
	for claim, g := range overrides {
		table[claim] = game.Gender(g)
	}
	return table
}
