package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Gender is a canonical gender bucket.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderKids   Gender = "kids"
	GenderBaby   Gender = "baby"
	GenderUnisex Gender = "unisex"
	// GenderNone is the catch-all for text that matched no synonym. It is
	// not the same as an absent gender.
	GenderNone Gender = "none"
)

// GenderIDs maps each bucket to the id of its row in the gender table. The
// catalog is not consulted; `ingestd seed` writes rows with these ids.
var GenderIDs = map[Gender]uint{
	GenderFemale: 1,
	GenderKids:   2,
	GenderMale:   3,
	GenderBaby:   4,
	GenderUnisex: 5,
	GenderNone:   6,
}

var genderSynonyms = map[string]Gender{
	"mens": GenderMale, "male": GenderMale, "man": GenderMale, "men": GenderMale,
	"womens": GenderFemale, "female": GenderFemale, "woman": GenderFemale, "women": GenderFemale,
	"boy": GenderKids, "boys": GenderKids, "girl": GenderKids, "girls": GenderKids, "kids": GenderKids,
	"baby":   GenderBaby,
	"unisex": GenderUnisex,
}

// Genders lists the buckets in id order.
func Genders() []Gender {
	return []Gender{GenderFemale, GenderKids, GenderMale, GenderBaby, GenderUnisex, GenderNone}
}

// NormalizeGender maps free text to a bucket. ok is false when raw is blank;
// every other input yields a bucket, GenderNone when nothing matched.
func NormalizeGender(raw string) (g Gender, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	s = strings.ToLower(foldDiacritics(s))
	s = strings.NewReplacer("'", "", "’", "").Replace(s)

	if g, found := genderSynonyms[s]; found {
		return g, true
	}
	return GenderNone, true
}

// foldDiacritics strips combining marks: "Hömme" -> "Homme".
func foldDiacritics(s string) string {
	// transform chains keep state, so one is built per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
