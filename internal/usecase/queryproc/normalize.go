package queryproc

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes compatibility forms and removes combining marks.
// For Arabic this drops tashkeel and folds hamza-carrying letters onto
// their base form (NFKD decomposes أ/إ/آ/ؤ/ئ into base letter + mark).
var stripMarks = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// letterVariants unifies Arabic orthographic variants that survive
// decomposition, and drops tatweel.
var letterVariants = strings.NewReplacer(
	"ٱ", "ا", // alef wasla -> alef
	"ى", "ي", // alef maqsura -> yaa
	"ة", "ه", // taa marbuta -> haa
	"ـ", "", // tatweel
)

// Normalize canonicalizes query and title text: Unicode-normalize, strip
// diacritics, lowercase, unify Arabic letter variants, drop everything but
// letters and digits, collapse whitespace. Idempotent.
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s // keep the input rather than fail; normalization is best-effort
	}
	out = strings.ToLower(out)
	out = letterVariants.Replace(out)

	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits normalized text into tokens.
func Tokenize(normalized string) []string {
	return strings.Fields(normalized)
}
