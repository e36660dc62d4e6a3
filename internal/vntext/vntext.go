// Package vntext holds Vietnamese text normalization shared by the amount
// extractor, the category classifier and the segmenter.
package vntext

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// đ and Đ are base letters, not combining sequences, so NFD leaves them alone.
var strokeReplacer = strings.NewReplacer("đ", "d", "Đ", "D")

// StripDiacritics removes Vietnamese tone and vowel marks:
// "Một triệu đồng" becomes "Mot trieu dong".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strokeReplacer.Replace(out)
}

// NFC returns s in composed form, so decomposed input (common from macOS
// keyboards) compares equal to the precomposed keyword tables.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// CollapseSpaces trims s and replaces every whitespace run with one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold strips diacritics, lowercases and collapses whitespace.
func Fold(s string) string {
	return CollapseSpaces(strings.ToLower(StripDiacritics(s)))
}

// StripPunctuation replaces every rune that is not a letter, digit or space
// with a space. Diacritics are kept.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || unicode.Is(unicode.Mn, r) {
			return r
		}
		return ' '
	}, s)
}

// ContainsToken reports whether phrase occurs in text on token boundaries.
// Both are expected to be space-normalized.
func ContainsToken(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(" "+text+" ", " "+phrase+" ")
}
