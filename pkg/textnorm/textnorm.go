// Package textnorm normaliza texto para búsquedas y códigos: quita tildes y
// unifica mayúsculas con golang.org/x/text.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold pasa a minúsculas y elimina las marcas diacríticas: "Cañón Niño" → "canon nino".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Lower(language.Und).String(out)
}

// Contains informa si term aparece en s sin distinguir tildes ni mayúsculas.
func Contains(s, term string) bool {
	return strings.Contains(Fold(s), Fold(term))
}

// SKU normaliza un código de producto: sin espacios en los extremos y en mayúsculas.
func SKU(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}
