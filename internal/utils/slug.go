package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases s and collapses every non-alphanumeric run into a
// single hyphen. Accented latin letters common in Spanish names are
// folded to their base letter.
func Slugify(s string) string {
	folded := strings.Map(foldRune, strings.ToLower(s))

	var b strings.Builder
	lastHyphen := true
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func foldRune(r rune) rune {
	switch r {
	case 'á', 'à', 'ä', 'â', 'ã':
		return 'a'
	case 'é', 'è', 'ë', 'ê':
		return 'e'
	case 'í', 'ì', 'ï', 'î':
		return 'i'
	case 'ó', 'ò', 'ö', 'ô', 'õ':
		return 'o'
	case 'ú', 'ù', 'ü', 'û':
		return 'u'
	case 'ñ':
		return 'n'
	}
	return r
}
