// Package converters implements the pure text transforms the manual hotkeys
// trigger: layout switching, transliteration, case inversion, and
// number-to-words spelling. Grounded on
// original_source/punto/core/converters.py.
package converters

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/leonard/asahi-map/internal/layout"
)

// swapTable maps every character in either layout alphabet to its
// counterpart in the other, built once from layout.Table (lower and upper
// variants), mirroring converters.py's str.maketrans-based _TRANS_EN_TO_RU /
// _TRANS_RU_TO_EN tables merged into one.
var swapTable map[rune]rune

func init() {
	swapTable = make(map[rune]rune, len(layout.Table)*4)
	for _, chars := range layout.Table {
		en, ru := chars.Primary, chars.Secondary
		swapTable[en] = ru
		swapTable[ru] = en
		swapTable[unicode.ToUpper(en)] = unicode.ToUpper(ru)
		swapTable[unicode.ToUpper(ru)] = unicode.ToUpper(en)
	}
}

// SwitchLayout swaps every English<->Russian character in text according to
// the layout table, leaving anything else untouched. Used both for the
// buffer rewrite path (via scancode retype, not this function) and for the
// selection round-trip backing ActionCorrectWrongLayout.
func SwitchLayout(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if mapped, ok := swapTable[r]; ok {
			b.WriteRune(mapped)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ruToLatin is the Cyrillic->Latin transliteration table, ported verbatim
// from converters.py's ru_to_lat (a hand-built approximation, not a
// standards-body transliteration scheme).
var ruToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Transliterate renders Cyrillic characters in text as Latin, capitalizing
// the first letter of the replacement when the source character was upper
// case. Non-Cyrillic characters pass through unchanged.
func Transliterate(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		lower := unicode.ToLower(r)
		repl, ok := ruToLatin[lower]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if unicode.IsUpper(r) && repl != "" {
			repl = strings.ToUpper(repl[:1]) + repl[1:]
		}
		b.WriteString(repl)
	}
	return b.String()
}

// InvertCase swaps the case of every letter in text. Grounded on
// converters.py's invert_case (Python str.swapcase).
func InvertCase(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsUpper(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLower(r):
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NumberToWords spells out text as a Russian number if and only if text
// parses cleanly as a number (comma or dot decimal separator); otherwise it
// returns ok=false and the caller should leave the text unchanged, matching
// converters.py's number_to_text returning None on ValueError.
func NumberToWords(text string) (string, bool) {
	clean := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return "", false
	}
	return spellRussian(value), true
}
