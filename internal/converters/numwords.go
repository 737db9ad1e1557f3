package converters

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// spellRussian spells out value as Russian words. There is no Russian
// numeral-spelling library anywhere in the retrieved example pack (checked
// dustin/go-humanize, which only formats byte sizes and digit grouping), so
// this ports the behavior of original_source's num2words(value, lang='ru')
// call directly instead of reaching for a library that does not exist in
// the ecosystem surveyed for this project.
func spellRussian(value float64) string {
	negative := value < 0
	if negative {
		value = -value
	}

	intPart := int64(math.Floor(value))
	frac := value - math.Floor(value)

	words := spellCardinal(intPart, genderMasculine)

	if frac > 1e-9 {
		// Render the fractional part as a whole number of the smallest
		// decimal unit present (tenths/hundredths/thousandths), matching
		// num2words' "X целых Y сотых" style output.
		fracStr := trimmedFractionDigits(value)
		if fracStr != "" {
			fracValue, _ := strconv.ParseInt(fracStr, 10, 64)
			unit := fractionUnitName(fracValue, len(fracStr))
			words = fmt.Sprintf("%s целых %s %s", words, spellCardinal(fracValue, genderFeminine), unit)
		}
	}

	if negative {
		words = "минус " + words
	}
	return words
}

// trimmedFractionDigits returns the fractional digits of value (after the
// decimal point) with trailing zeros removed, capped at 9 digits to avoid
// float-noise artifacts.
func trimmedFractionDigits(value float64) string {
	s := strconv.FormatFloat(value, 'f', 9, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return ""
	}
	frac := strings.TrimRight(s[dot+1:], "0")
	return frac
}

func fractionUnitName(n int64, digits int) string {
	switch digits {
	case 1:
		return pluralize(n, "десятая", "десятых", "десятых")
	case 2:
		return pluralize(n, "сотая", "сотых", "сотых")
	case 3:
		return pluralize(n, "тысячная", "тысячных", "тысячных")
	case 4:
		return pluralize(n, "десятитысячная", "десятитысячных", "десятитысячных")
	case 5:
		return pluralize(n, "стотысячная", "стотысячных", "стотысячных")
	case 6:
		return pluralize(n, "миллионная", "миллионных", "миллионных")
	case 7:
		return pluralize(n, "десятимиллионная", "десятимиллионных", "десятимиллионных")
	case 8:
		return pluralize(n, "стомиллионная", "стомиллионных", "стомиллионных")
	default:
		return pluralize(n, "миллиардная", "миллиардных", "миллиардных")
	}
}

type gender int

const (
	genderMasculine gender = iota
	genderFeminine
)

var units = [...]string{"", "один", "два", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
var unitsFeminine = [...]string{"", "одна", "две", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
var teens = [...]string{"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать", "пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать"}
var tens = [...]string{"", "", "двадцать", "тридцать", "сорок", "пятьдесят", "шестьдесят", "семьдесят", "восемьдесят", "девяносто"}
var hundreds = [...]string{"", "сто", "двести", "триста", "четыреста", "пятьсот", "шестьсот", "семьсот", "восемьсот", "девятьсот"}

type scale struct {
	one, few, many string
	gender         gender
}

var scales = [...]scale{
	{}, // units, no scale word
	{"тысяча", "тысячи", "тысяч", genderFeminine},
	{"миллион", "миллиона", "миллионов", genderMasculine},
	{"миллиард", "миллиарда", "миллиардов", genderMasculine},
	{"триллион", "триллиона", "триллионов", genderMasculine},
}

// spellCardinal spells a non-negative integer as Russian words. g selects
// the grammatical gender of the final group of units (feminine for bare
// tenths/hundredths counts, masculine otherwise); intermediate groups with
// their own scale word (thousand, ...) always use that scale word's
// inherent gender.
func spellCardinal(n int64, g gender) string {
	if n == 0 {
		return "ноль"
	}

	groups := splitGroups(n)
	parts := make([]string, 0, len(groups))

	for i := len(groups) - 1; i >= 0; i-- {
		group := groups[i]
		if group == 0 {
			continue
		}

		groupGender := genderMasculine
		if i < len(scales) {
			groupGender = scales[i].gender
		}
		if i == 0 {
			groupGender = g
		}

		parts = append(parts, spellGroup(group, groupGender))

		if i > 0 && i < len(scales) {
			parts = append(parts, pluralize(group, scales[i].one, scales[i].few, scales[i].many))
		}
	}

	return strings.Join(parts, " ")
}

// splitGroups splits n into base-1000 groups, least significant first.
func splitGroups(n int64) []int64 {
	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}
	if len(groups) == 0 {
		groups = append(groups, 0)
	}
	return groups
}

// spellGroup spells a number in [0, 999].
func spellGroup(n int64, g gender) string {
	var parts []string

	h := n / 100
	rem := n % 100
	if h > 0 {
		parts = append(parts, hundreds[h])
	}

	if rem >= 10 && rem < 20 {
		parts = append(parts, teens[rem-10])
	} else {
		t := rem / 10
		u := rem % 10
		if t > 0 {
			parts = append(parts, tens[t])
		}
		if u > 0 {
			if g == genderFeminine {
				parts = append(parts, unitsFeminine[u])
			} else {
				parts = append(parts, units[u])
			}
		}
	}

	return strings.Join(parts, " ")
}

// pluralize picks the Russian plural form matching n, using the standard
// one/few(2-4)/many rule with the 11-14 exception.
func pluralize(n int64, one, few, many string) string {
	mod100 := n % 100
	mod10 := n % 10

	if mod100 >= 11 && mod100 <= 14 {
		return many
	}
	switch mod10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}
