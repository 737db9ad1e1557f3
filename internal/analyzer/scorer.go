package analyzer

import (
	"strings"
	"unicode"

	"github.com/leonard/asahi-map/internal/layout"
)

// englishConsonantLimit and russianConsonantLimit are the per-language limits
// on consecutive consonants before
// a string is scored as structurally invalid.
const (
	englishConsonantLimit = 5
	russianConsonantLimit = 4
)

// scoreStructure walks text ignoring non-alphabetic runes, tracking the
// longest run of consecutive consonants against vowels, and returns a
// structural plausibility score: -10 if the consonant run exceeds the
// language's limit, -5 if the word is longer than 4 characters and contains
// no vowels at all, +5 otherwise. Grounded on
// punto/core/detector.py:LanguageDetector._score_structure.
func scoreStructure(text string, vowels map[rune]bool, limit int) int {
	if text == "" {
		return 0
	}

	lower := strings.ToLower(text)
	consecutive := 0
	maxConsecutive := 0
	hasVowel := false
	length := 0

	for _, c := range lower {
		length++
		if !unicode.IsLetter(c) {
			continue
		}
		if vowels[c] {
			hasVowel = true
			consecutive = 0
			continue
		}
		consecutive++
		if consecutive > maxConsecutive {
			maxConsecutive = consecutive
		}
	}

	if maxConsecutive > limit {
		return -10
	}
	if length > 4 && !hasVowel {
		return -5
	}
	return 5
}

// verdict reports the detector's guess at the intended language for a
// buffer rendered as its English (s0) and Russian (s1) strings: 0 if
// English is confidently more plausible than Russian, 1 for the reverse,
// or -1 if undecided. Grounded on LanguageDetector.analyze.
func verdict(s0, s1 string) int {
	scoreEN := scoreStructure(s0, layout.EnglishVowels, englishConsonantLimit)
	scoreRU := scoreStructure(s1, layout.RussianVowels, russianConsonantLimit)

	switch {
	case scoreEN > 0 && scoreRU < 0:
		return 0
	case scoreRU > 0 && scoreEN < 0:
		return 1
	default:
		return -1
	}
}
