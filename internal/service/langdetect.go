package service

import (
	"strings"
	"unicode"

	"github.com/zunxo7/DentalCare-AI/internal/prompts"
)

// Language is the detected language of a user message.
type Language string

const (
	LanguageEnglish   Language = "english"
	LanguageUrdu      Language = "urdu"
	LanguageRomanUrdu Language = "roman-urdu"
)

// romanUrduMinHits is the whole-word lexicon hit count that flips a Latin
// script message from english to roman-urdu.
const romanUrduMinHits = 2

// DetectLanguage classifies raw text as english, urdu, or roman-urdu. It is a
// pure function: no I/O, deterministic, never fails. Any Urdu-script rune
// wins outright regardless of lexicon hits.
func DetectLanguage(text string) Language {
	for _, r := range text {
		if isUrduScript(r) {
			return LanguageUrdu
		}
	}

	if countRomanUrduWords(text) >= romanUrduMinHits {
		return LanguageRomanUrdu
	}

	return LanguageEnglish
}

// isUrduScript reports whether r falls in the Arabic script blocks used for
// written Urdu (Arabic and Arabic Supplement).
func isUrduScript(r rune) bool {
	return (r >= 0x0600 && r <= 0x06FF) || (r >= 0x0750 && r <= 0x077F)
}

// countRomanUrduWords counts whole-word, case-insensitive lexicon hits in text.
func countRomanUrduWords(text string) int {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return 0
	}

	lexicon := make(map[string]struct{}, len(prompts.RomanUrduWords))
	for _, w := range prompts.RomanUrduWords {
		lexicon[w] = struct{}{}
	}

	count := 0
	for _, w := range words {
		if _, ok := lexicon[w]; ok {
			count++
		}
	}
	return count
}
