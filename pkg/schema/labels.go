package schema

import (
	"regexp"
	"strings"
	"unicode"
)

var labelSeparators = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler converts a field key into a human-friendly label, splitting
// on separators and camelCase boundaries: "firstName" -> "First Name".
func DefaultLabeler(key string) string {
	if key == "" {
		return ""
	}
	var words []string
	for _, chunk := range labelSeparators.Split(key, -1) {
		if chunk == "" {
			continue
		}
		for _, word := range splitCamelWords(chunk) {
			words = append(words, titleWord(word))
		}
	}
	return strings.Join(words, " ")
}

func splitCamelWords(chunk string) []string {
	var words []string
	start := 0
	runes := []rune(chunk)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur))
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))
	return words
}

func titleWord(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
