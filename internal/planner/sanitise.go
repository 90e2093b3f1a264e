package planner

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxFreeTextChars = 200

// SanitiseFreeText strips control characters except newlines and truncates
// to a character count, never mid-rune. Applied to every free-text answer
// before it reaches a prompt.
func SanitiseFreeText(input string) string {
	if input == "" {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(input))
	for _, r := range input {
		if r == '\n' {
			sb.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7F {
			continue
		}
		sb.WriteRune(r)
	}
	cleaned := sb.String()
	if utf8.RuneCountInString(cleaned) > maxFreeTextChars {
		runes := []rune(cleaned)
		cleaned = string(runes[:maxFreeTextChars])
	}
	return cleaned
}

// WrapUserContext wraps prospect-provided text in delimiters that mark it
// as descriptive context, not instructions.
func WrapUserContext(label, text string) string {
	if text == "" {
		return ""
	}
	return fmt.Sprintf("<USER_CONTEXT label=%q>%s</USER_CONTEXT>", label, SanitiseFreeText(text))
}
