package util

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x1F\x7F]+`)
	strictPolicy = bluemonday.StrictPolicy()
	angleRemover = strings.NewReplacer("<", "", ">", "")
)

// SanitizeForLog removes control characters and newlines from user content before logging.
func SanitizeForLog(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = controlChars.ReplaceAllString(s, " ")
	return s
}

// SanitizeText strips any markup from free text before it is persisted.
// The result is plain text: entities are decoded and stray angle brackets
// dropped, so the stored value never renders as HTML.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = strictPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	s = angleRemover.Replace(s)
	return strings.TrimSpace(s)
}

// SanitizeOptional applies SanitizeText through a pointer, keeping nil as nil.
func SanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := SanitizeText(*s)
	return &v
}
