package slug

import (
	"regexp"
	"strings"
)

const maxLen = 48

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases input and joins its alphanumeric runs with dashes, capped
// at a file-name friendly length.
func Make(input string) string {
	s := nonAlphaNum.ReplaceAllString(strings.ToLower(input), "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	if s == "" {
		return "session"
	}
	return s
}
