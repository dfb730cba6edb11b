package engine

import (
	"regexp"
	"strings"
)

var (
	tokenRe       = regexp.MustCompile(`\{[^{}]*\}`)
	spaceCommaRe  = regexp.MustCompile(`\s+,`)
	commaRunRe    = regexp.MustCompile(`,(\s*,)+`)
	braceReplacer = strings.NewReplacer("{", "", "}", "")
)

// Normalize cleans composed text for use as a prompt:
//
//   - {...} tokens left after expansion are removed, innermost first,
//     and stray braces are dropped;
//   - whitespace runs collapse to one space;
//   - spaces before a comma are removed and comma runs such as ", ," or ",,"
//     collapse to one comma;
//   - leading and trailing commas and spaces are trimmed.
func Normalize(s string) string {
	for {
		next := tokenRe.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}
	s = braceReplacer.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	s = spaceCommaRe.ReplaceAllString(s, ",")
	s = commaRunRe.ReplaceAllString(s, ",")
	return strings.Trim(s, ", ")
}
