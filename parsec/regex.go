package parsec

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Regex compiles pattern once at construction time, anchoring it at the
// start (prepending ^ if the caller didn't) to forbid mid-input matches.
// A malformed pattern is a construction-time panic, not a parse
// failure, matching the original's regex::Regex::new(...).unwrap().
//
// On match, the parser consumes the rune length of the full match.
func Regex(pattern string) Parser[rune, string] {
	anchored := pattern
	if !strings.HasPrefix(pattern, "^") {
		anchored = "^" + pattern
	}
	re := regexp.MustCompile(anchored)
	return func(s ParseState[rune]) ParseResult[string] {
		str := string(s.Rest())
		loc := re.FindStringIndex(str)
		if loc == nil || loc[0] != 0 {
			msg := fmt.Sprintf("regex %q did not match", pattern)
			return Failure[string](NewMismatch(s.Offset(), 0, msg), false)
		}
		matched := str[loc[0]:loc[1]]
		return Success(matched, utf8.RuneCountInString(matched))
	}
}
