package parsec

import (
	"fmt"
	"unicode"
)

// Parser is an opaque recognizer: a function from ParseState to
// ParseResult. Constructing a Parser does not run it; composition is
// pure and evaluation is deterministic for a fixed input.
//
// Go methods cannot introduce type parameters beyond the receiver's own,
// so composition is expressed entirely through free functions (Map,
// Or, Many0, ...) rather than a fluent Parser API.
type Parser[I, A any] func(ParseState[I]) ParseResult[A]

// Parse runs p against input from offset 0 and returns the error of p's
// final failure as p reported it; it does not search for the deepest
// failure among the alternatives tried. A successful partial parse is
// accepted; trailing input is not checked.
func Parse[I, A any](p Parser[I, A], input []I) (A, error) {
	r := p(NewParseState(input, 0))
	if !r.IsSuccess() {
		var zero A
		return zero, r.Err()
	}
	return r.Value(), nil
}

// Successful always succeeds with v, consuming no input.
func Successful[I, A any](v A) Parser[I, A] {
	return func(ParseState[I]) ParseResult[A] {
		return Success(v, 0)
	}
}

// Failed always fails with err, uncommitted.
func Failed[I, A any](err *ParseError) Parser[I, A] {
	return func(ParseState[I]) ParseResult[A] {
		return Failure[A](err, false)
	}
}

// AnyElem succeeds iff one element remains, yielding it and consuming 1.
func AnyElem[I any]() Parser[I, I] {
	return func(s ParseState[I]) ParseResult[I] {
		rest := s.Rest()
		if len(rest) == 0 {
			return Failure[I](NewIncomplete(s.Offset()), false)
		}
		return Success(rest[0], 1)
	}
}

// ElmPred succeeds on a single element satisfying pred; name is used in
// the mismatch message. Mismatch is always uncommitted (zero elements
// consumed).
func ElmPred[I any](name string, pred func(I) bool) Parser[I, I] {
	return func(s ParseState[I]) ParseResult[I] {
		rest := s.Rest()
		if len(rest) == 0 {
			return Failure[I](NewIncomplete(s.Offset()), false)
		}
		if !pred(rest[0]) {
			msg := fmt.Sprintf("expected %s, found %v", name, rest[0])
			return Failure[I](NewMismatch(s.Offset(), 0, msg), false)
		}
		return Success(rest[0], 1)
	}
}

// Elm succeeds when the next element equals x.
func Elm[I comparable](x I) Parser[I, I] {
	return ElmPred(fmt.Sprintf("%v", x), func(i I) bool { return i == x })
}

// Seq matches the literal element sequence tag. On the k-th mismatch
// the failure is committed iff k > 0 (i.e. some prefix already matched).
func Seq[I comparable](tag []I) Parser[I, []I] {
	return func(s ParseState[I]) ParseResult[[]I] {
		rest := s.Rest()
		for i, want := range tag {
			if i >= len(rest) {
				return Failure[[]I](NewIncomplete(s.Offset()+i), i != 0)
			}
			if rest[i] != want {
				msg := fmt.Sprintf("seq %v expected %v, found %v", tag, want, rest[i])
				return Failure[[]I](NewMismatch(s.Offset()+i, i, msg), i != 0)
			}
		}
		return Success(tag, len(tag))
	}
}

// Tag matches the literal rune sequence in target, read as text.
// Commit semantics match Seq.
func Tag(target string) Parser[rune, string] {
	runes := []rune(target)
	return func(s ParseState[rune]) ParseResult[string] {
		rest := s.Rest()
		for i, want := range runes {
			if i >= len(rest) {
				return Failure[string](NewIncomplete(s.Offset()+i), i != 0)
			}
			if rest[i] != want {
				msg := fmt.Sprintf("tag %q expected %q, found %q", target, want, rest[i])
				return Failure[string](NewMismatch(s.Offset()+i, i, msg), i != 0)
			}
		}
		return Success(target, len(runes))
	}
}

// TagNoCase matches target case-insensitively.
func TagNoCase(target string) Parser[rune, string] {
	runes := []rune(target)
	return func(s ParseState[rune]) ParseResult[string] {
		rest := s.Rest()
		for i, want := range runes {
			if i >= len(rest) {
				return Failure[string](NewIncomplete(s.Offset()+i), i != 0)
			}
			if !runeEqualFold(rest[i], want) {
				msg := fmt.Sprintf("tag_no_case %q expected %q, found %q", target, want, rest[i])
				return Failure[string](NewMismatch(s.Offset()+i, i, msg), i != 0)
			}
		}
		return Success(target, len(runes))
	}
}

func runeEqualFold(a, b rune) bool {
	return a == b || unicode.ToLower(a) == unicode.ToLower(b)
}
