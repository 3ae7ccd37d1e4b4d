// Package parsec implements a parser-combinator library over arbitrary
// element types. Recognizers are built by composing small primitives
// (literals, element predicates) with combinators (sequencing,
// alternation, repetition, lookahead, mapping) and evaluated by a
// top-level driver that supplies an initial ParseState.
package parsec

// ParseState is an immutable view over a pre-materialized input slice
// plus the offset of the next unconsumed element. Constructing a
// ParseState never copies the backing array; AddOffset returns a new
// state sharing it.
type ParseState[I any] struct {
	input  []I
	offset int
}

// NewParseState constructs a ParseState over input starting at offset.
func NewParseState[I any](input []I, offset int) ParseState[I] {
	return ParseState[I]{input: input, offset: offset}
}

// Input returns the full input slice the state was constructed from.
func (s ParseState[I]) Input() []I {
	return s.input
}

// Offset returns the current offset into Input.
func (s ParseState[I]) Offset() int {
	return s.offset
}

// Rest returns the unconsumed remainder of the input.
func (s ParseState[I]) Rest() []I {
	return s.input[s.offset:]
}

// AddOffset returns a new state advanced by n elements. n may be 0.
func (s ParseState[I]) AddOffset(n int) ParseState[I] {
	return ParseState[I]{input: s.input, offset: s.offset + n}
}
