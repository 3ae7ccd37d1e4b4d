package parsec

import "fmt"

// Many0 runs p zero or more times, greedily, terminating on the first
// uncommitted failure of p. A committed failure inside p aborts the
// repetition with that failure. If p ever matches zero-width, that
// single zero-width success is accepted and the repetition stops
// (never consuming zero elements more than once per call).
func Many0[I, A any](p Parser[I, A]) Parser[I, []A] {
	return func(s ParseState[I]) ParseResult[[]A] {
		var out []A
		cur := s
		total := 0
		for {
			r := p(cur)
			if !r.IsSuccess() {
				if r.Committed() {
					return Failure[[]A](r.Err(), true)
				}
				break
			}
			out = append(out, r.Value())
			if r.Length() == 0 {
				break
			}
			cur = cur.AddOffset(r.Length())
			total += r.Length()
		}
		return Success(out, total)
	}
}

// Many1 runs p one or more times. It fails (uncommitted) if p does not
// match at least once.
func Many1[I, A any](p Parser[I, A]) Parser[I, []A] {
	return FlatMap(p, func(first A) Parser[I, []A] {
		return Map(Many0(p), func(rest []A) []A {
			return append([]A{first}, rest...)
		})
	})
}

// ManyNM runs p at least lo and at most hi times, greedily.
func ManyNM[I, A any](lo, hi int, p Parser[I, A]) Parser[I, []A] {
	return func(s ParseState[I]) ParseResult[[]A] {
		var out []A
		cur := s
		total := 0
		for len(out) < hi {
			r := p(cur)
			if !r.IsSuccess() {
				if r.Committed() {
					return Failure[[]A](r.Err(), true)
				}
				break
			}
			out = append(out, r.Value())
			if r.Length() == 0 {
				break
			}
			cur = cur.AddOffset(r.Length())
			total += r.Length()
		}
		if len(out) < lo {
			msg := fmt.Sprintf("expected at least %d repetitions, got %d", lo, len(out))
			return Failure[[]A](NewMismatch(s.Offset(), total, msg), total != 0)
		}
		return Success(out, total)
	}
}

// Count runs p exactly n times.
func Count[I, A any](n int, p Parser[I, A]) Parser[I, []A] {
	return ManyNM(n, n, p)
}

// Many0Sep runs p zero or more times, interspersing sep in between.
func Many0Sep[I, A, S any](p Parser[I, A], sep Parser[I, S]) Parser[I, []A] {
	return Or(Many1Sep(p, sep), Successful[I, []A](nil))
}

// Many1Sep runs p one or more times, interspersing sep in between.
func Many1Sep[I, A, S any](p Parser[I, A], sep Parser[I, S]) Parser[I, []A] {
	return FlatMap(p, func(first A) Parser[I, []A] {
		return Map(Many0(SkipLeft(sep, p)), func(rest []A) []A {
			return append([]A{first}, rest...)
		})
	})
}
