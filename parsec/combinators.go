package parsec

import (
	"github.com/hashicorp/go-hclog"
	"go.uber.org/multierr"
)

// Map transforms a success value; failures propagate unchanged.
func Map[I, A, B any](p Parser[I, A], f func(A) B) Parser[I, B] {
	return func(s ParseState[I]) ParseResult[B] {
		return mapResult(p(s), f)
	}
}

// FlatMap runs p, then runs f(value) against the advanced state.
// Consumed lengths add. A failure inside the second parser becomes
// committed if p consumed anything.
func FlatMap[I, A, B any](p Parser[I, A], f func(A) Parser[I, B]) Parser[I, B] {
	return func(s ParseState[I]) ParseResult[B] {
		r := p(s)
		if !r.IsSuccess() {
			return failedResult[A, B](r)
		}
		n := r.Length()
		r2 := f(r.Value())(s.AddOffset(n))
		if !r2.IsSuccess() {
			return Failure[B](r2.Err(), r2.Committed() || n != 0)
		}
		return Success(r2.Value(), n+r2.Length())
	}
}

// AndThen runs p then q, yielding both results as a Pair. Commit
// propagation is identical to FlatMap.
func AndThen[I, A, B any](p Parser[I, A], q Parser[I, B]) Parser[I, Pair[A, B]] {
	return FlatMap(p, func(a A) Parser[I, Pair[A, B]] {
		return Map(q, func(b B) Pair[A, B] { return Pair[A, B]{Left: a, Right: b} })
	})
}

// Or tries p; if it fails uncommitted, tries q at the original offset.
// If p fails committed, that failure is final. When both branches fail,
// their causes are joined with multierr so the reported error names
// every alternative that was tried, not just the last one.
func Or[I, A any](p, q Parser[I, A]) Parser[I, A] {
	return func(s ParseState[I]) ParseResult[A] {
		r1 := p(s)
		if r1.IsSuccess() || r1.Committed() {
			return r1
		}
		r2 := q(s)
		if r2.IsSuccess() {
			return r2
		}
		combined := multierr.Combine(r1.Err(), r2.Err())
		return Failure[A](NewCustom(s.Offset(), r2.Err(), combined.Error()), r2.Committed())
	}
}

// Attempt runs p; on failure it forces committed = false so an
// enclosing Or may try alternatives. This is the sole mechanism for
// arbitrary-length lookahead.
func Attempt[I, A any](p Parser[I, A]) Parser[I, A] {
	return func(s ParseState[I]) ParseResult[A] {
		r := p(s)
		if !r.IsSuccess() {
			return Failure[A](r.Err(), false)
		}
		return r
	}
}

// Opt is Or(Map(p, Some), Successful(None)).
func Opt[I, A any](p Parser[I, A]) Parser[I, *A] {
	return Or(
		Map(p, func(a A) *A { return &a }),
		Successful[I, *A](nil),
	)
}

// Exists runs p at the current offset but always consumes 0; it yields
// true on success, false on uncommitted failure. A committed failure
// inside p propagates.
func Exists[I, A any](p Parser[I, A]) Parser[I, bool] {
	return func(s ParseState[I]) ParseResult[bool] {
		r := p(s)
		if r.IsSuccess() {
			return Success(true, 0)
		}
		if r.Committed() {
			return Failure[bool](r.Err(), true)
		}
		return Success(false, 0)
	}
}

// Not is the dual of Exists: it yields Unit when p would fail
// uncommitted, and fails (uncommitted, 0-length) when p would succeed.
// A committed failure inside p propagates.
func Not[I, A any](p Parser[I, A]) Parser[I, Unit] {
	return func(s ParseState[I]) ParseResult[Unit] {
		r := p(s)
		if r.IsSuccess() {
			return Failure[Unit](NewMismatch(s.Offset(), 0, "unexpected match"), false)
		}
		if r.Committed() {
			return Failure[Unit](r.Err(), true)
		}
		return Success(Unit{}, 0)
	}
}

// SkipLeft runs p then q, discarding p's result.
func SkipLeft[I, A, B any](p Parser[I, A], q Parser[I, B]) Parser[I, B] {
	return Map(AndThen(p, q), func(pr Pair[A, B]) B { return pr.Right })
}

// SkipRight runs p then q, discarding q's result.
func SkipRight[I, A, B any](p Parser[I, A], q Parser[I, B]) Parser[I, A] {
	return Map(AndThen(p, q), func(pr Pair[A, B]) A { return pr.Left })
}

// Surround parses l p r and yields the value of p.
func Surround[I, A, B, C any](l Parser[I, A], p Parser[I, B], r Parser[I, C]) Parser[I, B] {
	return SkipLeft(l, SkipRight(p, r))
}

// Convert runs p, then applies f to its value. A non-nil error from f
// becomes a Conversion failure. Converting a successfully-parsed value
// is a semantic check, not a syntactic alternative, so a Conversion
// failure is always committed: it never triggers backtracking to a
// sibling branch of an enclosing Or.
func Convert[I, A, B any](p Parser[I, A], f func(A) (B, error)) Parser[I, B] {
	return func(s ParseState[I]) ParseResult[B] {
		r := p(s)
		if !r.IsSuccess() {
			return failedResult[A, B](r)
		}
		b, err := f(r.Value())
		if err != nil {
			return Failure[B](NewConversion(s.Offset(), r.Length(), err.Error()), true)
		}
		return Success(b, r.Length())
	}
}

// Name wraps p's failure, if any, with an Expect error carrying name,
// without losing the innermost cause. It does not change commit state.
func Name[I, A any](p Parser[I, A], name string) Parser[I, A] {
	return func(s ParseState[I]) ParseResult[A] {
		r := p(s)
		if !r.IsSuccess() {
			return Failure[A](NewExpect(s.Offset(), r.Err(), name), r.Committed())
		}
		return r
	}
}

// Logging runs p and emits a Trace-level diagnostic line through
// logger recording the offset, outcome, and (on failure) the error. A
// nil logger is treated as hclog.NewNullLogger(). Logging never alters
// the result it passes through.
func Logging[I, A any](p Parser[I, A], name string, logger hclog.Logger) Parser[I, A] {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return func(s ParseState[I]) ParseResult[A] {
		r := p(s)
		if r.IsSuccess() {
			logger.Trace("parser succeeded", "parser", name, "offset", s.Offset(), "consumed", r.Length())
		} else {
			logger.Trace("parser failed", "parser", name, "offset", s.Offset(), "committed", r.Committed(), "error", r.Err())
		}
		return r
	}
}

// Lazy defers calling build until the returned parser actually runs,
// breaking the infinite construction-time recursion that a
// self-referential grammar (e.g. `value` containing an alternative that
// itself produces a `value`) would otherwise cause: Go evaluates a
// function call's arguments eagerly, so a mutually recursive set of
// zero-argument Parser-returning functions calling each other directly
// never terminates building the Parser before it is ever run. Wrapping
// the recursive edges in Lazy makes each one a thunk that isn't forced
// until parsing reaches that point in the input.
func Lazy[I, A any](build func() Parser[I, A]) Parser[I, A] {
	return func(s ParseState[I]) ParseResult[A] {
		return build()(s)
	}
}

// ChainLeft1 parses p (op p)*, folding left-associatively with the
// function yielded by op. Used to eliminate left recursion in
// expression grammars.
func ChainLeft1[I, A any](p Parser[I, A], op Parser[I, func(A, A) A]) Parser[I, A] {
	return FlatMap(p, func(first A) Parser[I, A] {
		return chainLeftRest(first, p, op)
	})
}

func chainLeftRest[I, A any](acc A, p Parser[I, A], op Parser[I, func(A, A) A]) Parser[I, A] {
	return Or(
		FlatMap(op, func(f func(A, A) A) Parser[I, A] {
			return FlatMap(p, func(next A) Parser[I, A] {
				return chainLeftRest(f(acc, next), p, op)
			})
		}),
		Successful[I, A](acc),
	)
}
