package hocon

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/hashicorp/go-hclog"
	"github.com/shopspring/decimal"

	"github.com/j5ik2o/parsec-go/internal/omap"
	"github.com/j5ik2o/parsec-go/parsec"
)

func unit[A any](A) parsec.Unit { return parsec.Unit{} }

func runesToString(rs []rune) string { return string(rs) }

// ws skips whitespace and comments; it never fails.
func ws() parsec.Parser[rune, parsec.Unit] {
	return parsec.Map(parsec.Many0(wsAtom()), func([]parsec.Unit) parsec.Unit { return parsec.Unit{} })
}

func wsAtom() parsec.Parser[rune, parsec.Unit] {
	return parsec.Or(
		parsec.Map(parsec.ElmSpace(), unit[rune]),
		comment(),
	)
}

// comment recognizes a `#` or `//` line comment, to end of line.
func comment() parsec.Parser[rune, parsec.Unit] {
	hash := parsec.SkipLeft(parsec.Elm[rune]('#'), parsec.Many0(parsec.NoneOf("\n")))
	slash := parsec.SkipLeft(parsec.Attempt(parsec.Tag("//")), parsec.Many0(parsec.NoneOf("\n")))
	return parsec.Map(parsec.Or(hash, slash), func([]rune) parsec.Unit { return parsec.Unit{} })
}

// sep consumes one or more member separators (`,` or newline), each
// optionally surrounded by whitespace.
func sep() parsec.Parser[rune, parsec.Unit] {
	one := parsec.Surround(ws(), parsec.Or(
		parsec.Map(parsec.Elm[rune](','), unit[rune]),
		parsec.Map(parsec.ElmNewline(), unit[rune]),
	), ws())
	return parsec.Map(parsec.Many1(one), func([]parsec.Unit) parsec.Unit { return parsec.Unit{} })
}

const reservedKeyChars = "=:{}[],\"#$."

func unquotedKeyChar() parsec.Parser[rune, rune] {
	return parsec.ElmPred[rune]("unquoted key char", func(r rune) bool {
		return !strings.ContainsRune(reservedKeyChars, r) && r != '\n' && !unicode.IsSpace(r)
	})
}

func unquotedKeySegment() parsec.Parser[rune, string] {
	return parsec.Map(parsec.Many1(unquotedKeyChar()), runesToString)
}

func keySegment() parsec.Parser[rune, string] {
	return parsec.Or(quotedString(), unquotedKeySegment())
}

// keyPath parses a dot-separated key path, e.g. a.b.c.
func keyPath() parsec.Parser[rune, []string] {
	return parsec.Name(parsec.Many1Sep(keySegment(), parsec.Elm[rune]('.')), "key path")
}

func unicodeEscape() parsec.Parser[rune, rune] {
	four := parsec.Count(4, parsec.ElmHex())
	return parsec.Convert(parsec.SkipLeft(parsec.Elm[rune]('u'), four), func(rs []rune) (rune, error) {
		n, err := strconv.ParseInt(string(rs), 16, 32)
		if err != nil {
			return 0, err
		}
		return rune(n), nil
	})
}

func simpleEscape() parsec.Parser[rune, rune] {
	return parsec.Convert(parsec.AnyElem[rune](), func(r rune) (rune, error) {
		switch r {
		case '"':
			return '"', nil
		case '\\':
			return '\\', nil
		case '/':
			return '/', nil
		case 'n':
			return '\n', nil
		case 'r':
			return '\r', nil
		case 't':
			return '\t', nil
		case 'b':
			return '\b', nil
		case 'f':
			return '\f', nil
		default:
			return 0, fmt.Errorf("invalid escape \\%c", r)
		}
	})
}

func escapeSeq() parsec.Parser[rune, rune] {
	return parsec.SkipLeft(parsec.Elm[rune]('\\'), parsec.Or(unicodeEscape(), simpleEscape()))
}

func stringChar() parsec.Parser[rune, rune] {
	plain := parsec.ElmPred[rune]("string char", func(r rune) bool { return r != '"' && r != '\\' })
	return parsec.Or(escapeSeq(), plain)
}

// quotedString parses a double-quoted string literal with escapes.
func quotedString() parsec.Parser[rune, string] {
	return parsec.Surround(
		parsec.Elm[rune]('"'),
		parsec.Map(parsec.Many0(stringChar()), runesToString),
		parsec.Elm[rune]('"'),
	)
}

const reservedValueChars = "{}[]:=,\"#$"

func unquotedValueChar() parsec.Parser[rune, rune] {
	return parsec.ElmPred[rune]("unquoted value char", func(r rune) bool {
		return !strings.ContainsRune(reservedValueChars, r) && r != '\n'
	})
}

func unquotedStringValue() parsec.Parser[rune, string] {
	return parsec.Map(parsec.Many1(unquotedValueChar()), func(rs []rune) string {
		return strings.TrimRight(runesToString(rs), " \t")
	})
}

// wordBoundary asserts the next rune (if any) doesn't continue an
// identifier, so "true" doesn't swallow the lead of "trueish".
func wordBoundary() parsec.Parser[rune, parsec.Unit] {
	return parsec.Not(parsec.ElmAlphaNum())
}

func booleanValue() parsec.Parser[rune, ConfigValue] {
	mk := func(b bool) func(string) ConfigValue {
		return func(string) ConfigValue { return NewBool(b) }
	}
	alt := func(tag string, b bool) parsec.Parser[rune, ConfigValue] {
		// Attempt: "on" is a prefix of "off", so a partial match must not
		// commit the whole boolean to the first alternative.
		return parsec.Attempt(parsec.Map(parsec.SkipRight(parsec.Tag(tag), wordBoundary()), mk(b)))
	}
	return parsec.Or(alt("true", true),
		parsec.Or(alt("false", false),
			parsec.Or(alt("yes", true),
				parsec.Or(alt("no", false),
					parsec.Or(alt("on", true), alt("off", false))))))
}

func nullValue() parsec.Parser[rune, ConfigValue] {
	return parsec.Map(parsec.SkipRight(parsec.Tag("null"), wordBoundary()), func(string) ConfigValue { return NewNull() })
}

// numberLiteral recognizes a signed decimal literal, returning its raw text.
func numberLiteral() parsec.Parser[rune, string] {
	return parsec.Regex(`[+-]?\d+(\.\d+)?([eE][+-]?\d+)?`)
}

func decimalValue() parsec.Parser[rune, decimal.Decimal] {
	return parsec.Convert(numberLiteral(), func(s string) (decimal.Decimal, error) {
		return decimal.NewFromString(s)
	})
}

func numberValue() parsec.Parser[rune, ConfigValue] {
	return parsec.Map(decimalValue(), NewNumber)
}

func durationUnit() parsec.Parser[rune, DurationUnit] {
	alt := func(tag string, u DurationUnit) parsec.Parser[rune, DurationUnit] {
		return parsec.Map(parsec.Attempt(parsec.Tag(tag)), func(string) DurationUnit { return u })
	}
	// Longer tokens first so "ms" isn't consumed as "m" leaving a stray "s";
	// Attempt lets a lone "m" fall through from "ms" to "m".
	return parsec.Or(alt("ns", Nanosecond),
		parsec.Or(alt("µs", Microsecond),
			parsec.Or(alt("us", Microsecond),
				parsec.Or(alt("ms", Millisecond),
					parsec.Or(alt("s", Second),
						parsec.Or(alt("m", Minute),
							parsec.Or(alt("h", Hour), alt("d", Day))))))))
}

func durationValue() parsec.Parser[rune, ConfigValue] {
	return parsec.Map(
		parsec.AndThen(decimalValue(), durationUnit()),
		func(pr parsec.Pair[decimal.Decimal, DurationUnit]) ConfigValue {
			return NewDuration(Duration{Magnitude: pr.Left, Unit: pr.Right})
		},
	)
}

func substitutionValue() parsec.Parser[rune, ConfigValue] {
	body := parsec.AndThen(parsec.Opt(parsec.Elm[rune]('?')), substitutionPath())
	return parsec.Map(
		parsec.Surround(parsec.Tag("${"), body, parsec.Elm[rune]('}')),
		func(pr parsec.Pair[*rune, string]) ConfigValue {
			return NewReference(pr.Right, pr.Left != nil, nil)
		},
	)
}

func substitutionPath() parsec.Parser[rune, string] {
	return parsec.Regex(`[A-Za-z0-9_\-]+(\.[A-Za-z0-9_\-]+)*`)
}

func includeValue() parsec.Parser[rune, ConfigValue] {
	return parsec.Map(
		parsec.SkipLeft(parsec.Tag("include"), parsec.SkipLeft(ws(), quotedString())),
		NewInclude,
	)
}

// value parses any HOCON value. Order matters: substitution must be tried
// before unquotedString, whose character class would
// otherwise swallow their lead tokens. Alternatives whose literal tag can
// partially match a longer unquoted string (true/false/null/${...) are
// wrapped in Attempt so a failed production falls through to the next
// alternative instead of committing the whole value to that branch.
func value() parsec.Parser[rune, ConfigValue] {
	return parsec.Lazy(func() parsec.Parser[rune, ConfigValue] {
		return parsec.Name(parsec.Or(parsec.Attempt(substitutionValue()),
			parsec.Or(objectValue(),
				parsec.Or(arrayValue(),
					parsec.Or(quotedStringValue(),
						parsec.Or(parsec.Attempt(durationValue()),
							parsec.Or(numberValue(),
								parsec.Or(parsec.Attempt(booleanValue()),
									parsec.Or(parsec.Attempt(nullValue()),
										unquotedStringValueAsConfig())))))))), "value")
	})
}

func quotedStringValue() parsec.Parser[rune, ConfigValue] {
	return parsec.Map(quotedString(), NewString)
}

func unquotedStringValueAsConfig() parsec.Parser[rune, ConfigValue] {
	return parsec.Map(unquotedStringValue(), NewString)
}

func arrayValue() parsec.Parser[rune, ConfigValue] {
	return parsec.Lazy(func() parsec.Parser[rune, ConfigValue] {
		elems := parsec.Many0Sep(parsec.Surround(ws(), value(), ws()), arraySep())
		return parsec.Map(
			parsec.Surround(parsec.Elm[rune]('['), elems, parsec.Elm[rune](']')),
			func(vs []ConfigValue) ConfigValue { return NewArray(vs) },
		)
	})
}

func arraySep() parsec.Parser[rune, parsec.Unit] {
	one := parsec.Surround(ws(), parsec.Or(
		parsec.Map(parsec.Elm[rune](','), unit[rune]),
		parsec.Map(parsec.ElmNewline(), unit[rune]),
	), ws())
	return parsec.Map(parsec.Many1(one), func([]parsec.Unit) parsec.Unit { return parsec.Unit{} })
}

// member is either a bare include directive or a keyPath (= | :) value pair.
type member struct {
	isInclude bool
	include   string
	path      []string
	val       ConfigValue
}

func memberParser() parsec.Parser[rune, member] {
	return parsec.Lazy(func() parsec.Parser[rune, member] {
		// Attempt: "include" is also a valid unquoted key prefix (e.g. a
		// key literally named includeFoo), so a failed include production
		// must not commit the whole member to this branch.
		// Trailing ws, as for the other member forms, so no whitespace is
		// left in front of the next member.
		includeMember := parsec.Attempt(parsec.Map(parsec.SkipRight(includeValue(), ws()), func(cv ConfigValue) member {
			return member{isInclude: true, include: cv.IncludeFile}
		}))
		boundValue := parsec.SkipLeft(
			parsec.Or(parsec.Map(parsec.Elm[rune]('='), unit[rune]), parsec.Map(parsec.Elm[rune](':'), unit[rune])),
			parsec.Surround(ws(), value(), ws()),
		)
		// Object-shorthand: `key { ... }` means `key = { ... }`, with no
		// binding operator at all.
		shorthandValue := parsec.Surround(ws(), objectValue(), ws())
		keyValueMember := parsec.Map(
			parsec.AndThen(
				parsec.Surround(ws(), keyPath(), ws()),
				parsec.Or(boundValue, shorthandValue),
			),
			func(pr parsec.Pair[[]string, ConfigValue]) member {
				return member{path: pr.Left, val: pr.Right}
			},
		)
		return parsec.Or(includeMember, keyValueMember)
	})
}

func objectBody() parsec.Parser[rune, ConfigValue] {
	return parsec.Lazy(func() parsec.Parser[rune, ConfigValue] {
		// Every member ends with ws, which already consumes a newline
		// separator, so the separator between members is optional here.
		members := parsec.Many0Sep(memberParser(), parsec.Opt(sep()))
		return parsec.Map(members, buildObject)
	})
}

func buildObject(members []member) ConfigValue {
	obj := omap.New[string, ConfigValue](len(members))
	var includes []string
	for _, m := range members {
		if m.isInclude {
			includes = append(includes, m.include)
			continue
		}
		setPath(obj, m.path, m.val)
	}
	return NewObjectWithIncludes(obj, includes)
}

func setPath(obj *omap.OrderedMap[string, ConfigValue], path []string, v ConfigValue) {
	key := path[0]
	if len(path) == 1 {
		if existing, ok := obj.Get(key); ok {
			if existing.Kind == KindObject && v.Kind == KindObject {
				// Object redeclaration deep-merges instead of shadowing:
				// the later declaration's fields win, the earlier
				// declaration's fields fill any gaps it leaves.
				v.MergeWith(existing)
				obj.Add(key, v)
			} else {
				existing.Push(v)
				obj.Add(key, existing)
			}
		} else {
			obj.Add(key, v)
		}
		return
	}
	var child *omap.OrderedMap[string, ConfigValue]
	if existing, ok := obj.Get(key); ok && existing.Kind == KindObject {
		child = existing.Obj
	} else {
		child = omap.New[string, ConfigValue](0)
	}
	setPath(child, path[1:], v)
	obj.Add(key, NewObject(child))
}

func objectValue() parsec.Parser[rune, ConfigValue] {
	return parsec.Lazy(func() parsec.Parser[rune, ConfigValue] {
		return parsec.Surround(
			parsec.Surround(ws(), parsec.Elm[rune]('{'), ws()),
			objectBody(),
			parsec.Surround(ws(), parsec.Elm[rune]('}'), ws()),
		)
	})
}

// document parses a whole HOCON document: an explicit `{ ... }` object, or
// a bare member list with the outer braces elided.
func document() parsec.Parser[rune, ConfigValue] {
	return parsec.Lazy(func() parsec.Parser[rune, ConfigValue] {
		return parsec.Or(objectValue(), objectBody())
	})
}

// ParserConfig configures a single ParseDocumentWithConfig run: the logger
// the top-level document production traces through via parsec.Logging.
type ParserConfig struct {
	Logger hclog.Logger
}

// ParserOption mutates a ParserConfig.
type ParserOption func(*ParserConfig)

// WithParserLogger sets the hclog.Logger the document parse traces its
// production-level diagnostics through. A nil logger behaves like the
// default (hclog.NewNullLogger()).
func WithParserLogger(logger hclog.Logger) ParserOption {
	return func(c *ParserConfig) { c.Logger = logger }
}

func newParserConfig(opts ...ParserOption) *ParserConfig {
	c := &ParserConfig{Logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(c)
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
	return c
}

// ParseDocument parses text into a single merged, unresolved ConfigValue.
// The whole input must be consumed; trailing unparsed text is a Parse
// error rather than being silently ignored. It traces no diagnostics; use
// ParseDocumentWithConfig to thread a logger through the parse.
func ParseDocument(text string) (ConfigValue, error) {
	return ParseDocumentWithConfig(text)
}

// ParseDocumentWithConfig is ParseDocument with a configurable ParserConfig,
// whose logger traces the top-level document production through
// parsec.Logging.
func ParseDocumentWithConfig(text string, opts ...ParserOption) (ConfigValue, error) {
	cfg := newParserConfig(opts...)
	input := []rune(text)
	top := parsec.Logging(parsec.Surround(ws(), document(), ws()), "document", cfg.Logger)
	r := top(parsec.NewParseState(input, 0))
	if !r.IsSuccess() {
		return ConfigValue{}, wrapConfigError(Parse, r.Err().Error(), r.Err())
	}
	if r.Length() != len(input) {
		return ConfigValue{}, NewConfigError(Parse, fmt.Sprintf("unexpected trailing input at offset %d", r.Length()))
	}
	return r.Value(), nil
}
