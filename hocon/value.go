// Package hocon implements a HOCON-style configuration value model, grammar,
// and merge/resolve evaluator built on top of the parsec combinator engine.
package hocon

import (
	"github.com/shopspring/decimal"

	"github.com/j5ik2o/parsec-go/internal/omap"
)

// Kind discriminates the cases of ConfigValue.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindString
	KindNumber
	KindDuration
	KindArray
	KindObject
	KindReference
	KindInclude
	KindLink
)

// DurationUnit is one of the HOCON duration suffixes.
type DurationUnit int

const (
	Nanosecond DurationUnit = iota
	Microsecond
	Millisecond
	Second
	Minute
	Hour
	Day
)

// nanosPerUnit is the conversion factor to nanoseconds for each unit.
var nanosPerUnit = map[DurationUnit]int64{
	Nanosecond:  1,
	Microsecond: 1_000,
	Millisecond: 1_000_000,
	Second:      1_000_000_000,
	Minute:      60 * 1_000_000_000,
	Hour:        60 * 60 * 1_000_000_000,
	Day:         24 * 60 * 60 * 1_000_000_000,
}

// Duration carries a magnitude and a unit verbatim; unit conversion is left
// to the consumer.
type Duration struct {
	Magnitude decimal.Decimal
	Unit      DurationUnit
}

// Nanos converts d to a decimal count of nanoseconds.
func (d Duration) Nanos() decimal.Decimal {
	factor := decimal.NewFromInt(nanosPerUnit[d.Unit])
	return d.Magnitude.Mul(factor)
}

// ConfigValue is a tagged-union-like value in the HOCON data model. Go has
// no enum variants with payloads, so every case is a field on one struct
// gated by Kind; only the fields relevant to Kind are meaningful.
type ConfigValue struct {
	Kind Kind

	Bool bool
	Str  string
	Num  decimal.Decimal
	Dur  Duration

	Arr []ConfigValue
	Obj *omap.OrderedMap[string, ConfigValue]
	// Includes holds filenames of bare `include "..."` directives found in
	// this object's body, merged in as fallback defaults during resolve.
	Includes []string

	// Reference fields (Kind == KindReference).
	RefPath    string
	RefMissing bool
	RefPrev    *ConfigValue

	// Include fields (Kind == KindInclude). Used for a standalone include
	// value; object bodies instead route bare includes through Includes.
	IncludeFile string

	// Link fields (Kind == KindLink): a cons cell recording merge history.
	// LinkValue is the current visible value, LinkPrev the prior one.
	LinkValue *ConfigValue
	LinkPrev  *ConfigValue
}

func NewNull() ConfigValue { return ConfigValue{Kind: KindNull} }

func NewBool(b bool) ConfigValue { return ConfigValue{Kind: KindBool, Bool: b} }

func NewString(s string) ConfigValue { return ConfigValue{Kind: KindString, Str: s} }

func NewNumber(d decimal.Decimal) ConfigValue { return ConfigValue{Kind: KindNumber, Num: d} }

func NewDuration(d Duration) ConfigValue { return ConfigValue{Kind: KindDuration, Dur: d} }

func NewArray(vs []ConfigValue) ConfigValue { return ConfigValue{Kind: KindArray, Arr: vs} }

func NewObject(obj *omap.OrderedMap[string, ConfigValue]) ConfigValue {
	return ConfigValue{Kind: KindObject, Obj: obj}
}

func NewObjectWithIncludes(obj *omap.OrderedMap[string, ConfigValue], includes []string) ConfigValue {
	return ConfigValue{Kind: KindObject, Obj: obj, Includes: includes}
}

// NewReference builds an unresolved substitution placeholder. prev, when
// non-nil, is the value this reference displaced during Push, consulted as
// a fallback when the reference is optional and unresolvable.
func NewReference(path string, missing bool, prev *ConfigValue) ConfigValue {
	return ConfigValue{Kind: KindReference, RefPath: path, RefMissing: missing, RefPrev: prev}
}

func NewInclude(filename string) ConfigValue {
	return ConfigValue{Kind: KindInclude, IncludeFile: filename}
}

// Latest returns the current visible value, unwrapping one Link level.
func (cv ConfigValue) Latest() ConfigValue {
	if cv.Kind == KindLink {
		return *cv.LinkValue
	}
	return cv
}

// PrevLatest returns the value one declaration before Latest, or cv itself
// when cv carries no history deep enough to have one.
func (cv ConfigValue) PrevLatest() ConfigValue {
	if cv.Kind != KindLink {
		return cv
	}
	if cv.LinkPrev.Kind == KindLink {
		return *cv.LinkPrev.LinkValue
	}
	return *cv.LinkPrev
}

// ToVec flattens a Link chain into its declaration history, oldest first.
// A non-Link value flattens to a single-element slice.
func (cv ConfigValue) ToVec() []ConfigValue {
	if cv.Kind != KindLink {
		return []ConfigValue{cv}
	}
	value, prev := *cv.LinkValue, *cv.LinkPrev
	result := []ConfigValue{value}
	for prev.Kind == KindLink {
		value, prev = *prev.LinkValue, *prev.LinkPrev
		result = append(result, value)
	}
	result = append(result, prev)
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}

// Push redeclares cv as next, recording cv's old value as history. When
// next is itself a Reference, its prev back-pointer is set to the
// displaced value so an optional reference can later fall back to it.
func (cv *ConfigValue) Push(next ConfigValue) {
	displaced := *cv
	if next.Kind == KindReference {
		prevCopy := displaced
		next = NewReference(next.RefPath, next.RefMissing, &prevCopy)
	}
	nextCopy, displacedCopy := next, displaced
	*cv = ConfigValue{Kind: KindLink, LinkValue: &nextCopy, LinkPrev: &displacedCopy}
}

// IsObject, IsArray, IsString, etc. gate access by kind.
func (cv ConfigValue) IsNull() bool      { return cv.Kind == KindNull }
func (cv ConfigValue) IsBool() bool      { return cv.Kind == KindBool }
func (cv ConfigValue) IsString() bool    { return cv.Kind == KindString }
func (cv ConfigValue) IsNumber() bool    { return cv.Kind == KindNumber }
func (cv ConfigValue) IsDuration() bool  { return cv.Kind == KindDuration }
func (cv ConfigValue) IsArray() bool     { return cv.Kind == KindArray }
func (cv ConfigValue) IsObject() bool    { return cv.Kind == KindObject }
func (cv ConfigValue) IsReference() bool { return cv.Kind == KindReference }
