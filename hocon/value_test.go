package hocon_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j5ik2o/parsec-go/hocon"
)

func TestPushBuildsLinkChain(t *testing.T) {
	a := hocon.NewString("aaaa")
	a.Push(hocon.NewString("bbbb"))

	assert.Equal(t, hocon.KindLink, a.Kind)
	assert.Equal(t, hocon.NewString("bbbb"), a.Latest())
	assert.Equal(t, hocon.NewString("aaaa"), a.PrevLatest())
}

func TestToVecFlattensOldestFirst(t *testing.T) {
	a := hocon.NewString("1")
	a.Push(hocon.NewString("2"))
	a.Push(hocon.NewString("3"))

	vec := a.ToVec()
	require.Len(t, vec, 3)
	assert.Equal(t, "1", vec[0].Str)
	assert.Equal(t, "2", vec[1].Str)
	assert.Equal(t, "3", vec[2].Str)
}

func TestPushOnReferenceRecordsDisplacedAsPrev(t *testing.T) {
	a := hocon.NewString("aaaa")
	ref := hocon.NewReference("TEST_VAR", true, nil)
	a.Push(ref)

	latest := a.Latest()
	require.Equal(t, hocon.KindReference, latest.Kind)
	require.NotNil(t, latest.RefPrev)
	assert.Equal(t, "aaaa", latest.RefPrev.Str)
}

func TestDurationNanosConversion(t *testing.T) {
	d := hocon.Duration{Magnitude: decimal.NewFromInt(5), Unit: hocon.Second}
	nanos := d.Nanos()
	assert.True(t, nanos.Equal(decimal.NewFromInt(5_000_000_000)))
}

func TestIsPredicates(t *testing.T) {
	assert.True(t, hocon.NewNull().IsNull())
	assert.True(t, hocon.NewBool(true).IsBool())
	assert.True(t, hocon.NewString("x").IsString())
	assert.True(t, hocon.NewNumber(decimal.NewFromInt(1)).IsNumber())
	assert.True(t, hocon.NewArray(nil).IsArray())
	assert.True(t, hocon.NewReference("a", false, nil).IsReference())
}
