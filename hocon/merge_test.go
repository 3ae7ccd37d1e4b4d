package hocon_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j5ik2o/parsec-go/hocon"
)

func TestMergeWithObjectFillsInMissingKeys(t *testing.T) {
	left, err := hocon.ParseDocument(`foo { bar = "baz" }`)
	require.NoError(t, err)
	right, err := hocon.ParseDocument(`foo { qux = "quux" } extra = 1`)
	require.NoError(t, err)

	left.MergeWith(right)

	foo, ok := left.Obj.Get("foo")
	require.True(t, ok)
	bar, ok := foo.Obj.Get("bar")
	require.True(t, ok)
	assert.Equal(t, "baz", bar.Str)
	qux, ok := foo.Obj.Get("qux")
	require.True(t, ok)
	assert.Equal(t, "quux", qux.Str)

	_, ok = left.Obj.Get("extra")
	assert.True(t, ok)
}

func TestMergeWithLeftWinsOnSharedScalarKey(t *testing.T) {
	left, err := hocon.ParseDocument(`a = "left"`)
	require.NoError(t, err)
	right, err := hocon.ParseDocument(`a = "right"`)
	require.NoError(t, err)

	left.MergeWith(right)

	a, ok := left.Obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, "left", a.Str)
}

func TestMergeWithArrayLeavesLeftUnchanged(t *testing.T) {
	left := hocon.NewArray([]hocon.ConfigValue{hocon.NewNumber(decimal.NewFromInt(1))})
	right := hocon.NewArray([]hocon.ConfigValue{hocon.NewNumber(decimal.NewFromInt(1)), hocon.NewNumber(decimal.NewFromInt(2))})

	left.MergeWith(right)

	assert.Len(t, left.Arr, 1)
}

func TestMergeDocumentsPrecedenceIsFirstDocumentWins(t *testing.T) {
	cfg, err := hocon.NewConfigFactory().ParseStrings(`a = 1`, `a = 2`)
	require.NoError(t, err)

	v, ok := cfg.GetInt64("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), v)
}
