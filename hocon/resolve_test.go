package hocon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j5ik2o/parsec-go/hocon"
)

func TestResolveArrayElementReferences(t *testing.T) {
	cfg, err := hocon.NewConfigFactory().ParseStrings(`
		base = 1
		xs = [${base}, 2, 3]
	`)
	require.NoError(t, err)

	arr, ok := cfg.GetArray("xs")
	require.True(t, ok)
	require.Len(t, arr, 3)
	assert.Equal(t, int64(1), arr[0].Num.IntPart())
}

func TestResolveChainOfReferences(t *testing.T) {
	cfg, err := hocon.NewConfigFactory().ParseStrings(`
		a = 1
		b = ${a}
		c = ${b}
	`)
	require.NoError(t, err)

	v, ok := cfg.GetInt64("c")
	require.True(t, ok)
	assert.Equal(t, int64(1), v)
}

func TestResolveDetectsReferenceCycle(t *testing.T) {
	_, err := hocon.NewConfigFactory().ParseStrings(`
		a = ${b}
		b = ${a}
	`)
	require.Error(t, err)
	var cerr *hocon.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, hocon.Resolve, cerr.Kind)
}

func TestResolveReferenceIntoIncludedFile(t *testing.T) {
	fr := hocon.MapFileReader{
		"defaults.conf": `base = 10`,
	}
	cfg, err := hocon.NewConfigFactory(hocon.WithFileReader(fr)).ParseStrings(`
		include "defaults.conf"
		derived = ${base}
	`)
	require.NoError(t, err)

	v, ok := cfg.GetInt64("derived")
	require.True(t, ok)
	assert.Equal(t, int64(10), v)
}

func TestResolveIncludeIsOverriddenByExplicitKey(t *testing.T) {
	fr := hocon.MapFileReader{
		"defaults.conf": `base = 10`,
	}
	cfg, err := hocon.NewConfigFactory(hocon.WithFileReader(fr)).ParseStrings(`
		include "defaults.conf"
		base = 99
	`)
	require.NoError(t, err)

	v, ok := cfg.GetInt64("base")
	require.True(t, ok)
	assert.Equal(t, int64(99), v)
}

func TestResolveNestedObjectMergeAcrossRedeclaration(t *testing.T) {
	cfg, err := hocon.NewConfigFactory().ParseStrings(`
		foo { test { a = "one", b = "two" } }
		foo { test { b = "override" } }
	`)
	require.NoError(t, err)

	a, ok := cfg.GetString("foo.test.a")
	require.True(t, ok)
	assert.Equal(t, "one", a)

	b, ok := cfg.GetString("foo.test.b")
	require.True(t, ok)
	assert.Equal(t, "override", b)
}
