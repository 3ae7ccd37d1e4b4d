package hocon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j5ik2o/parsec-go/hocon"
)

// TestScenarioBasicMerge mirrors the "later declaration wins" merge rule:
// two top-level blocks for the same key deep-merge, and the later
// declaration's field answers a lookup.
func TestScenarioBasicMerge(t *testing.T) {
	cfg, err := hocon.NewConfigFactory().ParseStrings(`
		foo { bar = "baz" }
		foo { bar = "biz" }
	`)
	require.NoError(t, err)

	v, ok := cfg.GetString("foo.bar")
	require.True(t, ok)
	assert.Equal(t, "biz", v)
}

// TestScenarioReferenceToShadowedValue mirrors the original's
// test_eval_reference: a reference declared before a later redeclaration of
// the same key resolves against the root snapshot taken at substitution
// time, picking up the final declared value.
func TestScenarioReferenceToShadowedValue(t *testing.T) {
	cfg, err := hocon.NewConfigFactory().ParseStrings(`
		foo {
			test {
				a = ${foo.test.b}
				b = "aaaa"
			}
		}
		foo {
			test {
				b = "bbbb"
			}
		}
	`)
	require.NoError(t, err)

	a, ok := cfg.GetString("foo.test.a")
	require.True(t, ok)
	assert.Equal(t, "bbbb", a)
}

func TestScenarioEnvSubstitutionPresent(t *testing.T) {
	cfg, err := hocon.NewConfigFactory(
		hocon.WithEnvLookup(hocon.MapEnvLookup(map[string]string{"TEST_VAR": "12345"})),
	).ParseStrings(`a = ${TEST_VAR}`)
	require.NoError(t, err)

	v, ok := cfg.GetString("a")
	require.True(t, ok)
	assert.Equal(t, "12345", v)
}

func TestScenarioEnvSubstitutionRequiredButAbsentIsAnError(t *testing.T) {
	_, err := hocon.NewConfigFactory(
		hocon.WithEnvLookup(hocon.MapEnvLookup(nil)),
	).ParseStrings(`a = ${TEST_VAR}`)

	require.Error(t, err)
	var cerr *hocon.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, hocon.Resolve, cerr.Kind)
}

func TestScenarioEnvSubstitutionOptionalAbsentFallsBackToShadowedValue(t *testing.T) {
	cfg, err := hocon.NewConfigFactory(
		hocon.WithEnvLookup(hocon.MapEnvLookup(nil)),
	).ParseStrings(`
		a = "aaaa"
		a = ${?TEST_VAR}
	`)
	require.NoError(t, err)

	v, ok := cfg.GetString("a")
	require.True(t, ok)
	assert.Equal(t, "aaaa", v)
}

func TestLoadFromFileUsesFileReaderAndIncludesSplice(t *testing.T) {
	fr := hocon.MapFileReader{
		"main.conf":  `include "other.conf"` + "\n" + `a = 1`,
		"other.conf": `b = 2`,
	}
	cfg, err := hocon.NewConfigFactory(hocon.WithFileReader(fr)).LoadFromFile("main.conf")
	require.NoError(t, err)

	av, ok := cfg.GetInt64("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), av)

	bv, ok := cfg.GetInt64("b")
	require.True(t, ok)
	assert.Equal(t, int64(2), bv)
}

func TestLoadFromFileMissingFileIsFileNotFoundError(t *testing.T) {
	fr := hocon.MapFileReader{}
	_, err := hocon.NewConfigFactory(hocon.WithFileReader(fr)).LoadFromFile("missing.conf")

	require.Error(t, err)
	var cerr *hocon.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, hocon.FileNotFound, cerr.Kind)
}

func TestGetValueEReturnsErrNotFoundForAbsentPath(t *testing.T) {
	cfg, err := hocon.NewConfigFactory().ParseStrings(`a = 1`)
	require.NoError(t, err)

	_, err = cfg.GetValueE("nope")
	assert.ErrorIs(t, err, hocon.ErrNotFound)
}

func TestContains(t *testing.T) {
	cfg, err := hocon.NewConfigFactory().ParseStrings(`a { b = 1 }`)
	require.NoError(t, err)

	assert.True(t, cfg.Contains("a.b"))
	assert.False(t, cfg.Contains("a.c"))
}

func TestGetDurationAndStdDuration(t *testing.T) {
	cfg, err := hocon.NewConfigFactory().ParseStrings(`timeout = 1500ms`)
	require.NoError(t, err)

	d, ok := cfg.GetDuration("timeout")
	require.True(t, ok)
	assert.Equal(t, hocon.Millisecond, d.Unit)

	std, ok := cfg.GetStdDuration("timeout")
	require.True(t, ok)
	assert.Equal(t, int64(1_500_000_000), std.Nanoseconds())
}

func TestGetArrayAndGetBool(t *testing.T) {
	cfg, err := hocon.NewConfigFactory().ParseStrings(`
		flags = [true, false, yes]
		enabled = on
	`)
	require.NoError(t, err)

	arr, ok := cfg.GetArray("flags")
	require.True(t, ok)
	require.Len(t, arr, 3)
	assert.True(t, arr[0].Bool)
	assert.False(t, arr[1].Bool)
	assert.True(t, arr[2].Bool)

	enabled, ok := cfg.GetBool("enabled")
	require.True(t, ok)
	assert.True(t, enabled)
}

func TestParseStringsRejectsEmptyInput(t *testing.T) {
	_, err := hocon.NewConfigFactory().ParseStrings()
	require.Error(t, err)
}
