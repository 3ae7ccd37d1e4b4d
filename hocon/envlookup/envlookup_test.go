package envlookup_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j5ik2o/parsec-go/hocon/envlookup"
)

func TestOSReadsProcessEnvironment(t *testing.T) {
	require.NoError(t, os.Setenv("PARSEC_HOCON_ENVLOOKUP_TEST", "present"))
	defer os.Unsetenv("PARSEC_HOCON_ENVLOOKUP_TEST")

	v, ok := envlookup.OS("PARSEC_HOCON_ENVLOOKUP_TEST")
	require.True(t, ok)
	assert.Equal(t, "present", v)

	_, ok = envlookup.OS("PARSEC_HOCON_ENVLOOKUP_TEST_ABSENT")
	assert.False(t, ok)
}

func TestMapAdaptsAPlainMap(t *testing.T) {
	lookup := envlookup.Map(map[string]string{"A": "1"})

	v, ok := lookup("A")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = lookup("B")
	assert.False(t, ok)
}
