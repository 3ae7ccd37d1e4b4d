package omap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j5ik2o/parsec-go/internal/omap"
)

func TestInsertionOrderPreserved(t *testing.T) {
	m := omap.New[string, int](0)
	m.Add("c", 3)
	m.Add("a", 1)
	m.Add("b", 2)

	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
}

func TestReAddKeepsPositionUpdatesValue(t *testing.T) {
	m := omap.New[string, int](0)
	m.Add("a", 1)
	m.Add("b", 2)
	m.Add("a", 99)

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 99, v)
}

func TestDeleteRemovesFromOrderAndMap(t *testing.T) {
	m := omap.New[string, int](0)
	m.Add("a", 1)
	m.Add("b", 2)
	m.Delete("a")

	assert.Equal(t, []string{"b"}, m.Keys())
	assert.False(t, m.Exists("a"))
	assert.Equal(t, 1, m.Len())
}

func TestCloneIsIndependent(t *testing.T) {
	m := omap.New[string, int](0)
	m.Build("a", 1).Build("b", 2)
	clone := m.Clone()
	clone.Add("c", 3)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 3, clone.Len())
}

func TestAllIteratesInOrder(t *testing.T) {
	m := omap.New[string, int](0)
	m.Add("x", 1)
	m.Add("y", 2)

	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"x", "y"}, keys)
}
