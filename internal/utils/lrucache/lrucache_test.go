package lrucache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheEvictsOldest(t *testing.T) {
	c, err := NewCache[string, int](2)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a")
	c.Set("c", 3)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.False(t, c.Contains("b"))
	assert.Equal(t, 2, c.Len())

	c.Remove("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestNewCacheRejectsZeroSize(t *testing.T) {
	_, err := NewCache[int, int](0)
	assert.Error(t, err)
}
