package counters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddRemoveCount(t *testing.T) {
	c := New()
	c.Add("charge", 3)
	assert.Equal(t, 3, c.Count("charge"))
	assert.True(t, c.Has("charge"))

	removed := c.Remove("charge", 2)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Count("charge"))

	removed = c.Remove("charge", 5)
	assert.Equal(t, 1, removed, "removal stops at zero")
	assert.False(t, c.Has("charge"))
	assert.Equal(t, 0, c.Count("missing"))
}

func TestCopyIsIndependent(t *testing.T) {
	c := New()
	c.Add("charge", 2)

	dup := c.Copy()
	dup.Add("charge", 5)

	assert.Equal(t, 2, c.Count("charge"))
	assert.Equal(t, 7, dup.Count("charge"))
}
