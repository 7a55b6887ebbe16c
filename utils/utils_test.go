package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMin(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 2, Min(3, 2))
}

func TestUniqueUints(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, UniqueUints([]uint{3, 1, 3, 2, 1}))
	assert.Equal(t, []uint{}, UniqueUints(nil))
}

func TestRandomAlphabetString(t *testing.T) {
	s := RandomAlphabetString(8)
	assert.Len(t, s, 8)
	for _, c := range s {
		assert.True(t, c >= 'a' && c <= 'z')
	}
}

func TestParseUintId(t *testing.T) {
	id, ok := ParseUintId("42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	_, ok = ParseUintId("0")
	assert.False(t, ok)
	_, ok = ParseUintId("-1")
	assert.False(t, ok)
	_, ok = ParseUintId("abc")
	assert.False(t, ok)
}
