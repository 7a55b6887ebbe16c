package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 5}.Offset())
	assert.Equal(t, 10, PageRequest{Page: 3, Limit: 5}.Offset())
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(PageRequest{Page: 1, Limit: 5}, 12)
	assert.Equal(t, 3, info.TotalPages)
	assert.True(t, info.HasMore)

	info = NewPageInfo(PageRequest{Page: 3, Limit: 5}, 12)
	assert.Equal(t, 3, info.TotalPages)
	assert.False(t, info.HasMore)

	info = NewPageInfo(PageRequest{Page: 9, Limit: 5}, 12)
	assert.Equal(t, 3, info.TotalPages)
	assert.False(t, info.HasMore)

	info = NewPageInfo(PageRequest{Page: 1, Limit: 5}, 0)
	assert.Equal(t, 0, info.TotalPages)
	assert.False(t, info.HasMore)

	info = NewPageInfo(PageRequest{Page: 1, Limit: 5}, 10)
	assert.Equal(t, 2, info.TotalPages)
}
