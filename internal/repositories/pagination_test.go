package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination_PageCount(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		pages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 20, 5},
		{100, 20, 5},
		{101, 20, 6},
	}

	for _, tc := range cases {
		p := NewPagination(1, tc.limit, tc.total)
		assert.Equal(t, tc.pages, p.Pages, "total=%d limit=%d", tc.total, tc.limit)
	}
}

func TestNewPagination_Normalizes(t *testing.T) {
	p := NewPagination(0, -5, 50)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = NewPagination(3, 10, 50)
	assert.Equal(t, 20, p.Offset())
}
