package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-3))
	assert.Equal(t, 12, NormalizeLimit(12))
	assert.Equal(t, MaxLimit, NormalizeLimit(5000))
}

func TestPaginateMetadata(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	page, meta := Paginate(items, 2, 20)
	require.Len(t, page, 20)
	assert.Equal(t, 20, page[0])
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 45, meta.TotalItems)
	assert.True(t, meta.HasNextPage)
	assert.True(t, meta.HasPrevPage)

	last, meta := Paginate(items, 3, 20)
	require.Len(t, last, 5)
	assert.False(t, meta.HasNextPage)
}

func TestPaginateEmptyInput(t *testing.T) {
	page, meta := Paginate([]string{}, 1, 20)
	assert.Empty(t, page)
	assert.Equal(t, 1, meta.TotalPages)
	assert.Equal(t, 0, meta.TotalItems)
	assert.False(t, meta.HasNextPage)
	assert.False(t, meta.HasPrevPage)
}

func TestPaginateOutOfRangePage(t *testing.T) {
	items := []int{1, 2, 3}
	page, meta := Paginate(items, 9, 2)
	assert.Empty(t, page)
	assert.Equal(t, 9, meta.CurrentPage)
	assert.Equal(t, 2, meta.TotalPages)
	assert.False(t, meta.HasNextPage)
	assert.True(t, meta.HasPrevPage)
}

// Concatenating every page must reconstruct the input exactly: full
// coverage, no duplication, order preserved.
func TestPaginateRoundTrip(t *testing.T) {
	for _, limit := range []int{1, 2, 7, 20} {
		items := make([]int, 53)
		for i := range items {
			items[i] = i
		}

		_, meta := Paginate(items, 1, limit)
		var rebuilt []int
		for p := 1; p <= meta.TotalPages; p++ {
			pageItems, _ := Paginate(items, p, limit)
			rebuilt = append(rebuilt, pageItems...)
		}
		require.Equal(t, items, rebuilt, "limit %d", limit)
	}
}

func TestZero(t *testing.T) {
	meta := Zero(0)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 1, meta.TotalPages)
	assert.Equal(t, DefaultLimit, meta.Limit)
}
