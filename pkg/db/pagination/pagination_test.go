package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	p, err := Pagination{}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Pagination{Page: 1, Limit: 25}, p)

	_, err = Pagination{Page: -1, Limit: 10}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = Pagination{Page: 1, Limit: -3}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidLimit)

	_, err = Pagination{Page: 1, Limit: MaxLimit + 1}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestNormalizeBoundsOffset(t *testing.T) {
	_, err := Pagination{Page: 1 << 62, Limit: 4}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = Pagination{Page: MaxOffset/MaxLimit + 2, Limit: MaxLimit}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidPage)

	p, err := Pagination{Page: MaxOffset/MaxLimit + 1, Limit: MaxLimit}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, (MaxOffset/MaxLimit)*MaxLimit, p.Offset())
	assert.Empty(t, Slice([]int{1, 2, 3}, p))
}

func TestSliceIgnoresNegativeOffset(t *testing.T) {
	assert.Empty(t, Slice([]int{1, 2, 3}, Pagination{Page: 1 << 62, Limit: 4}))
	assert.Equal(t, []int{3}, Slice([]int{1, 2, 3}, Pagination{Page: 2, Limit: 2}))
}

func TestBuildPageInfo(t *testing.T) {
	cases := []struct {
		name    string
		page    Pagination
		total   int64
		pages   int
		hasNext bool
		hasPrev bool
	}{
		{name: "empty", page: Pagination{Page: 1, Limit: 25}, total: 0, pages: 0},
		{name: "first of many", page: Pagination{Page: 1, Limit: 10}, total: 35, pages: 4, hasNext: true},
		{name: "middle", page: Pagination{Page: 2, Limit: 10}, total: 35, pages: 4, hasNext: true, hasPrev: true},
		{name: "last", page: Pagination{Page: 4, Limit: 10}, total: 35, pages: 4, hasPrev: true},
		{name: "exact fit", page: Pagination{Page: 2, Limit: 10}, total: 20, pages: 2, hasPrev: true},
		{name: "past the end", page: Pagination{Page: 9, Limit: 10}, total: 20, pages: 2, hasPrev: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := BuildPageInfo(tc.page, tc.total)
			assert.Equal(t, tc.pages, info.TotalPages)
			assert.Equal(t, tc.hasNext, info.HasNextPage)
			assert.Equal(t, tc.hasPrev, info.HasPreviousPage)
			assert.Equal(t, tc.total, info.TotalItems)
			assert.Equal(t, tc.page.Limit, info.ItemsPerPage)
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, Slice(items, Pagination{Page: 1, Limit: 2}))
	assert.Equal(t, []int{5}, Slice(items, Pagination{Page: 3, Limit: 2}))
	assert.Empty(t, Slice(items, Pagination{Page: 4, Limit: 2}))
}
