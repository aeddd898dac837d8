package peak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-nmr/field"
)

func TestRegionFromArray(t *testing.T) {
	t.Parallel()

	r, err := RegionFromArray([][]int32{{2, 5}, {4, 9}})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, r.First)
	assert.Equal(t, []int{4, 9}, r.Last)
	assert.Equal(t, []int{3, 5}, r.Shape())
	assert.Equal(t, 15, r.Len())
	assert.Equal(t, 2, r.Rank())
}

func TestRegionErrors(t *testing.T) {
	t.Parallel()

	_, err := RegionFromArray([][]int32{{1, 2}})
	assert.ErrorIs(t, err, field.ErrInputShape)

	_, err = RegionFromArray([][]int32{{1, 2}, {3}})
	assert.ErrorIs(t, err, field.ErrInputShape)

	_, err = NewRegion([]int{4}, []int{3})
	assert.ErrorIs(t, err, field.ErrInputShape)

	_, err = NewRegion(nil, nil)
	assert.ErrorIs(t, err, field.ErrInputShape)
}

func TestRegionBoundsAgainstData(t *testing.T) {
	t.Parallel()

	data, err := field.Zeros(10, 12)
	require.NoError(t, err)

	inside, err := NewRegion([]int{0, 0}, []int{9, 11})
	require.NoError(t, err)
	assert.NoError(t, inside.checkBounds(data))

	outside, err := NewRegion([]int{0, 0}, []int{10, 11})
	require.NoError(t, err)
	assert.ErrorIs(t, outside.checkBounds(data), field.ErrInputShape)

	wrongRank, err := NewRegion([]int{0}, []int{3})
	require.NoError(t, err)
	assert.ErrorIs(t, wrongRank.checkBounds(data), field.ErrInputShape)
}
