package shape_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minitorch/internal/shape"
)

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		name  string
		shape shape.Shape
		want  int
	}{
		{"scalar", shape.Shape{}, 1},
		{"vector", shape.Shape{5}, 5},
		{"matrix", shape.Shape{3, 4}, 12},
		{"3d", shape.Shape{2, 3, 4}, 24},
		{"zero dim", shape.Shape{2, 0, 4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shape.NumElements())
		})
	}
}

func TestShape_Normalize(t *testing.T) {
	assert.Equal(t, shape.Shape{1}, shape.Shape{}.Normalize())
	assert.Equal(t, shape.Shape{1}, shape.Shape(nil).Normalize())
	assert.Equal(t, shape.Shape{2, 3}, shape.Shape{2, 3}.Normalize())
}

func TestShape_ComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, shape.Shape{2, 3, 4}.ComputeStrides())
	assert.Equal(t, []int{1}, shape.Shape{7}.ComputeStrides())
	assert.Empty(t, shape.Shape{}.ComputeStrides())
}

func TestShape_Validate(t *testing.T) {
	require.NoError(t, shape.Shape{2, 0, 3}.Validate())
	err := shape.Shape{2, -1}.Validate()
	assert.True(t, errors.Is(err, shape.ErrInvalidDimension))
}

func TestBroadcastShape(t *testing.T) {
	tests := []struct {
		a, b shape.Shape
		want shape.Shape
	}{
		{shape.Shape{3}, shape.Shape{3}, shape.Shape{3}},
		{shape.Shape{3}, shape.Shape{1}, shape.Shape{3}},
		{shape.Shape{3, 1}, shape.Shape{3, 5}, shape.Shape{3, 5}},
		{shape.Shape{1, 5}, shape.Shape{3, 5}, shape.Shape{3, 5}},
		{shape.Shape{2, 3, 4}, shape.Shape{4}, shape.Shape{2, 3, 4}},
		{shape.Shape{5, 1, 4}, shape.Shape{3, 1}, shape.Shape{5, 3, 4}},
		{shape.Shape{1}, shape.Shape{2, 2}, shape.Shape{2, 2}},
		{shape.Shape{0}, shape.Shape{1}, shape.Shape{0}},
		{shape.Shape{2, 0}, shape.Shape{2, 1}, shape.Shape{2, 0}},
		{shape.Shape{0, 3}, shape.Shape{3}, shape.Shape{0, 3}},
	}

	for _, tt := range tests {
		got, err := shape.BroadcastShape(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "BroadcastShape(%v, %v)", tt.a, tt.b)

		// Broadcasting is commutative.
		rev, err := shape.BroadcastShape(tt.b, tt.a)
		require.NoError(t, err)
		assert.Equal(t, got, rev, "BroadcastShape(%v, %v)", tt.b, tt.a)
	}
}

func TestBroadcastShape_Mismatch(t *testing.T) {
	pairs := [][2]shape.Shape{
		{{3}, {4}},
		{{3, 4}, {3, 5}},
		{{2, 3}, {3, 2}},
		{{0}, {2}},
	}
	for _, p := range pairs {
		_, err := shape.BroadcastShape(p[0], p[1])
		require.Error(t, err)
		assert.True(t, errors.Is(err, shape.ErrShapeMismatch), "unexpected error: %v", err)
	}
}

func TestPadShape(t *testing.T) {
	assert.Equal(t, shape.Shape{1, 1, 3}, shape.PadShape(shape.Shape{3}, shape.Shape{2, 4, 3}))
	assert.Equal(t, shape.Shape{2, 3}, shape.PadShape(shape.Shape{2, 3}, shape.Shape{3}))
	assert.Equal(t, shape.Shape{4, 5}, shape.PadShape(shape.Shape{4, 5}, shape.Shape{1, 5}))
}

func TestOriginalIndex(t *testing.T) {
	// [2,1] broadcast to [2,3]: each row repeats its single element.
	original := shape.Shape{2, 1}
	broadcast := shape.Shape{2, 3}
	want := []int{0, 0, 0, 1, 1, 1}
	for i, w := range want {
		assert.Equal(t, w, shape.OriginalIndex(original, broadcast, i), "index %d", i)
	}

	// [1,3] broadcast to [2,3]: rows repeat.
	original = shape.Shape{1, 3}
	want = []int{0, 1, 2, 0, 1, 2}
	for i, w := range want {
		assert.Equal(t, w, shape.OriginalIndex(original, broadcast, i), "index %d", i)
	}

	// Identity when shapes match.
	for i := 0; i < 6; i++ {
		assert.Equal(t, i, shape.OriginalIndex(broadcast, broadcast, i))
	}
}

func TestOriginalIndex_ReplicatedAxis(t *testing.T) {
	// Along an axis of size 1 every coordinate maps to the same offset.
	original := shape.Shape{2, 1, 4}
	broadcast := shape.Shape{2, 3, 4}
	strides := broadcast.ComputeStrides()

	for b := 0; b < 2; b++ {
		for k := 0; k < 4; k++ {
			base := shape.OriginalIndex(original, broadcast, b*strides[0]+k)
			for x := 1; x < 3; x++ {
				idx := b*strides[0] + x*strides[1] + k
				assert.Equal(t, base, shape.OriginalIndex(original, broadcast, idx))
			}
		}
	}
}

func TestTransposedIndex(t *testing.T) {
	// [[1,2,3],[4,5,6]] transposed is [[1,4],[2,5],[3,6]].
	original := shape.Shape{2, 3}
	want := []int{0, 3, 1, 4, 2, 5}
	for i, w := range want {
		assert.Equal(t, w, shape.TransposedIndex(original, 0, 1, i), "index %d", i)
	}
}

func TestNormalizeAxis(t *testing.T) {
	axis, err := shape.NormalizeAxis(-1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, axis)

	_, err = shape.NormalizeAxis(3, 3)
	assert.True(t, errors.Is(err, shape.ErrInvalidDimension))
}
