package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeValidate(t *testing.T) {
	tests := []struct {
		name    string
		shape   Shape
		wantErr bool
	}{
		{"vector", Shape{3}, false},
		{"matrix", Shape{2, 3}, false},
		{"empty", Shape{}, true},
		{"zero dim", Shape{2, 0}, true},
		{"negative dim", Shape{-1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shape.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrShape)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestShapeComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Equal(t, []int{1}, Shape{5}.ComputeStrides())
}

func TestFromFloat64(t *testing.T) {
	tt, err := FromFloat64(Shape{2, 2}, []float64{1, 2, 3, 4}, Float64)
	require.NoError(t, err)

	assert.Equal(t, 2, tt.Rank())
	assert.Equal(t, Float64, tt.DType())
	assert.Equal(t, 3.0, tt.At(1, 0))
	assert.Equal(t, []float64{1, 2, 3, 4}, tt.Values())

	_, err = FromFloat64(Shape{2, 2}, []float64{1, 2, 3}, Float64)
	assert.ErrorIs(t, err, ErrShape)
}

func TestFromFloat64RoundsFloat32(t *testing.T) {
	tt, err := FromFloat64(Shape{1}, []float64{0.1}, Float32)
	require.NoError(t, err)

	assert.Equal(t, float64(float32(0.1)), tt.At(0))
	assert.NotEqual(t, 0.1, tt.At(0))
}

func TestTensorRowView(t *testing.T) {
	tt, err := FromFloat64(Shape{2, 2, 3}, []float64{
		0, 1, 2, 3, 4, 5,
		6, 7, 8, 9, 10, 11,
	}, Float64)
	require.NoError(t, err)

	row := tt.Row(1)
	assert.Equal(t, Shape{2, 3}, row.Shape())
	assert.Equal(t, 9.0, row.At(1, 0))
	assert.Equal(t, []float64{9, 10, 11}, row.Row(1).Values())

	assert.Panics(t, func() { tt.Row(2) })
	assert.Panics(t, func() { row.Row(0).Row(0) })
}

func TestTensorAsType(t *testing.T) {
	tt, err := FromFloat64(Shape{2}, []float64{0.1, 2}, Float64)
	require.NoError(t, err)

	assert.Same(t, tt, tt.AsType(Float64))

	narrow := tt.AsType(Float32)
	assert.Equal(t, Float32, narrow.DType())
	assert.Equal(t, float64(float32(0.1)), narrow.At(0))
	assert.Equal(t, Float64, narrow.AsType(Float64).DType())
}

func TestDataType(t *testing.T) {
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 64, Float64.Bits())
	assert.Equal(t, "float32", Float32.String())
	assert.Equal(t, Float64, Wider(Float32, Float64))
	assert.Equal(t, Float32, Wider(Float32, Float32))
}
