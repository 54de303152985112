package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBBoxDimensions(t *testing.T) {
	b := NewBBox(10, 20, 110, 70)
	assert.InDelta(t, 100.0, b.Width(), 1e-9)
	assert.InDelta(t, 50.0, b.Height(), 1e-9)
	assert.InDelta(t, 5000.0, b.Area(), 1e-9)
}

func TestBBoxZeroAreaIsLegal(t *testing.T) {
	b := NewBBox(5, 5, 5, 5)
	require.NoError(t, b.Validate())
	assert.InDelta(t, 0.0, b.Area(), 1e-9)
}

func TestBBoxValidate(t *testing.T) {
	tests := []struct {
		name    string
		box     BBox
		wantErr bool
	}{
		{"valid", NewBBox(0, 0, 10, 10), false},
		{"degenerate", NewBBox(3, 3, 3, 3), false},
		{"inverted x", NewBBox(10, 0, 0, 10), true},
		{"inverted y", NewBBox(0, 10, 10, 0), true},
		{"nan", NewBBox(math.NaN(), 0, 10, 10), true},
		{"inf", NewBBox(0, 0, math.Inf(1), 10), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.box.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidBox)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIntersectionArea(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)

	// Partial overlap
	assert.InDelta(t, 25.0, IntersectionArea(a, NewBBox(5, 5, 15, 15)), 1e-9)
	// Containment
	assert.InDelta(t, 4.0, IntersectionArea(a, NewBBox(2, 2, 4, 4)), 1e-9)
	// Disjoint boxes never go negative
	assert.InDelta(t, 0.0, IntersectionArea(a, NewBBox(20, 20, 30, 30)), 1e-9)
	// Edge-touching boxes have zero intersection
	assert.InDelta(t, 0.0, IntersectionArea(a, NewBBox(10, 0, 20, 10)), 1e-9)
	// Symmetric
	b := NewBBox(5, 5, 15, 15)
	assert.InDelta(t, IntersectionArea(a, b), IntersectionArea(b, a), 1e-9)
}

func TestUnion(t *testing.T) {
	a := NewBBox(5, 2, 95, 10)
	b := NewBBox(5, 11, 95, 19)

	u := Union(a, b)
	assert.Equal(t, NewBBox(5, 2, 95, 19), u)

	// Union is commutative
	assert.Equal(t, u, Union(b, a))

	// Union with a contained box is a no-op
	assert.Equal(t, a, Union(a, NewBBox(10, 5, 20, 8)))
}
