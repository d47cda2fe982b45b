package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationPerfectPositive(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 6, 8, 10}

	r, ok := Correlation(xs, ys)
	require.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestCorrelationPerfectNegative(t *testing.T) {
	xs := []float64{1, 2, 3}
	ys := []float64{6, 4, 2}

	r, ok := Correlation(xs, ys)
	require.True(t, ok)
	assert.InDelta(t, -1.0, r, 1e-9)
}

func TestCorrelationKnownValue(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 1, 4, 3, 5}

	r, ok := Correlation(xs, ys)
	require.True(t, ok)
	assert.InDelta(t, 0.8, r, 1e-9)
}

func TestCorrelationUndefined(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
	}{
		{"constant x", []float64{5, 5, 5, 5}, []float64{1, 2, 3, 4}},
		{"constant y", []float64{1, 2, 3, 4}, []float64{7, 7, 7, 7}},
		{"single point", []float64{1}, []float64{2}},
		{"empty", nil, nil},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Correlation(tt.xs, tt.ys)
			assert.False(t, ok)
		})
	}
}
