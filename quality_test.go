package jpegli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityToDistance(t *testing.T) {
	cases := []struct {
		name string
		q    float64
		want float64
	}{
		{"clamped at 100", 100, 0.01},
		{"above 100", 150, 0.01},
		{"mid range 90", 90, 0.1 + 10*0.09},
		{"boundary 30", 30, 0.1 + 70*0.09},
		{"below 30", 10, (53.0/3000.0)*100 - (23.0/20.0)*10 + 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, qualityToDistance(tc.q), 1e-9)
		})
	}
}

func TestLinearQualityToDistance(t *testing.T) {
	assert.InDelta(t, qualityToDistance(100), linearQualityToDistance(0), 1e-9)
	assert.InDelta(t, qualityToDistance(50), linearQualityToDistance(100), 1e-9)
	// Clamped range.
	assert.Equal(t, linearQualityToDistance(5000), linearQualityToDistance(6000))
	assert.Equal(t, linearQualityToDistance(0), linearQualityToDistance(-10))
}

func TestDistanceToLinearQualityMonotone(t *testing.T) {
	prev := distanceToLinearQuality(0.01)
	// Monotone over the distances linearQualityToDistance can produce
	// (below 25); from d=25 on the curve is capped at 5000, checked below.
	breakpoints := []float64{0.05, 0.1, 1, 2, 4.6, 5, 6.4, 10, 24.9}
	for _, d := range breakpoints {
		v := distanceToLinearQuality(d)
		assert.GreaterOrEqual(t, v, prev, "distance_to_linear_quality must be monotone non-decreasing at d=%v", d)
		prev = v
	}
	assert.Equal(t, 1.0, distanceToLinearQuality(0.1))
	assert.Equal(t, 5000.0, distanceToLinearQuality(25))
	assert.Equal(t, 5000.0, distanceToLinearQuality(100))
}

func TestQualityScaling(t *testing.T) {
	assert.Equal(t, 5000.0, qualityScaling(1))
	assert.Equal(t, 0.0, qualityScaling(1000)) // clamped to 100 -> 200-2*100
	assert.Equal(t, 100.0, qualityScaling(50))
}
