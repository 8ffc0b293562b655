package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalCDFReferenceValues(t *testing.T) {
	d := NewDistributions()

	assert.InDelta(t, 0.5, d.NormalCDF(0), 1e-12)
	assert.InDelta(t, 0.975002104851780, d.NormalCDF(1.96), 1e-9)
	assert.InDelta(t, 0.158655253931457, d.NormalCDF(-1), 1e-9)
}

func TestTailPValues(t *testing.T) {
	d := NewDistributions()

	tests := []float64{-3.2, -1.5, -0.2, 0, 0.7, 1.96, 4.1}
	for _, z := range tests {
		upper := d.UpperTailPValue(z)
		lower := d.LowerTailPValue(z)

		assert.InDelta(t, 1.0, upper+lower, 1e-12, "tails must be complementary for z=%v", z)
		assert.InDelta(t, 2*d.UpperTailPValue(abs(z)), d.TwoTailedPValue(z), 1e-12)
	}

	assert.InDelta(t, 0.05, d.TwoTailedPValue(1.959963984540054), 1e-9)
	assert.Equal(t, d.TwoTailedPValue(2.5), d.TwoTailedPValue(-2.5))
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
