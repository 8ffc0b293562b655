package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distributions provides the standard normal tail probabilities used by the
// proportion tests
type Distributions struct {
	normal distuv.Normal
}

// NewDistributions creates a distributions utility over the unit normal
func NewDistributions() *Distributions {
	return &Distributions{normal: distuv.UnitNormal}
}

// NormalCDF computes the cumulative distribution function of the standard normal
func (d *Distributions) NormalCDF(x float64) float64 {
	return d.normal.CDF(x)
}

// TwoTailedPValue returns 2 * (1 - Φ(|z|))
func (d *Distributions) TwoTailedPValue(z float64) float64 {
	return 2 * (1 - d.NormalCDF(math.Abs(z)))
}

// UpperTailPValue returns 1 - Φ(z)
func (d *Distributions) UpperTailPValue(z float64) float64 {
	return 1 - d.NormalCDF(z)
}

// LowerTailPValue returns Φ(z)
func (d *Distributions) LowerTailPValue(z float64) float64 {
	return d.NormalCDF(z)
}
