package abtest

import (
	"math"
	"strconv"

	"abplayground/domain/experiment"
	"abplayground/internal/analysis"
	"abplayground/internal/errors"
)

var distributions = analysis.NewDistributions()

// ZTest runs a pooled two-proportion z-test of B against A.
//
// When the pooled standard error is zero (no conversions at all, or every user
// converted in both groups) it returns z = 0, p = 1. Counts are assumed to be
// validated; the alternative is checked here, before the zero standard error
// shortcut, so an unknown alternative fails even for degenerate counts.
func ZTest(nA, cA, nB, cB int, alternative experiment.Alternative) (z, p float64, err error) {
	if !alternative.IsValid() {
		return 0, 0, alternativeError(alternative)
	}

	crA, crB := Rate(cA, nA), Rate(cB, nB)
	pooled := float64(cA+cB) / float64(nA+nB)
	se := math.Sqrt(pooled * (1 - pooled) * (1/float64(nA) + 1/float64(nB)))
	if se == 0 {
		return 0.0, 1.0, nil
	}

	z = (crB - crA) / se
	switch alternative {
	case experiment.AlternativeLarger:
		p = distributions.UpperTailPValue(z)
	case experiment.AlternativeSmaller:
		p = distributions.LowerTailPValue(z)
	default:
		p = distributions.TwoTailedPValue(z)
	}
	return z, p, nil
}

func alternativeError(alternative experiment.Alternative) error {
	allowed := make([]string, 0, 3)
	for _, a := range experiment.Alternatives() {
		allowed = append(allowed, a.String())
	}
	return errors.NewArgumentError("alternative", alternative.String(), allowed...)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
