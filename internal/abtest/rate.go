package abtest

// Rate returns conversions / total, or 0 when total is 0. It does not reject
// non-positive totals; Validate does that upstream.
func Rate(conversions, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(conversions) / float64(total)
}

// Lift returns the absolute (crB - crA) and relative (abs / crA) lift of the
// variant over the control. The relative lift is floored to 0 when crA is 0.
func Lift(crA, crB float64) (abs, rel float64) {
	abs = crB - crA
	if crA > 0 {
		rel = abs / crA
	}
	return abs, rel
}
