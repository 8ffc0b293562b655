// Package abtest evaluates two-variant conversion experiments.
//
// The pipeline is validate → rates → lift → pooled two-proportion z-test →
// result. Every function is pure: no I/O, no shared state, no logging.
// Zero-division cases resolve to fixed fallback values instead of errors:
//
//	Rate(c, 0)          == 0
//	Lift(0, crB).rel    == 0   (zero-control floor, not a true relative lift)
//	ZTest with se == 0  == (0, 1)
package abtest
