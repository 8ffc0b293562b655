package experiment

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Group labels an experiment arm
type Group string

const (
	GroupControl Group = "A"
	GroupVariant Group = "B"
)

// Alternative selects the direction of the alternative hypothesis
type Alternative string

const (
	AlternativeTwoSided Alternative = "two-sided"
	AlternativeLarger   Alternative = "larger"  // B > A
	AlternativeSmaller  Alternative = "smaller" // B < A
)

// DefaultAlpha is used when an input leaves the significance level unset
const DefaultAlpha = 0.05

// Alternatives lists the recognized alternatives in display order
func Alternatives() []Alternative {
	return []Alternative{AlternativeTwoSided, AlternativeLarger, AlternativeSmaller}
}

// IsValid reports whether a is one of the recognized alternatives
func (a Alternative) IsValid() bool {
	switch a {
	case AlternativeTwoSided, AlternativeLarger, AlternativeSmaller:
		return true
	}
	return false
}

// String returns the wire form of the alternative
func (a Alternative) String() string { return string(a) }

// ParseAlternative normalizes user text into an Alternative. Empty input yields
// the two-sided default; unknown values are returned as-is so the hypothesis
// test can reject them.
func ParseAlternative(s string) Alternative {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AlternativeTwoSided
	}
	return Alternative(s)
}

// Input holds the raw counts and configuration of one experiment
type Input struct {
	NA          int         `json:"n_a"`
	CA          int         `json:"c_a"`
	NB          int         `json:"n_b"`
	CB          int         `json:"c_b"`
	Alpha       float64     `json:"alpha,omitempty"`
	Alternative Alternative `json:"alternative,omitempty"`
}

// WithDefaults fills an unset alpha and alternative
func (in Input) WithDefaults() Input {
	if in.Alpha == 0 {
		in.Alpha = DefaultAlpha
	}
	if in.Alternative == "" {
		in.Alternative = AlternativeTwoSided
	}
	return in
}

// Result is the immutable outcome of one evaluation. Fields are set once by
// NewResult and exposed through accessors only.
type Result struct {
	nA, cA, nB, cB int
	crA, crB       float64
	liftAbs        float64
	liftRel        float64
	zScore         float64
	pValue         float64
	alpha          float64
	alternative    Alternative
	significant    bool
}

// Metrics groups the computed values handed to NewResult
type Metrics struct {
	CRA, CRB         float64
	LiftAbs, LiftRel float64
	ZScore, PValue   float64
}

// NewResult assembles a result record. Significance is derived here as
// p < alpha so it can never disagree with the stored p-value.
func NewResult(in Input, m Metrics) Result {
	return Result{
		nA:          in.NA,
		cA:          in.CA,
		nB:          in.NB,
		cB:          in.CB,
		crA:         m.CRA,
		crB:         m.CRB,
		liftAbs:     m.LiftAbs,
		liftRel:     m.LiftRel,
		zScore:      m.ZScore,
		pValue:      m.PValue,
		alpha:       in.Alpha,
		alternative: in.Alternative,
		significant: m.PValue < in.Alpha,
	}
}

func (r Result) NA() int                  { return r.nA }
func (r Result) CA() int                  { return r.cA }
func (r Result) NB() int                  { return r.nB }
func (r Result) CB() int                  { return r.cB }
func (r Result) CRA() float64             { return r.crA }
func (r Result) CRB() float64             { return r.crB }
func (r Result) LiftAbs() float64         { return r.liftAbs }
func (r Result) LiftRel() float64         { return r.liftRel }
func (r Result) ZScore() float64          { return r.zScore }
func (r Result) PValue() float64          { return r.pValue }
func (r Result) Alpha() float64           { return r.alpha }
func (r Result) Alternative() Alternative { return r.alternative }
func (r Result) IsSignificant() bool      { return r.significant }

// IsZero reports whether r is the zero value returned alongside an error
func (r Result) IsZero() bool { return r == Result{} }

// String renders a compact one-line form for logs
func (r Result) String() string {
	return fmt.Sprintf("A=%d/%d B=%d/%d lift=%+.4f z=%.3f p=%.4f sig=%t",
		r.cA, r.nA, r.cB, r.nB, r.liftAbs, r.zScore, r.pValue, r.significant)
}

type resultJSON struct {
	NA            int         `json:"n_a"`
	CA            int         `json:"c_a"`
	NB            int         `json:"n_b"`
	CB            int         `json:"c_b"`
	CRA           float64     `json:"cr_a"`
	CRB           float64     `json:"cr_b"`
	LiftAbs       float64     `json:"lift_abs"`
	LiftRel       float64     `json:"lift_rel"`
	ZScore        float64     `json:"z_score"`
	PValue        float64     `json:"p_value"`
	Alpha         float64     `json:"alpha"`
	Alternative   Alternative `json:"alternative"`
	IsSignificant bool        `json:"is_significant"`
}

// MarshalJSON implements json.Marshaler
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		NA:            r.nA,
		CA:            r.cA,
		NB:            r.nB,
		CB:            r.cB,
		CRA:           r.crA,
		CRB:           r.crB,
		LiftAbs:       r.liftAbs,
		LiftRel:       r.liftRel,
		ZScore:        r.zScore,
		PValue:        r.pValue,
		Alpha:         r.alpha,
		Alternative:   r.alternative,
		IsSignificant: r.significant,
	})
}
