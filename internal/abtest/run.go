package abtest

import (
	"abplayground/domain/experiment"
)

// Run evaluates one experiment. An unset alpha defaults to 0.05 and an unset
// alternative to two-sided. On failure the zero Result is returned and no
// later stage runs.
func Run(input experiment.Input) (experiment.Result, error) {
	in := input.WithDefaults()

	if err := Validate(in.NA, in.CA, in.NB, in.CB); err != nil {
		return experiment.Result{}, err
	}

	crA, crB := Rate(in.CA, in.NA), Rate(in.CB, in.NB)
	liftAbs, liftRel := Lift(crA, crB)

	z, p, err := ZTest(in.NA, in.CA, in.NB, in.CB, in.Alternative)
	if err != nil {
		return experiment.Result{}, err
	}

	return experiment.NewResult(in, experiment.Metrics{
		CRA:     crA,
		CRB:     crB,
		LiftAbs: liftAbs,
		LiftRel: liftRel,
		ZScore:  z,
		PValue:  p,
	}), nil
}

// Evaluator adapts Run to the interface consumed by the batch and HTTP layers
type Evaluator struct{}

// NewEvaluator creates an Evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate runs one experiment
func (e *Evaluator) Evaluate(input experiment.Input) (experiment.Result, error) {
	return Run(input)
}
