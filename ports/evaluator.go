package ports

import (
	"abplayground/domain/experiment"
)

// ExperimentEvaluator computes the result record for one experiment.
// Implementations must be safe for concurrent use.
type ExperimentEvaluator interface {
	Evaluate(input experiment.Input) (experiment.Result, error)
}
