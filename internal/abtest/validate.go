package abtest

import (
	"abplayground/domain/experiment"
	"abplayground/internal/errors"
)

// Validate rejects malformed counts. Group A is checked before group B and,
// within a group, the rules run in a fixed order so the first reported error
// is stable for any combination of bad fields.
func Validate(nA, cA, nB, cB int) error {
	if err := validateGroup(experiment.GroupControl, nA, cA); err != nil {
		return err
	}
	return validateGroup(experiment.GroupVariant, nB, cB)
}

func validateGroup(group experiment.Group, n, c int) error {
	var reason errors.ValidationReason
	switch {
	case n < 0:
		reason = errors.ReasonNegativeSize
	case c < 0:
		reason = errors.ReasonNegativeConversions
	case n == 0:
		reason = errors.ReasonZeroSize
	case c > n:
		reason = errors.ReasonConversionsExceed
	default:
		return nil
	}
	return errors.NewValidationError(string(group), reason)
}

// CheckAlpha rejects significance levels outside (0, 1). The pipeline itself
// accepts any alpha; boundaries call this before Run.
func CheckAlpha(alpha float64) error {
	if !(alpha > 0 && alpha < 1) {
		return &errors.ArgumentError{Name: "alpha", Value: formatFloat(alpha), Constraint: "in (0, 1)"}
	}
	return nil
}
