// Package summary turns an experiment result into a three-line verdict.
//
// The direction line treats |lift| < 1e-6 as no difference, while the
// recommendation table keys on the exact sign of the lift. A lift of 5e-7
// therefore reads "no observable difference" yet still routes to a
// positive-lift recommendation. Both thresholds are kept as they are until
// product decides otherwise.
package summary

import (
	"fmt"
	"math"
	"strings"

	"abplayground/domain/experiment"
)

// DirectionEpsilon is the absolute lift below which the direction line
// reports no observable difference
const DirectionEpsilon = 1e-6

// PValueFloor is the p-value below which the significance line prints "p < 0.001"
const PValueFloor = 0.001

// Direction classifies the lift for the direction line
type Direction string

const (
	DirectionNone   Direction = "none"
	DirectionBetter Direction = "better"
	DirectionWorse  Direction = "worse"
)

// LiftSign classifies the lift for the recommendation table
type LiftSign string

const (
	LiftPositive LiftSign = "positive"
	LiftNegative LiftSign = "negative"
	LiftZero     LiftSign = "zero"
)

// Action is the decision a recommendation leads to
type Action string

const (
	ActionShip     Action = "ship"
	ActionContinue Action = "continue"
	ActionKeep     Action = "keep_control"
	ActionRedesign Action = "redesign"
)

// Rule is one row of the recommendation table
type Rule struct {
	Sign        LiftSign
	Significant bool
	Action      Action
	Text        string
}

// recommendations has exactly one row per (sign, significant) pair
var recommendations = []Rule{
	{LiftPositive, true, ActionShip, "Recommendation: ship variant B; it shows a statistically significant improvement over control A."},
	{LiftPositive, false, ActionContinue, "Recommendation: continue the test and collect more data before making a decision."},
	{LiftNegative, true, ActionKeep, "Recommendation: keep control A; variant B appears to hurt performance."},
	{LiftNegative, false, ActionKeep, "Recommendation: keep control A for now; there is no strong evidence that variant B improves performance."},
	{LiftZero, true, ActionRedesign, noDifferenceText},
	{LiftZero, false, ActionRedesign, noDifferenceText},
}

const noDifferenceText = "Recommendation: no clear evidence of a difference between A and B; you may keep control A or redesign the experiment."

var directionText = map[Direction]string{
	DirectionNone:   "No observable difference between variant B and control A",
	DirectionBetter: "Variant B performs better than control A",
	DirectionWorse:  "Variant B performs worse than control A",
}

// Summary is the rendered verdict
type Summary struct {
	Direction      string `json:"direction"`
	Significance   string `json:"significance"`
	Recommendation string `json:"recommendation"`
	Action         Action `json:"action"`
}

// String joins the three lines separated by blank lines
func (s Summary) String() string {
	return strings.Join([]string{s.Direction, s.Significance, s.Recommendation}, "\n\n")
}

// Summarize renders the verdict for r. Output depends only on r.
func Summarize(r experiment.Result) Summary {
	rule := Recommend(ClassifySign(r.LiftAbs()), r.IsSignificant())
	return Summary{
		Direction:      fmt.Sprintf("%s (%+.2f%%)", directionText[ClassifyDirection(r.LiftAbs())], r.LiftRel()*100),
		Significance:   fmt.Sprintf("%s (%s)", significanceText(r.IsSignificant(), r.Alpha()), FormatPValue(r.PValue())),
		Recommendation: rule.Text,
		Action:         rule.Action,
	}
}

// ClassifyDirection applies the epsilon tolerance used by the direction line
func ClassifyDirection(liftAbs float64) Direction {
	switch {
	case math.Abs(liftAbs) < DirectionEpsilon:
		return DirectionNone
	case liftAbs > 0:
		return DirectionBetter
	default:
		return DirectionWorse
	}
}

// ClassifySign compares the lift with exactly zero
func ClassifySign(liftAbs float64) LiftSign {
	switch {
	case liftAbs > 0:
		return LiftPositive
	case liftAbs < 0:
		return LiftNegative
	default:
		return LiftZero
	}
}

// Recommendations returns a copy of the recommendation table
func Recommendations() []Rule {
	rules := make([]Rule, len(recommendations))
	copy(rules, recommendations)
	return rules
}

// Recommend looks up the table row for a sign and significance
func Recommend(sign LiftSign, significant bool) Rule {
	for _, rule := range recommendations {
		if rule.Sign == sign && rule.Significant == significant {
			return rule
		}
	}
	// unreachable while the table is complete
	return Rule{Sign: sign, Significant: significant, Action: ActionRedesign, Text: noDifferenceText}
}

// FormatPValue renders "p < 0.001" or "p = 0.123"
func FormatPValue(p float64) string {
	if p < PValueFloor {
		return "p < 0.001"
	}
	return fmt.Sprintf("p = %.3f", p)
}

func significanceText(significant bool, alpha float64) string {
	if significant {
		return fmt.Sprintf("The result is statistically significant at α = %.2f", alpha)
	}
	return fmt.Sprintf("The result is not statistically significant at α = %.2f", alpha)
}
