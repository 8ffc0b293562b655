package summary

import (
	"strings"
	"testing"

	"abplayground/domain/experiment"
	"abplayground/internal/abtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(liftAbs, liftRel, p, alpha float64) experiment.Result {
	in := experiment.Input{NA: 1000, CA: 100, NB: 1000, CB: 100, Alpha: alpha, Alternative: experiment.AlternativeTwoSided}
	return experiment.NewResult(in, experiment.Metrics{LiftAbs: liftAbs, LiftRel: liftRel, PValue: p})
}

func TestSummarizeEndToEndShip(t *testing.T) {
	r, err := abtest.Run(experiment.Input{NA: 1000, CA: 100, NB: 1000, CB: 130, Alpha: 0.05})
	require.NoError(t, err)

	s := Summarize(r)
	assert.Equal(t, "Variant B performs better than control A (+30.00%)", s.Direction)
	assert.Equal(t, "The result is statistically significant at α = 0.05 (p = 0.035)", s.Significance)
	assert.Equal(t, "Recommendation: ship variant B; it shows a statistically significant improvement over control A.", s.Recommendation)
	assert.Equal(t, ActionShip, s.Action)
}

func TestSummaryString(t *testing.T) {
	s := Summarize(result(0.03, 0.3, 0.01, 0.05))
	lines := strings.Split(s.String(), "\n\n")
	require.Len(t, lines, 3)
	assert.Equal(t, s.Direction, lines[0])
	assert.Equal(t, s.Significance, lines[1])
	assert.Equal(t, s.Recommendation, lines[2])
}

func TestRecommendationTable(t *testing.T) {
	tests := []struct {
		name    string
		liftAbs float64
		p       float64
		want    Action
		prefix  string
	}{
		{"positive significant", 0.02, 0.01, ActionShip, "Recommendation: ship variant B"},
		{"positive not significant", 0.02, 0.2, ActionContinue, "Recommendation: continue the test"},
		{"negative significant", -0.02, 0.01, ActionKeep, "Recommendation: keep control A; variant B appears to hurt"},
		{"negative not significant", -0.02, 0.2, ActionKeep, "Recommendation: keep control A for now"},
		{"zero significant", 0.0, 0.01, ActionRedesign, "Recommendation: no clear evidence"},
		{"zero not significant", 0.0, 0.9, ActionRedesign, "Recommendation: no clear evidence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(result(tt.liftAbs, 0, tt.p, 0.05))
			assert.Equal(t, tt.want, s.Action)
			assert.True(t, strings.HasPrefix(s.Recommendation, tt.prefix), s.Recommendation)
		})
	}
}

func TestRecommendationTableIsComplete(t *testing.T) {
	seen := map[string]int{}
	for _, rule := range Recommendations() {
		seen[string(rule.Sign)+"/"+boolKey(rule.Significant)]++
	}
	for _, sign := range []LiftSign{LiftPositive, LiftNegative, LiftZero} {
		for _, sig := range []bool{true, false} {
			assert.Equal(t, 1, seen[string(sign)+"/"+boolKey(sig)], "%s/%v", sign, sig)
		}
	}
	assert.Len(t, Recommendations(), 6)
}

func TestRecommendationsReturnsCopy(t *testing.T) {
	rules := Recommendations()
	rules[0].Text = "changed"
	rules[0].Action = ActionRedesign

	rule := Recommend(LiftPositive, true)
	assert.Equal(t, ActionShip, rule.Action)
	assert.True(t, strings.HasPrefix(rule.Text, "Recommendation: ship variant B"))
}

func TestDirectionUsesEpsilonButRecommendationUsesExactZero(t *testing.T) {
	s := Summarize(result(5e-7, 0, 0.5, 0.05))
	assert.True(t, strings.HasPrefix(s.Direction, "No observable difference"))
	assert.Equal(t, ActionContinue, s.Action, "tiny positive lift still routes to the positive branch")

	s = Summarize(result(-5e-7, 0, 0.01, 0.05))
	assert.True(t, strings.HasPrefix(s.Direction, "No observable difference"))
	assert.Equal(t, ActionKeep, s.Action)
}

func TestClassifyDirection(t *testing.T) {
	assert.Equal(t, DirectionNone, ClassifyDirection(0))
	assert.Equal(t, DirectionNone, ClassifyDirection(9.99e-7))
	assert.Equal(t, DirectionBetter, ClassifyDirection(1e-6))
	assert.Equal(t, DirectionWorse, ClassifyDirection(-1e-6))
	assert.Equal(t, DirectionWorse, ClassifyDirection(-0.3))
}

func TestClassifySign(t *testing.T) {
	assert.Equal(t, LiftZero, ClassifySign(0))
	assert.Equal(t, LiftPositive, ClassifySign(1e-12))
	assert.Equal(t, LiftNegative, ClassifySign(-1e-12))
}

func TestRelativeLiftFormatting(t *testing.T) {
	assert.Equal(t, "Variant B performs better than control A (+12.34%)", Summarize(result(0.01, 0.1234, 0.5, 0.05)).Direction)
	assert.Equal(t, "Variant B performs worse than control A (-50.00%)", Summarize(result(-0.05, -0.5, 0.5, 0.05)).Direction)
	assert.Equal(t, "No observable difference between variant B and control A (+0.00%)", Summarize(result(0, 0, 1, 0.05)).Direction)
}

func TestSignificanceLine(t *testing.T) {
	assert.Equal(t, "The result is statistically significant at α = 0.10 (p < 0.001)", Summarize(result(0.1, 1, 0.0004, 0.1)).Significance)
	assert.Equal(t, "The result is not statistically significant at α = 0.01 (p = 0.042)", Summarize(result(0.1, 1, 0.042, 0.01)).Significance)
}

func TestFormatPValue(t *testing.T) {
	assert.Equal(t, "p < 0.001", FormatPValue(0.000999))
	assert.Equal(t, "p = 0.001", FormatPValue(0.001))
	assert.Equal(t, "p = 1.000", FormatPValue(1))
	assert.Equal(t, "p = 0.035", FormatPValue(0.03548845046647475))
}

func TestSummarizeIsPure(t *testing.T) {
	r := result(0.03, 0.3, 0.02, 0.05)
	first := Summarize(r)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Summarize(r))
	}
}

func boolKey(b bool) string {
	if b {
		return "sig"
	}
	return "nosig"
}
