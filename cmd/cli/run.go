package main

import (
	"encoding/json"
	"fmt"
	"io"

	"abplayground/domain/experiment"
	"abplayground/internal/abtest"
	"abplayground/internal/config"
	"abplayground/internal/summary"

	"github.com/spf13/cobra"
)

type runOutput struct {
	Result  experiment.Result `json:"result"`
	Summary summary.Summary   `json:"summary"`
}

func newRunCmd(appConfig *config.Config) *cobra.Command {
	var nA, cA, nB, cB int
	var alpha float64
	var alternative string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a single experiment",
		Long: `Evaluate one A/B experiment from its sample sizes and conversion counts.

Example: abtest run --na 1000 --ca 100 --nb 1000 --cb 130 --alternative larger`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := experiment.Input{
				NA:          nA,
				CA:          cA,
				NB:          nB,
				CB:          cB,
				Alpha:       alpha,
				Alternative: experiment.ParseAlternative(alternative),
			}
			if err := abtest.CheckAlpha(input.Alpha); err != nil {
				return err
			}

			result, err := abtest.NewEvaluator().Evaluate(input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, runOutput{Result: result, Summary: summary.Summarize(result)})
			}
			printResult(out, result)
			return nil
		},
	}

	cmd.Flags().IntVar(&nA, "na", 0, "Sample size of control group A")
	cmd.Flags().IntVar(&cA, "ca", 0, "Conversions in control group A")
	cmd.Flags().IntVar(&nB, "nb", 0, "Sample size of variant group B")
	cmd.Flags().IntVar(&cB, "cb", 0, "Conversions in variant group B")
	cmd.Flags().Float64Var(&alpha, "alpha", appConfig.Experiments.DefaultAlpha, "Significance level in (0, 1)")
	cmd.Flags().StringVar(&alternative, "alternative", appConfig.Experiments.DefaultAlternative.String(), "Alternative hypothesis: two-sided|larger|smaller")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	for _, name := range []string{"na", "ca", "nb", "cb"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func printResult(w io.Writer, r experiment.Result) {
	significant := "no"
	if r.IsSignificant() {
		significant = "yes"
	}
	fmt.Fprintf(w, "Group A:  %d/%d converted (%.2f%%)\n", r.CA(), r.NA(), r.CRA()*100)
	fmt.Fprintf(w, "Group B:  %d/%d converted (%.2f%%)\n", r.CB(), r.NB(), r.CRB()*100)
	fmt.Fprintf(w, "Lift:     %+.2f pp (%+.2f%%)\n", r.LiftAbs()*100, r.LiftRel()*100)
	fmt.Fprintf(w, "Z-score:  %.4f\n", r.ZScore())
	fmt.Fprintf(w, "p-value:  %.4f (%s)\n", r.PValue(), r.Alternative())
	fmt.Fprintf(w, "Significant at α = %g: %s\n\n", r.Alpha(), significant)
	fmt.Fprintln(w, summary.Summarize(r).String())
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
