package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"abplayground/adapters/dataset"
	"abplayground/internal/abtest"
	"abplayground/internal/batch"
	"abplayground/internal/config"

	"github.com/spf13/cobra"
)

func newBatchCmd(appConfig *config.Config) *cobra.Command {
	var jsonPath string
	var sheet string
	var concurrency int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Evaluate every experiment in a csv, xlsx or json file",
		Long: `Evaluate a file of experiments. Each row needs n_a, c_a, n_b and c_b columns
and may set name, alpha and alternative.

Example: abtest batch experiments.csv --concurrency 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := dataset.NewReader(args[0], dataset.Options{Sheet: sheet, JSONDataPath: jsonPath})
			if err != nil {
				return err
			}
			rows, err := reader.Read()
			if err != nil {
				return err
			}

			evaluator := batch.NewEvaluator(abtest.NewEvaluator(), batch.Config{
				MaxConcurrency:     concurrency,
				DefaultAlpha:       appConfig.Experiments.DefaultAlpha,
				DefaultAlternative: appConfig.Experiments.DefaultAlternative,
			})
			report, err := evaluator.Evaluate(cmd.Context(), rows)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&jsonPath, "json-path", appConfig.Batch.JSONDataPath, "gjson path of the experiment array in json files")
	cmd.Flags().StringVar(&sheet, "sheet", appConfig.Batch.Sheet, "Worksheet to read from xlsx files (default: first sheet)")
	cmd.Flags().IntVar(&concurrency, "concurrency", appConfig.Batch.MaxConcurrency, "Experiments evaluated in parallel")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")

	return cmd
}

func printReport(w io.Writer, report *batch.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tNAME\tCR(A)\tCR(B)\tLIFT\tP-VALUE\tSIGNIFICANT\tOUTCOME")
	for _, item := range report.Items {
		if item.Failed() {
			fmt.Fprintf(tw, "%d\t%s\t-\t-\t-\t-\t-\terror: %s\n", item.Line, item.Name, item.Error)
			continue
		}
		r := item.Result
		fmt.Fprintf(tw, "%d\t%s\t%.2f%%\t%.2f%%\t%+.2f%%\t%.4f\t%t\t%s\n",
			item.Line, item.Name, r.CRA()*100, r.CRB()*100, r.LiftRel()*100, r.PValue(), r.IsSignificant(), item.Summary.Action)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nBatch %s: %d total, %d evaluated, %d failed, %d significant, %d ship\n",
		report.BatchID, report.Total, report.Evaluated, report.Failed, report.Significant, report.Ship)
	if agg := report.Aggregates; agg != nil {
		fmt.Fprintf(w, "Relative lift: mean %+.2f%%, median %+.2f%%; p-value range [%.4f, %.4f]\n",
			agg.MeanLiftRel*100, agg.MedianLiftRel*100, agg.MinPValue, agg.MaxPValue)
	}
	return nil
}
