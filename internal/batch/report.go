package batch

import (
	"time"

	"abplayground/domain/core"
	"abplayground/domain/experiment"
	"abplayground/internal/summary"

	"github.com/montanaflynn/stats"
)

// Item is the outcome of one row. Exactly one of Result or Error is set.
type Item struct {
	ID        core.ExperimentID  `json:"id"`
	Line      int                `json:"line"`
	Name      string             `json:"name"`
	Input     experiment.Input   `json:"input"`
	Result    *experiment.Result `json:"result,omitempty"`
	Summary   *summary.Summary   `json:"summary,omitempty"`
	Error     string             `json:"error,omitempty"`
	ErrorCode string             `json:"error_code,omitempty"`
	Group     string             `json:"group,omitempty"`
	Reason    string             `json:"reason,omitempty"`
}

// Failed reports whether the row could not be evaluated
func (item Item) Failed() bool { return item.Result == nil }

// Aggregates describes the successful rows of a batch
type Aggregates struct {
	MeanLiftAbs   float64 `json:"mean_lift_abs"`
	MeanLiftRel   float64 `json:"mean_lift_rel"`
	MedianLiftRel float64 `json:"median_lift_rel"`
	MinPValue     float64 `json:"min_p_value"`
	MaxPValue     float64 `json:"max_p_value"`
}

// Report is the outcome of a batch evaluation
type Report struct {
	BatchID     core.BatchID  `json:"batch_id"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration_ns"`
	Total       int           `json:"total"`
	Evaluated   int           `json:"evaluated"`
	Failed      int           `json:"failed"`
	Significant int           `json:"significant"`
	Ship        int           `json:"ship"`
	Aggregates  *Aggregates   `json:"aggregates,omitempty"`
	Items       []Item        `json:"items"`
}

func newReport(batchID core.BatchID, started time.Time, items []Item) *Report {
	report := &Report{
		BatchID:   batchID,
		StartedAt: started,
		Duration:  time.Since(started),
		Total:     len(items),
		Items:     items,
	}

	var liftAbs, liftRel, pValues stats.Float64Data
	for _, item := range items {
		if item.Failed() {
			report.Failed++
			continue
		}
		report.Evaluated++
		if item.Result.IsSignificant() {
			report.Significant++
		}
		if item.Summary.Action == summary.ActionShip {
			report.Ship++
		}
		liftAbs = append(liftAbs, item.Result.LiftAbs())
		liftRel = append(liftRel, item.Result.LiftRel())
		pValues = append(pValues, item.Result.PValue())
	}

	if report.Evaluated > 0 {
		report.Aggregates = aggregate(liftAbs, liftRel, pValues)
	}
	return report
}

// aggregate expects non-empty inputs; stats only errors on empty data
func aggregate(liftAbs, liftRel, pValues stats.Float64Data) *Aggregates {
	meanAbs, _ := liftAbs.Mean()
	meanRel, _ := liftRel.Mean()
	medianRel, _ := liftRel.Median()
	minP, _ := pValues.Min()
	maxP, _ := pValues.Max()
	return &Aggregates{
		MeanLiftAbs:   meanAbs,
		MeanLiftRel:   meanRel,
		MedianLiftRel: medianRel,
		MinPValue:     minP,
		MaxPValue:     maxP,
	}
}
