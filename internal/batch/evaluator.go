package batch

import (
	"context"
	"log"
	"sync"
	"time"

	"abplayground/adapters/dataset"
	"abplayground/domain/core"
	"abplayground/domain/experiment"
	"abplayground/internal/abtest"
	"abplayground/internal/errors"
	"abplayground/internal/summary"
	"abplayground/ports"

	"golang.org/x/sync/semaphore"
)

// Config controls batch evaluation
type Config struct {
	MaxConcurrency     int
	DefaultAlpha       float64
	DefaultAlternative experiment.Alternative
}

// DefaultConfig returns the settings used when none are supplied
func DefaultConfig() Config {
	return Config{
		MaxConcurrency:     4,
		DefaultAlpha:       experiment.DefaultAlpha,
		DefaultAlternative: experiment.AlternativeTwoSided,
	}
}

// Evaluator runs many experiments with bounded concurrency
type Evaluator struct {
	evaluator ports.ExperimentEvaluator
	config    Config
	sem       *semaphore.Weighted
}

// NewEvaluator creates a batch evaluator over a single-experiment evaluator
func NewEvaluator(evaluator ports.ExperimentEvaluator, config Config) *Evaluator {
	if config.MaxConcurrency < 1 {
		config.MaxConcurrency = 1
	}
	if config.DefaultAlpha == 0 {
		config.DefaultAlpha = experiment.DefaultAlpha
	}
	if config.DefaultAlternative == "" {
		config.DefaultAlternative = experiment.AlternativeTwoSided
	}
	return &Evaluator{
		evaluator: evaluator,
		config:    config,
		sem:       semaphore.NewWeighted(int64(config.MaxConcurrency)),
	}
}

// Evaluate runs every row and returns the report in row order. Invalid rows
// are recorded on their item and do not stop the batch. A cancelled context
// stops scheduling new rows and returns ctx.Err().
func (e *Evaluator) Evaluate(ctx context.Context, rows []dataset.Row) (*Report, error) {
	batchID := core.NewBatchID()
	started := time.Now()
	log.Printf("[BatchEvaluator] Batch %s: evaluating %d experiments (concurrency %d)", batchID, len(rows), e.config.MaxConcurrency)

	items := make([]Item, len(rows))
	var wg sync.WaitGroup
	var scheduleErr error

	for i, row := range rows {
		if err := e.sem.Acquire(ctx, 1); err != nil {
			scheduleErr = err
			break
		}
		wg.Add(1)
		go func(index int, row dataset.Row) {
			defer wg.Done()
			defer e.sem.Release(1)
			items[index] = e.evaluateRow(row)
		}(i, row)
	}
	wg.Wait()

	if scheduleErr != nil {
		log.Printf("[BatchEvaluator] Batch %s cancelled: %v", batchID, scheduleErr)
		return nil, scheduleErr
	}

	report := newReport(batchID, started, items)
	log.Printf("[BatchEvaluator] Batch %s complete in %s: %d evaluated, %d failed, %d significant",
		batchID, report.Duration, report.Evaluated, report.Failed, report.Significant)
	return report, nil
}

func (e *Evaluator) evaluateRow(row dataset.Row) Item {
	in := row.Input
	if in.Alpha == 0 && !row.AlphaSet {
		in.Alpha = e.config.DefaultAlpha
	}
	if in.Alternative == "" {
		in.Alternative = e.config.DefaultAlternative
	}

	item := Item{
		ID:    core.NewExperimentID(),
		Line:  row.Line,
		Name:  row.Name,
		Input: in,
	}

	if err := abtest.CheckAlpha(in.Alpha); err != nil {
		item.setError(err)
		return item
	}

	result, err := e.evaluator.Evaluate(in)
	if err != nil {
		item.setError(err)
		return item
	}

	s := summary.Summarize(result)
	item.Result = &result
	item.Summary = &s
	return item
}

func (item *Item) setError(err error) {
	item.Error = err.Error()
	item.ErrorCode = errors.GetCode(err)
	if vErr, ok := errors.AsValidationError(err); ok {
		item.Group = vErr.Group
		item.Reason = string(vErr.Reason)
	}
}
