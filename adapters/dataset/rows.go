package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"abplayground/domain/experiment"
	"abplayground/internal/errors"
)

// Row is one experiment read from a file. Line is the 1-based data row
// (header excluded) or array position. AlphaSet records that the source gave
// an alpha, so an explicit 0 is not mistaken for "use the default".
type Row struct {
	Line     int              `json:"line"`
	Name     string           `json:"name"`
	Input    experiment.Input `json:"input"`
	AlphaSet bool             `json:"-"`
}

// Canonical column names
const (
	ColumnName        = "name"
	ColumnNA          = "n_a"
	ColumnCA          = "c_a"
	ColumnNB          = "n_b"
	ColumnCB          = "c_b"
	ColumnAlpha       = "alpha"
	ColumnAlternative = "alternative"
)

var columnAliases = map[string]string{
	"experiment":    ColumnName,
	"na":            ColumnNA,
	"sample_size_a": ColumnNA,
	"ca":            ColumnCA,
	"conversions_a": ColumnCA,
	"nb":            ColumnNB,
	"sample_size_b": ColumnNB,
	"cb":            ColumnCB,
	"conversions_b": ColumnCB,
}

var requiredColumns = []string{ColumnNA, ColumnCA, ColumnNB, ColumnCB}

func normalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.NewReplacer(" ", "_", "-", "_").Replace(h)
	if canonical, ok := columnAliases[h]; ok {
		return canonical
	}
	return h
}

// parseTable converts a header row plus data rows. Blank rows are skipped.
func parseTable(records [][]string) ([]Row, error) {
	if len(records) < 2 {
		return nil, errors.New(errors.CodeValidationError, "file must have at least a header row and one data row")
	}

	headers := make([]string, len(records[0]))
	present := make(map[string]bool)
	for i, header := range records[0] {
		headers[i] = normalizeHeader(header)
		present[headers[i]] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return nil, errors.New(errors.CodeValidationError, fmt.Sprintf("missing required column %q", col))
		}
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		fields := make(map[string]string, len(headers))
		for j, cell := range record {
			if j < len(headers) {
				fields[headers[j]] = strings.TrimSpace(cell)
			}
		}
		row, err := parseRecord(i+1, fields)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(line int, fields map[string]string) (Row, error) {
	row := Row{Line: line, Name: fields[ColumnName]}
	if row.Name == "" {
		row.Name = fmt.Sprintf("experiment %d", line)
	}

	counts := make(map[string]int, len(requiredColumns))
	for _, col := range requiredColumns {
		v, err := parseCount(fields[col])
		if err != nil {
			return Row{}, rowError(line, col, err)
		}
		counts[col] = v
	}

	row.Input = experiment.Input{
		NA: counts[ColumnNA],
		CA: counts[ColumnCA],
		NB: counts[ColumnNB],
		CB: counts[ColumnCB],
	}

	if raw := fields[ColumnAlpha]; raw != "" {
		alpha, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Row{}, rowError(line, ColumnAlpha, err)
		}
		row.Input.Alpha = alpha
		row.AlphaSet = true
	}
	if raw := fields[ColumnAlternative]; raw != "" {
		row.Input.Alternative = experiment.ParseAlternative(raw)
	}

	return row, nil
}

// parseCount accepts integers, integral decimals ("100.0") and thousands separators
func parseCount(raw string) (int, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0, fmt.Errorf("value is empty")
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%q is not a whole number", raw)
	}
	return int(f), nil
}

func rowError(line int, column string, err error) error {
	return errors.Wrapf(errors.New(errors.CodeValidationError, err.Error()), "row %d column %s", line, column)
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
