package ui

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"abplayground/domain/experiment"
	"abplayground/internal/abtest"
	"abplayground/internal/errors"
	"abplayground/internal/summary"
)

type formValues struct {
	NA, CA, NB, CB string
	Alpha          string
	Alternative    string
}

type resultView struct {
	CRA         string
	CRB         string
	Lift        string
	ZScore      string
	PValue      string
	Alpha       string
	Significant string
	Summary     summary.Summary
}

type indexPage struct {
	Form         formValues
	Alternatives []experiment.Alternative
	Result       *resultView
	Error        string
}

func (a *App) defaultForm() formValues {
	return formValues{
		NA:          "1000",
		CA:          "100",
		NB:          "1000",
		CB:          "100",
		Alpha:       formatAlpha(a.defaults.Alpha),
		Alternative: a.defaults.Alternative.String(),
	}
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, http.StatusOK, "index", indexPage{
		Form:         a.defaultForm(),
		Alternatives: experiment.Alternatives(),
	})
}

func (a *App) handleRun(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := formValues{
		NA:          strings.TrimSpace(r.PostFormValue("n_a")),
		CA:          strings.TrimSpace(r.PostFormValue("c_a")),
		NB:          strings.TrimSpace(r.PostFormValue("n_b")),
		CB:          strings.TrimSpace(r.PostFormValue("c_b")),
		Alpha:       strings.TrimSpace(r.PostFormValue("alpha")),
		Alternative: strings.TrimSpace(r.PostFormValue("alternative")),
	}
	page := indexPage{Form: form, Alternatives: experiment.Alternatives()}

	input, err := a.parseForm(form)
	if err == nil {
		err = abtest.CheckAlpha(input.Alpha)
	}
	var result experiment.Result
	if err == nil {
		result, err = a.evaluator.Evaluate(input)
	}
	if err != nil {
		page.Error = err.Error()
		status := http.StatusBadRequest
		if !errors.IsUserError(err) && errors.GetCode(err) != errors.CodeValidationError {
			status = http.StatusInternalServerError
		}
		a.renderTemplate(w, status, "index", page)
		return
	}

	page.Result = newResultView(result)
	a.renderTemplate(w, http.StatusOK, "index", page)
}

func (a *App) handleLearn(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, http.StatusOK, "learn", a.lessons)
}

func (a *App) parseForm(form formValues) (experiment.Input, error) {
	fields := []struct {
		label string
		raw   string
		dst   *int
	}{
		{"Sample size (A)", form.NA, new(int)},
		{"Conversions (A)", form.CA, new(int)},
		{"Sample size (B)", form.NB, new(int)},
		{"Conversions (B)", form.CB, new(int)},
	}
	for _, f := range fields {
		v, err := strconv.Atoi(f.raw)
		if err != nil {
			return experiment.Input{}, errors.New(errors.CodeValidationError, fmt.Sprintf("%s must be a whole number", f.label))
		}
		*f.dst = v
	}

	input := experiment.Input{
		NA:          *fields[0].dst,
		CA:          *fields[1].dst,
		NB:          *fields[2].dst,
		CB:          *fields[3].dst,
		Alpha:       a.defaults.Alpha,
		Alternative: a.defaults.Alternative,
	}
	if form.Alpha != "" {
		alpha, err := strconv.ParseFloat(form.Alpha, 64)
		if err != nil {
			return experiment.Input{}, errors.New(errors.CodeValidationError, "Alpha must be a number")
		}
		input.Alpha = alpha
	}
	if form.Alternative != "" {
		input.Alternative = experiment.ParseAlternative(form.Alternative)
	}
	return input, nil
}

func newResultView(r experiment.Result) *resultView {
	significant := "No"
	if r.IsSignificant() {
		significant = "Yes"
	}
	return &resultView{
		CRA:         fmt.Sprintf("%.1f%%", r.CRA()*100),
		CRB:         fmt.Sprintf("%.1f%%", r.CRB()*100),
		Lift:        fmt.Sprintf("%+.1f%%", r.LiftRel()*100),
		ZScore:      fmt.Sprintf("%.3f", r.ZScore()),
		PValue:      fmt.Sprintf("%.3f", r.PValue()),
		Alpha:       formatAlpha(r.Alpha()),
		Significant: significant,
		Summary:     summary.Summarize(r),
	}
}

func formatAlpha(alpha float64) string {
	return strconv.FormatFloat(alpha, 'f', -1, 64)
}
