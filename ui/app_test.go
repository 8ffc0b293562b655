package ui

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"abplayground/domain/experiment"
	"abplayground/internal/abtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(Config{}, abtest.NewEvaluator())
	require.NoError(t, err)
	return app
}

func submit(app *App, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func formFor(nA, cA, nB, cB string) url.Values {
	return url.Values{
		"n_a":         {nA},
		"c_a":         {cA},
		"n_b":         {nB},
		"c_b":         {cB},
		"alpha":       {"0.05"},
		"alternative": {"two-sided"},
	}
}

func TestIndexShowsDefaults(t *testing.T) {
	app := newTestApp(t)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="n_a" min="0" value="1000"`)
	assert.Contains(t, body, `value="two-sided" selected`)
	assert.Contains(t, body, `value="0.05"`)
	assert.Contains(t, body, "Results will appear here after running the test.")
}

func TestRunRendersMetricsAndSummary(t *testing.T) {
	app := newTestApp(t)
	rec := submit(app, formFor("1000", "100", "1000", "130"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<dd id="cr-a">10.0%</dd>`)
	assert.Contains(t, body, `<dd id="cr-b">13.0%</dd>`)
	assert.Contains(t, body, `<dd id="lift">&#43;30.0%</dd>`)
	assert.Contains(t, body, `<dd id="z-score">2.103</dd>`)
	assert.Contains(t, body, `<dd id="p-value">0.035</dd>`)
	assert.Contains(t, body, "Significant at α = 0.05: Yes")
	assert.Contains(t, body, "Recommendation: ship variant B")
}

func TestRunShowsValidationErrorWithoutResult(t *testing.T) {
	app := newTestApp(t)
	rec := submit(app, formFor("0", "0", "1000", "100"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Group A sample size cannot be 0")
	assert.NotContains(t, body, "Conversion Metrics")
	assert.Contains(t, body, `name="n_a" min="0" value="0"`, "the submitted values are kept")
}

func TestRunRejectsNonNumericInput(t *testing.T) {
	app := newTestApp(t)
	rec := submit(app, formFor("lots", "0", "1000", "100"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sample size (A) must be a whole number")
}

func TestRunRejectsBadAlternativeAndAlpha(t *testing.T) {
	app := newTestApp(t)

	values := formFor("100", "10", "100", "12")
	values.Set("alternative", "bogus")
	rec := submit(app, values)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "alternative must be")

	values = formFor("100", "10", "100", "12")
	values.Set("alpha", "2")
	rec = submit(app, values)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "alpha must be in (0, 1)")
}

func TestLearnRendersMarkdown(t *testing.T) {
	app := newTestApp(t)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/learn", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<summary>What is a p-value?</summary>")
	assert.Contains(t, body, "<strong>Control (A)</strong>")
	assert.Contains(t, body, "<code>conversion rate = conversions / sample size")
}

func TestNewAppPort(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, "8090", app.port)

	app, err := NewApp(Config{Port: "9100"}, abtest.NewEvaluator())
	require.NoError(t, err)
	assert.Equal(t, "9100", app.port)
	assert.Len(t, app.lessons, len(lessonSources))
}

func TestNewResultView(t *testing.T) {
	in := experiment.Input{NA: 1000, CA: 100, NB: 1000, CB: 90, Alpha: 0.1, Alternative: experiment.AlternativeSmaller}
	result, err := abtest.Run(in)
	require.NoError(t, err)

	view := newResultView(result)
	assert.Equal(t, "10.0%", view.CRA)
	assert.Equal(t, "9.0%", view.CRB)
	assert.Equal(t, "-10.0%", view.Lift)
	assert.Equal(t, "0.1", view.Alpha)
	assert.Equal(t, result.IsSignificant(), view.Significant == "Yes")
}
