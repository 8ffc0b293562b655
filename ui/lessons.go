package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Lesson is one block of educational copy on the learn page
type Lesson struct {
	Title string
	Body  template.HTML
}

var lessonSources = []struct {
	title string
	body  string
}{
	{"What is an A/B test?", `An **A/B test** splits users at random into two groups and shows each group a
different version of a product experience. Comparing how the groups behave tells you
whether the change made a difference, rather than guessing from before/after numbers.`},
	{"Control vs Variant", `- **Control (A)** is the current experience, the baseline.
- **Variant (B)** is the new experience you want to evaluate.

Both groups run at the same time so that seasonality and traffic mix affect them equally.`},
	{"What is conversion rate?", `The **conversion rate** is the share of users who completed the goal:

    conversion rate = conversions / sample size

Lift compares the two rates. *Absolute lift* is CR(B) - CR(A); *relative lift* divides
that by CR(A). When CR(A) is 0 the relative lift is reported as 0.`},
	{"What is a p-value?", `The **p-value** is the probability of seeing a difference at least this large if the
two versions actually performed the same. A result is called *statistically
significant* when the p-value is below the chosen **alpha** (commonly 0.05).

A small p-value is evidence against "no difference"; it does not measure how large or
valuable the difference is.`},
}

// renderLessons converts the markdown copy to HTML once at startup
func renderLessons() []Lesson {
	lessons := make([]Lesson, 0, len(lessonSources))
	for _, src := range lessonSources {
		p := parser.NewWithExtensions(parser.CommonExtensions)
		renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
		body := markdown.ToHTML([]byte(src.body), p, renderer)
		lessons = append(lessons, Lesson{Title: src.title, Body: template.HTML(body)})
	}
	return lessons
}
