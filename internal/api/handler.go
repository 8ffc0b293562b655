package api

import (
	"context"
	stderrors "errors"
	"log"
	"net/http"

	"abplayground/adapters/dataset"
	"abplayground/domain/core"
	"abplayground/domain/experiment"
	"abplayground/internal/abtest"
	"abplayground/internal/batch"
	"abplayground/internal/errors"
	"abplayground/internal/summary"
	"abplayground/ports"

	"github.com/gin-gonic/gin"
)

// MaxBatchSize bounds the number of experiments accepted in one request
const MaxBatchSize = 1000

// BatchRunner evaluates a set of experiments
type BatchRunner interface {
	Evaluate(ctx context.Context, rows []dataset.Row) (*batch.Report, error)
}

// ExperimentRequest is the JSON body of a single evaluation
type ExperimentRequest struct {
	Name        string   `json:"name"`
	NA          *int     `json:"n_a" binding:"required"`
	CA          *int     `json:"c_a" binding:"required"`
	NB          *int     `json:"n_b" binding:"required"`
	CB          *int     `json:"c_b" binding:"required"`
	Alpha       *float64 `json:"alpha"`
	Alternative string   `json:"alternative"`
}

// BatchRequest is the JSON body of a batch evaluation
type BatchRequest struct {
	Experiments []ExperimentRequest `json:"experiments" binding:"required,min=1,dive"`
}

// SummaryResponse carries the verdict lines and their joined text
type SummaryResponse struct {
	summary.Summary
	Text string `json:"text"`
}

// EvaluateResponse is returned by a successful single evaluation
type EvaluateResponse struct {
	ID      core.ExperimentID `json:"id"`
	Result  experiment.Result `json:"result"`
	Summary SummaryResponse   `json:"summary"`
}

// ErrorResponse describes a rejected request
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Group  string `json:"group,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Handler serves the experiment endpoints
type Handler struct {
	evaluator ports.ExperimentEvaluator
	batch     BatchRunner
	defaults  experiment.Input
}

// NewHandler creates a handler. defaults supplies the alpha and alternative
// used when a request omits them.
func NewHandler(evaluator ports.ExperimentEvaluator, runner BatchRunner, defaults experiment.Input) *Handler {
	return &Handler{
		evaluator: evaluator,
		batch:     runner,
		defaults:  defaults.WithDefaults(),
	}
}

// RegisterRoutes mounts the handler on a gin router
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1/experiments")
	v1.POST("/evaluate", h.Evaluate)
	v1.POST("/batch", h.Batch)
}

// NewRouter builds a gin engine with recovery, logging and the experiment routes
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	h.RegisterRoutes(router)
	return router
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Evaluate runs a single experiment
func (h *Handler) Evaluate(c *gin.Context) {
	var req ExperimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: errors.CodeValidationError})
		return
	}

	input := h.toInput(req)
	if err := abtest.CheckAlpha(input.Alpha); err != nil {
		respondError(c, err)
		return
	}

	result, err := h.evaluator.Evaluate(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, EvaluateResponse{
		ID:      core.NewExperimentID(),
		Result:  result,
		Summary: newSummaryResponse(summary.Summarize(result)),
	})
}

// Batch runs every experiment in the request body
func (h *Handler) Batch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: errors.CodeValidationError})
		return
	}
	if len(req.Experiments) > MaxBatchSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: "too many experiments in one batch",
			Code:  errors.CodeValidationError,
		})
		return
	}

	rows := make([]dataset.Row, len(req.Experiments))
	for i, exp := range req.Experiments {
		rows[i] = dataset.Row{Line: i + 1, Name: exp.Name, Input: h.toInput(exp), AlphaSet: exp.Alpha != nil}
	}

	report, err := h.batch.Evaluate(c.Request.Context(), rows)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) toInput(req ExperimentRequest) experiment.Input {
	input := experiment.Input{
		NA:          *req.NA,
		CA:          *req.CA,
		NB:          *req.NB,
		CB:          *req.CB,
		Alpha:       h.defaults.Alpha,
		Alternative: h.defaults.Alternative,
	}
	if req.Alpha != nil {
		input.Alpha = *req.Alpha
	}
	if req.Alternative != "" {
		input.Alternative = experiment.ParseAlternative(req.Alternative)
	}
	return input
}

func newSummaryResponse(s summary.Summary) SummaryResponse {
	return SummaryResponse{Summary: s, Text: s.String()}
}

func respondError(c *gin.Context, err error) {
	resp := ErrorResponse{Error: err.Error(), Code: errors.GetCode(err)}
	if vErr, ok := errors.AsValidationError(err); ok {
		resp.Group = vErr.Group
		resp.Reason = string(vErr.Reason)
	}

	status := http.StatusInternalServerError
	switch {
	case errors.IsUserError(err):
		status = http.StatusBadRequest
	case ctxErr(err):
		status = http.StatusRequestTimeout
	default:
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, resp)
}

func ctxErr(err error) bool {
	return stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded)
}
