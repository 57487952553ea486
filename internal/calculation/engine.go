package calculation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/salarykit/ctcgo/internal/domain"
)

// ErrValidationFailed is returned by Run when the input breaks a validation
// rule. The wrapped *ValidationError carries the messages.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError carries the validator's messages for a rejected input
type ValidationError struct {
	Errors domain.ValidationErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(e.Errors, "; "))
}

// Unwrap lets errors.Is match ErrValidationFailed
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// Engine validates and calculates CTC breakups against one EngineConfig
type Engine struct {
	Config domain.EngineConfig
	Logger Logger
	// Strict turns typical-range warnings into validation failures
	Strict bool
}

// NewEngine creates an engine with the given configuration and a no-op logger
func NewEngine(cfg domain.EngineConfig) *Engine {
	return &Engine{
		Config: cfg,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger; nil resets to a no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Result is one successful calculation
type Result struct {
	Input     domain.CtcInput
	Breakdown *domain.Breakdown
	Summary   domain.Summary
	Warnings  []string
}

// Report packages the result for the output formatters
func (r *Result) Report(name string, generatedAt time.Time) *domain.Report {
	return &domain.Report{
		Name:        name,
		Input:       r.Input,
		Breakdown:   r.Breakdown,
		Summary:     r.Summary,
		Warnings:    r.Warnings,
		GeneratedAt: generatedAt,
	}
}

// Validate runs the validation rules against the input as it will be
// calculated, plus the typical ranges when the engine is strict.
func (e *Engine) Validate(in domain.CtcInput) domain.ValidationErrors {
	errs := ValidateInput(e.Config, in)
	if e.Strict {
		errs = append(errs, CheckRanges(e.Config, in)...)
	}
	return errs
}

// Run validates the input and, when valid, calculates its breakdown and summary
func (e *Engine) Run(in domain.CtcInput) (*Result, error) {
	in = in.DeepCopy()
	e.Logger.Debugf("calculating breakup: ctc=%s city=%s overrides=%t", in.CTCAmount, in.CityType, in.HasOverrides())

	if errs := e.Validate(in); !errs.Valid() {
		e.Logger.Infof("input rejected with %d validation error(s)", len(errs))
		return nil, &ValidationError{Errors: errs}
	}

	b := Calculate(e.Config, in)
	if b.IsClamped() {
		e.Logger.Warnf("fixed components exceed CTC %s by %s; special allowance clamped to zero",
			in.CTCAmount, b.Unallocated.Abs())
	}

	res := &Result{
		Input:     in,
		Breakdown: b,
		Summary:   e.Analyze(in, b),
	}
	if !e.Strict {
		res.Warnings = CheckRanges(e.Config, in)
		for _, w := range res.Warnings {
			e.Logger.Debugf("range warning: %s", w)
		}
	}
	return res, nil
}

// Analyze derives key metrics and insights using the engine's configuration
func (e *Engine) Analyze(in domain.CtcInput, b *domain.Breakdown) domain.Summary {
	return Analyze(e.Config, in, b)
}

// BatchResult is the outcome of one request in a batch
type BatchResult struct {
	Name   string
	Result *Result
	Err    error
}

// RunBatch runs every request in order. A failing request records its error
// and the batch continues; only context cancellation stops it early.
func (e *Engine) RunBatch(ctx context.Context, requests []domain.SalaryRequest) ([]BatchResult, error) {
	results := make([]BatchResult, 0, len(requests))
	for i, req := range requests {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		name := req.Name
		if name == "" {
			name = fmt.Sprintf("request %d", i+1)
		}

		in, err := req.ToInput(e.Config)
		if err != nil {
			e.Logger.Errorf("%v", err)
			results = append(results, BatchResult{Name: name, Err: err})
			continue
		}

		res, err := e.Run(in)
		if err != nil {
			results = append(results, BatchResult{Name: name, Err: err})
			continue
		}
		results = append(results, BatchResult{Name: name, Result: res})
	}
	e.Logger.Infof("batch finished: %d request(s)", len(results))
	return results, nil
}
