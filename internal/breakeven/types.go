package breakeven

import (
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to solve for
type OptimizationTarget string

const (
	// OptimizeCTC finds the CTC whose approximate take-home matches a target
	OptimizeCTC OptimizationTarget = "ctc"
	// OptimizeBasicPercent finds the highest Basic % whose fixed components
	// still fit inside the CTC
	OptimizeBasicPercent OptimizationTarget = "basic_percent"
)

// Constraints define bounds for the solved parameter
type Constraints struct {
	// Annual take-home target for OptimizeCTC
	TargetTakeHome *decimal.Decimal `json:"target_take_home,omitempty"`

	// CTC search bounds; default to the configured validation limits
	MinCTC *decimal.Decimal `json:"min_ctc,omitempty"`
	MaxCTC *decimal.Decimal `json:"max_ctc,omitempty"`

	// Basic % search bounds; default to the typical Basic range minimum and 100
	MinBasicPercent *decimal.Decimal `json:"min_basic_percent,omitempty"`
	MaxBasicPercent *decimal.Decimal `json:"max_basic_percent,omitempty"`
}

// OptimizationRequest defines the parameters for a solver run
type OptimizationRequest struct {
	Base          domain.CtcInput
	Target        OptimizationTarget
	Constraints   Constraints
	MaxIterations int             // Maximum solver iterations
	Tolerance     decimal.Decimal // Take-home tolerance in rupees
}

// OptimizationResult contains the results of a solver run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"-"`
	Target          OptimizationTarget  `json:"target"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info,omitempty"`

	// Solved parameters
	OptimalCTC          *decimal.Decimal `json:"optimal_ctc,omitempty"`
	OptimalBasicPercent *decimal.Decimal `json:"optimal_basic_percent,omitempty"`

	// Results at the solved parameters
	CTCAmount        decimal.Decimal `json:"ctc_amount"`
	CityType         string          `json:"city_type"`
	TakeHome         decimal.Decimal `json:"take_home"`
	MonthlyTakeHome  decimal.Decimal `json:"monthly_take_home"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`

	// Comparison to base
	BaseTakeHome         decimal.Decimal `json:"base_take_home"`
	TakeHomeDiffFromBase decimal.Decimal `json:"take_home_diff_from_base"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance in rupees
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // ₹1 tolerance
		MaxIterations: 100,
	}
}

// Validate checks that the constraints fit the target
func (c *Constraints) Validate(target OptimizationTarget) error {
	if c.MinCTC != nil && c.MaxCTC != nil && c.MinCTC.GreaterThan(*c.MaxCTC) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_ctc cannot be greater than max_ctc",
		}
	}

	if c.MinBasicPercent != nil && c.MaxBasicPercent != nil && c.MinBasicPercent.GreaterThan(*c.MaxBasicPercent) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_basic_percent cannot be greater than max_basic_percent",
		}
	}

	if target == OptimizeCTC {
		if c.TargetTakeHome == nil {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "target take-home is required",
			}
		}
		if !c.TargetTakeHome.IsPositive() {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "target take-home must be positive",
			}
		}
	}

	return nil
}

// BreakEvenError represents errors from the solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
