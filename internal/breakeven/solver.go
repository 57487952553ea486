package breakeven

import (
	"context"
	"fmt"

	"github.com/salarykit/ctcgo/internal/calculation"
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/salarykit/ctcgo/internal/output"
	"github.com/shopspring/decimal"
)

var (
	two           = decimal.NewFromInt(2)
	paisa         = decimal.RequireFromString("0.01")
	hundred       = decimal.NewFromInt(100)
	basicFloorPct = decimal.RequireFromString("0.01")
)

// Solver inverts the breakup calculation with binary search
type Solver struct {
	CalcEngine *calculation.Engine
	Options    SolverOptions
}

// NewSolver creates a new solver
func NewSolver(calcEngine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.Engine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize solves for the requested target
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Constraints.Validate(req.Target); err != nil {
		return nil, err
	}

	defaults := DefaultSolverOptions()
	if req.MaxIterations <= 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = defaults.MaxIterations
	}
	if !req.Tolerance.IsPositive() {
		req.Tolerance = s.Options.Tolerance
	}
	if !req.Tolerance.IsPositive() {
		req.Tolerance = defaults.Tolerance
	}

	switch req.Target {
	case OptimizeCTC:
		return s.optimizeCTC(ctx, req)
	case OptimizeBasicPercent:
		return s.optimizeBasicPercent(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// optimizeCTC finds the CTC that yields the target take-home. Take-home
// grows with CTC, so the search halves [min, max] until it lands within
// tolerance or the interval shrinks below one paisa.
func (s *Solver) optimizeCTC(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	cfg := s.CalcEngine.Config
	minCTC, maxCTC := cfg.Limits.MinCTC, cfg.Limits.MaxCTC
	if req.Constraints.MinCTC != nil {
		minCTC = *req.Constraints.MinCTC
	}
	if req.Constraints.MaxCTC != nil {
		maxCTC = *req.Constraints.MaxCTC
	}
	target := *req.Constraints.TargetTakeHome

	// The base only feeds the comparison, so a base without a usable CTC
	// (a pure target search) is allowed.
	base, _ := s.CalcEngine.Run(req.Base)

	lowest, err := s.takeHomeAt(req.Base, minCTC)
	if err != nil {
		return nil, err
	}
	highest, err := s.takeHomeAt(req.Base, maxCTC)
	if err != nil {
		return nil, err
	}
	if target.LessThan(lowest) || target.GreaterThan(highest) {
		return nil, &BreakEvenError{
			Operation: "optimize_ctc",
			Message: fmt.Sprintf("target take-home %s is outside the reachable range %s to %s",
				output.FormatRupees(target), output.FormatRupees(lowest), output.FormatRupees(highest)),
		}
	}

	lo, hi := minCTC, maxCTC
	var last *OptimizationResult
	for iterations := 1; iterations <= req.MaxIterations; iterations++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		testCTC := lo.Add(hi).Div(two).RoundBank(2)
		in := req.Base.DeepCopy()
		in.CTCAmount = testCTC

		res, err := s.run("optimize_ctc", in)
		if err != nil {
			return nil, err
		}

		last = s.buildResult(req, res, base, iterations)
		last.OptimalCTC = &testCTC

		diff := last.TakeHome.Sub(target)
		if diff.Abs().LessThanOrEqual(req.Tolerance) {
			last.Success = true
			last.ConvergenceInfo = fmt.Sprintf("Converged to target take-home within ₹%s", req.Tolerance.String())
			return last, nil
		}

		if diff.IsNegative() {
			lo = testCTC
		} else {
			hi = testCTC
		}

		if hi.Sub(lo).LessThanOrEqual(paisa) {
			last.Success = true
			last.ConvergenceInfo = "Binary search converged"
			return last, nil
		}
	}

	last.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return last, nil
}

// optimizeBasicPercent finds the highest Basic % for which the fixed
// components (Basic, HRA, PF, Gratuity, Bonus, LTA) do not exceed the CTC.
// The answer is truncated to two decimals so it always stays feasible.
func (s *Solver) optimizeBasicPercent(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	cfg := s.CalcEngine.Config
	lo, hi := cfg.Ranges.Basic.Min, hundred
	if req.Constraints.MinBasicPercent != nil {
		lo = *req.Constraints.MinBasicPercent
	}
	if req.Constraints.MaxBasicPercent != nil {
		hi = *req.Constraints.MaxBasicPercent
	}
	if lo.LessThan(basicFloorPct) {
		lo = basicFloorPct
	}

	base, err := s.run("optimize_basic_percent", req.Base)
	if err != nil {
		return nil, err
	}

	fits := func(pct decimal.Decimal) (*calculation.Result, bool) {
		in := req.Base.DeepCopy()
		in.BasicPercent = &pct
		res, err := s.CalcEngine.Run(in)
		if err != nil {
			return nil, false
		}
		return res, !res.Breakdown.IsClamped()
	}

	if _, ok := fits(lo); !ok {
		return nil, &BreakEvenError{
			Operation: "optimize_basic_percent",
			Message:   fmt.Sprintf("fixed components exceed CTC even at Basic %s%%", lo.String()),
		}
	}

	upper := hi
	iterations := 0
	if res, ok := fits(hi); ok {
		result := s.buildResult(req, res, base, 1)
		result.OptimalBasicPercent = &hi
		result.Success = true
		result.ConvergenceInfo = "Upper bound fits within CTC"
		return result, nil
	}

	for iterations < req.MaxIterations && hi.Sub(lo).GreaterThan(paisa) {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		if _, ok := fits(mid); ok {
			lo = mid
		} else {
			hi = mid
		}
	}

	// Bisection stops within a hundredth of the boundary, so lo truncated
	// can sit one step below the highest two-decimal value that still fits.
	optimal := lo.Truncate(2)
	res, ok := fits(optimal)
	if !ok {
		return nil, &BreakEvenError{
			Operation: "optimize_basic_percent",
			Message:   fmt.Sprintf("Basic %s%% unexpectedly exceeds CTC", optimal.String()),
		}
	}
	for next := optimal.Add(paisa); next.LessThan(upper); next = next.Add(paisa) {
		nextRes, ok := fits(next)
		if !ok {
			break
		}
		optimal, res = next, nextRes
	}

	result := s.buildResult(req, res, base, iterations)
	result.OptimalBasicPercent = &optimal
	result.Success = hi.Sub(lo).LessThanOrEqual(paisa)
	if result.Success {
		result.ConvergenceInfo = "Binary search converged"
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return result, nil
}

func (s *Solver) run(op string, in domain.CtcInput) (*calculation.Result, error) {
	res, err := s.CalcEngine.Run(in)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: op,
			Message:   "failed to calculate breakup",
			Cause:     err,
		}
	}
	return res, nil
}

func (s *Solver) takeHomeAt(base domain.CtcInput, ctc decimal.Decimal) (decimal.Decimal, error) {
	in := base.DeepCopy()
	in.CTCAmount = ctc
	res, err := s.run("optimize_ctc", in)
	if err != nil {
		return decimal.Zero, err
	}
	return calculation.TakeHome(res.Breakdown), nil
}

func (s *Solver) buildResult(req OptimizationRequest, res, base *calculation.Result, iterations int) *OptimizationResult {
	takeHome := calculation.TakeHome(res.Breakdown)
	baseTakeHome := takeHome
	if base != nil {
		baseTakeHome = calculation.TakeHome(base.Breakdown)
	}
	return &OptimizationResult{
		Request:              req,
		Target:               req.Target,
		Iterations:           iterations,
		CTCAmount:            res.Input.CTCAmount,
		CityType:             res.Input.CityType.String(),
		TakeHome:             takeHome,
		MonthlyTakeHome:      calculation.Monthly(takeHome).RoundBank(2),
		SpecialAllowance:     res.Breakdown.Amount(domain.ComponentSpecialAllowance),
		BaseTakeHome:         baseTakeHome,
		TakeHomeDiffFromBase: takeHome.Sub(baseTakeHome),
	}
}
