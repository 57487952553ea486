package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/salarykit/ctcgo/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a solver result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("CTC SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	sb.WriteString(fmt.Sprintf("Solve For:    %s\n", tf.targetLabel(result.Target)))
	sb.WriteString(fmt.Sprintf("City Type:    %s\n", result.CityType))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLUTION\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	if result.OptimalCTC != nil {
		sb.WriteString(fmt.Sprintf("Required CTC:        ₹%s (%s LPA)\n",
			output.FormatAmount(*result.OptimalCTC), result.OptimalCTC.Div(decimal.NewFromInt(100000)).StringFixedBank(2)))
	}
	if result.OptimalBasicPercent != nil {
		sb.WriteString(fmt.Sprintf("Max Basic Salary:    %s%% of CTC\n", result.OptimalBasicPercent.StringFixed(2)))
	}
	sb.WriteString(fmt.Sprintf("CTC:                 ₹%s\n", output.FormatAmount(result.CTCAmount)))
	sb.WriteString(fmt.Sprintf("Approx. Take Home:   ₹%s (₹%s/month)\n",
		output.FormatAmount(result.TakeHome), output.FormatAmount(result.MonthlyTakeHome)))
	sb.WriteString(fmt.Sprintf("Special Allowance:   ₹%s\n", output.FormatAmount(result.SpecialAllowance)))
	sb.WriteString("\n")

	if target := result.Request.Constraints.TargetTakeHome; target != nil && result.Target == OptimizeCTC {
		diff := result.TakeHome.Sub(*target)
		sb.WriteString("TARGET TAKE HOME MATCH\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("Target:     ₹%s\n", target.StringFixedBank(2)))
		sb.WriteString(fmt.Sprintf("Achieved:   ₹%s\n", result.TakeHome.StringFixedBank(2)))
		sb.WriteString(fmt.Sprintf("Difference: %s₹%s\n", tf.deltaSymbol(diff), diff.Abs().StringFixedBank(2)))
		sb.WriteString("\n")
	} else if !result.TakeHomeDiffFromBase.IsZero() {
		sb.WriteString("COMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("Take Home Change: %s₹%s per year\n",
			tf.deltaSymbol(result.TakeHomeDiffFromBase), output.FormatAmount(result.TakeHomeDiffFromBase.Abs())))
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) targetLabel(target OptimizationTarget) string {
	switch target {
	case OptimizeCTC:
		return "CTC for target take-home"
	case OptimizeBasicPercent:
		return "highest Basic % within CTC"
	default:
		return string(target)
	}
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return "-"
	}
	return "+"
}
