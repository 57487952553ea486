package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/salarykit/ctcgo/internal/calculation"
	"github.com/salarykit/ctcgo/internal/domain"
	"github.com/salarykit/ctcgo/internal/output"
	"github.com/salarykit/ctcgo/internal/transform"
	"github.com/shopspring/decimal"
)

// CompareEngine orchestrates salary comparisons
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(calcEngine.Config),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(calcEngine.Config),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseName string   // Display name of the base input
	Variants []string // Preset names or transform specs ("set_percent:component=basic,value=50")
}

// Compare calculates the base input and one variant per option entry
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base domain.CtcInput,
	options CompareOptions,
) (*ComparisonSet, error) {
	baseName := options.BaseName
	if baseName == "" {
		baseName = "base"
	}

	baseResult, err := ce.run(baseName, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base: %w", err)
	}

	alternatives := []ComparisonResult{}
	for _, variant := range options.Variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		transforms, description, err := ce.resolve(variant)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(&base, transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", variant, err)
		}

		altResult, err := ce.run(variant, *modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s: %w", variant, err)
		}
		altResult.Description = description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	return ce.buildSet(baseName, baseResult, alternatives), nil
}

// CompareAmounts calculates the base structure at each of the given CTC
// amounts, the quick comparison across salary levels.
func (ce *CompareEngine) CompareAmounts(
	ctx context.Context,
	base domain.CtcInput,
	amounts []decimal.Decimal,
) (*ComparisonSet, error) {
	baseName := output.FormatRupees(base.CTCAmount)
	baseResult, err := ce.run(baseName, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base: %w", err)
	}

	alternatives := []ComparisonResult{}
	for _, amount := range amounts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		set := &transform.SetCTC{Amount: amount}
		modified, err := transform.ApplyTransforms(&base, []transform.InputTransform{set})
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", set.Description(), err)
		}

		name := output.FormatRupees(amount)
		altResult, err := ce.run(name, *modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s: %w", name, err)
		}
		altResult.Description = set.Description()
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	return ce.buildSet(baseName, baseResult, alternatives), nil
}

func (ce *CompareEngine) run(name string, in domain.CtcInput) (ComparisonResult, error) {
	res, err := ce.CalcEngine.Run(in)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(name, res), nil
}

// resolve maps a variant to transforms: a preset name, or a transform spec
func (ce *CompareEngine) resolve(variant string) ([]transform.InputTransform, string, error) {
	if t, ok := ce.TemplateRegistry.Get(variant); ok {
		return t.Transforms, t.Description, nil
	}

	if strings.Contains(variant, ":") || ce.isTransformName(variant) {
		tr, err := ce.TransformRegistry.ParseTransformSpec(variant)
		if err != nil {
			return nil, "", err
		}
		return []transform.InputTransform{tr}, tr.Description(), nil
	}

	return nil, "", fmt.Errorf("preset %s not found", variant)
}

func (ce *CompareEngine) isTransformName(name string) bool {
	for _, n := range ce.TransformRegistry.List() {
		if n == name {
			return true
		}
	}
	return false
}

func (ce *CompareEngine) buildSet(baseName string, base ComparisonResult, alternatives []ComparisonResult) *ComparisonSet {
	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &base,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}
