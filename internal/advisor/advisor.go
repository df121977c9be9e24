// Package advisor analyzes a tax return against its calculation and produces
// ranked deduction recommendations plus a standard-versus-itemized verdict.
package advisor

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finwise/taxcore/internal/calculation"
	"github.com/finwise/taxcore/internal/domain"
	"github.com/finwise/taxcore/pkg/logging"
)

// Advisor produces deduction recommendations. Stateless apart from its
// calculator reference; safe for concurrent use.
type Advisor struct {
	calculator *calculation.Calculator
	logger     logging.Logger
}

// New creates an advisor on top of a calculator.
func New(calculator *calculation.Calculator) *Advisor {
	return &Advisor{calculator: calculator, logger: logging.NopLogger{}}
}

// SetLogger replaces the advisor's logger. Nil restores the no-op default.
func (a *Advisor) SetLogger(logger logging.Logger) {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	a.logger = logger
}

// Analyze computes the return's current position, evaluates every
// recommendation rule against it, and returns the recommendations sorted by
// descending potential savings. The sort is stable: rules that tie keep
// their evaluation order, which is part of the contract consumers rely on.
func (a *Advisor) Analyze(ctx context.Context, taxReturn *domain.TaxReturn) (*domain.DeductionAnalysis, error) {
	calc, err := a.calculator.Compute(ctx, taxReturn)
	if err != nil {
		return nil, fmt.Errorf("compute baseline for analysis: %w", err)
	}

	recommendations := evaluateRules(taxReturn, calc)
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].PotentialSavings.GreaterThan(recommendations[j].PotentialSavings)
	})

	aggregate := decimal.Zero
	for _, rec := range recommendations {
		aggregate = aggregate.Add(rec.PotentialSavings)
	}

	comparison, err := a.calculator.CompareItemizedVsStandard(ctx, taxReturn.TaxYear, taxReturn.FilingStatus, taxReturn.Deductions.TotalItemized)
	if err != nil {
		return nil, err
	}

	a.logger.Debugf("analysis for return %s produced %d recommendations, aggregate savings %s",
		taxReturn.ID, len(recommendations), aggregate.StringFixed(2))

	return &domain.DeductionAnalysis{
		Recommendations:    recommendations,
		StandardVsItemized: comparison,
		PotentialSavings:   aggregate.Round(2),
	}, nil
}

// AnalyzeDeductionStrategy recomputes the return with its itemized total
// increased by the proposed deductions and reports the liability delta and an
// itemize-or-standard verdict.
func (a *Advisor) AnalyzeDeductionStrategy(ctx context.Context, taxReturn *domain.TaxReturn, proposed []domain.ItemizedDeduction) (*domain.StrategyAnalysis, error) {
	baseline, err := a.calculator.Compute(ctx, taxReturn)
	if err != nil {
		return nil, fmt.Errorf("compute baseline for strategy: %w", err)
	}

	proposedTotal := decimal.Zero
	for _, item := range proposed {
		proposedTotal = proposedTotal.Add(item.Amount)
	}

	hypothetical := *taxReturn
	hypothetical.Deductions.Itemized = append([]domain.ItemizedDeduction{}, taxReturn.Deductions.Itemized...)
	hypothetical.Deductions.Itemized = append(hypothetical.Deductions.Itemized, proposed...)
	hypothetical.Deductions.TotalItemized = taxReturn.Deductions.TotalItemized.Add(proposedTotal)

	revised, err := a.calculator.Compute(ctx, &hypothetical)
	if err != nil {
		return nil, fmt.Errorf("compute revised strategy: %w", err)
	}

	standard, err := a.calculator.StandardDeductionFor(ctx, taxReturn.TaxYear, taxReturn.FilingStatus)
	if err != nil {
		return nil, err
	}

	verdict := domain.StrategyStandard
	if hypothetical.Deductions.TotalItemized.GreaterThan(standard) {
		verdict = domain.StrategyItemize
	}

	return &domain.StrategyAnalysis{
		CurrentTax:     baseline.TotalTaxLiability,
		NewTax:         revised.TotalTaxLiability,
		Savings:        baseline.TotalTaxLiability.Sub(revised.TotalTaxLiability).Round(2),
		Recommendation: verdict,
	}, nil
}
