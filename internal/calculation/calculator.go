// Package calculation derives a complete federal tax calculation from a tax
// return and the law configuration for its year. The pipeline is stateless
// and deterministic: any number of returns may be computed in parallel.
package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finwise/taxcore/internal/domain"
	"github.com/finwise/taxcore/internal/registry"
	"github.com/finwise/taxcore/pkg/logging"
)

// seNetEarningsFactor converts self-employment net profit into the base the
// SE tax applies to (92.35% of net profit).
var seNetEarningsFactor = decimal.NewFromFloat(0.9235)

// seMinimumNetProfit is the floor below which no SE tax is owed.
var seMinimumNetProfit = decimal.NewFromInt(400)

// phaseOutStep and phaseOutUnit implement the child credit phase-out: $50 of
// credit lost per $1,000 (or fraction) of AGI above the threshold.
var (
	phaseOutStep = decimal.NewFromInt(50)
	phaseOutUnit = decimal.NewFromInt(1000)
)

// Calculator computes federal tax liability. It holds no mutable state
// besides the registry reference.
type Calculator struct {
	registry *registry.Registry
	logger   logging.Logger
}

// NewCalculator creates a calculator backed by the given law registry.
func NewCalculator(reg *registry.Registry) *Calculator {
	return &Calculator{registry: reg, logger: logging.NopLogger{}}
}

// SetLogger replaces the calculator's logger. Nil restores the no-op default.
func (c *Calculator) SetLogger(logger logging.Logger) {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	c.logger = logger
}

// Compute resolves the law configuration for the return's year through the
// registry and runs the pipeline. Fails with domain.ErrConfigurationMissing
// when no configuration exists for the year.
func (c *Calculator) Compute(ctx context.Context, taxReturn *domain.TaxReturn) (*domain.TaxCalculation, error) {
	law, err := c.registry.Get(ctx, taxReturn.TaxYear)
	if err != nil {
		return nil, err
	}
	return c.ComputeWithConfig(taxReturn, law)
}

// ComputeWithConfig runs the full pipeline against an explicit law
// configuration. The return and configuration are only read.
func (c *Calculator) ComputeWithConfig(taxReturn *domain.TaxReturn, law *domain.TaxLawConfiguration) (*domain.TaxCalculation, error) {
	if taxReturn == nil {
		return nil, fmt.Errorf("nil tax return")
	}
	if law == nil {
		return nil, fmt.Errorf("tax year %d: %w", taxReturn.TaxYear, domain.ErrConfigurationMissing)
	}
	status := taxReturn.FilingStatus
	if !status.Valid() {
		return nil, fmt.Errorf("invalid filing status %q", status)
	}
	brackets := law.BracketsFor(status)
	if len(brackets) == 0 {
		return nil, fmt.Errorf("no brackets for filing status %s in year %d: %w", status, law.Year, domain.ErrConfigurationMissing)
	}

	income := taxReturn.Income
	grossIncome := income.TotalWages().
		Add(income.SelfEmploymentNetProfit()).
		Add(income.TaxableInvestment()).
		Add(income.TaxableRetirement()).
		Add(income.TaxableOther())

	agi := grossIncome.Sub(taxReturn.Deductions.TotalAdjustments())
	if agi.LessThan(decimal.Zero) {
		agi = decimal.Zero
	}

	standardDeduction := law.StandardDeductionFor(status)
	deductionAmount := decimal.Max(standardDeduction, taxReturn.Deductions.TotalItemized)

	taxableIncome := agi.Sub(deductionAmount)
	if taxableIncome.LessThan(decimal.Zero) {
		taxableIncome = decimal.Zero
	}

	taxBeforeCredits := taxAcrossBrackets(brackets, taxableIncome)
	marginalRate := marginalRateFor(brackets, taxableIncome)

	totalCredits := c.childCreditAfterPhaseOut(taxReturn.Credits.ChildTaxCredit, agi, law.ChildCreditThresholdFor(status)).
		Add(taxReturn.Credits.EarnedIncomeCredit).
		Add(taxReturn.Credits.EducationCredits).
		Add(taxReturn.Credits.RetirementSavingsCredit).
		Add(taxReturn.Credits.TotalOther())

	taxAfterCredits := taxBeforeCredits.Sub(totalCredits)
	if taxAfterCredits.LessThan(decimal.Zero) {
		taxAfterCredits = decimal.Zero
	}

	selfEmploymentTax := c.selfEmploymentTax(income.SelfEmploymentNetProfit(), law)
	totalLiability := taxAfterCredits.Add(selfEmploymentTax)

	withholding := income.TotalWithholding()
	// Estimated quarterly payments are not yet collected upstream; the field
	// stays zero until that feature exists.
	estimatedPayments := decimal.Zero

	paid := withholding.Add(estimatedPayments)
	refund := decimal.Zero
	owed := decimal.Zero
	if paid.GreaterThan(totalLiability) {
		refund = paid.Sub(totalLiability)
	} else {
		owed = totalLiability.Sub(paid)
	}

	effectiveRate := decimal.Zero
	if agi.GreaterThan(decimal.Zero) {
		effectiveRate = totalLiability.Div(agi)
	}

	c.logger.Debugf("computed year %d return: taxable income %s, liability %s",
		taxReturn.TaxYear, taxableIncome.StringFixed(2), totalLiability.StringFixed(2))

	return &domain.TaxCalculation{
		GrossIncome:             grossIncome.Round(2),
		AdjustedGrossIncome:     agi.Round(2),
		TaxableIncome:           taxableIncome.Round(2),
		FederalTaxBeforeCredits: taxBeforeCredits.Round(2),
		TotalCredits:            totalCredits.Round(2),
		FederalTaxAfterCredits:  taxAfterCredits.Round(2),
		SelfEmploymentTax:       selfEmploymentTax.Round(2),
		TotalTaxLiability:       totalLiability.Round(2),
		TotalWithholding:        withholding.Round(2),
		EstimatedPayments:       estimatedPayments.Round(2),
		RefundAmount:            refund.Round(2),
		AmountOwed:              owed.Round(2),
		EffectiveTaxRate:        effectiveRate.Round(4),
		MarginalTaxRate:         marginalRate.Round(4),
	}, nil
}

// taxAcrossBrackets walks the ordered bracket schedule, taxing each slice of
// income at its bracket rate. The final bracket absorbs all remaining income
// regardless of its nominal Max.
func taxAcrossBrackets(brackets []domain.TaxBracket, taxableIncome decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	remaining := taxableIncome
	for i, bracket := range brackets {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		inBracket := remaining
		if i < len(brackets)-1 {
			width := bracket.Max.Sub(bracket.Min)
			inBracket = decimal.Min(remaining, width)
		}
		tax = tax.Add(inBracket.Mul(bracket.Rate))
		remaining = remaining.Sub(inBracket)
	}
	return tax
}

// marginalRateFor returns the rate of the bracket whose [Min, Max) range
// contains the taxable income; income past every bound takes the top rate.
func marginalRateFor(brackets []domain.TaxBracket, taxableIncome decimal.Decimal) decimal.Decimal {
	if len(brackets) == 0 {
		return decimal.Zero
	}
	for i, bracket := range brackets {
		if i == len(brackets)-1 {
			break
		}
		if taxableIncome.GreaterThanOrEqual(bracket.Min) && taxableIncome.LessThan(bracket.Max) {
			return bracket.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}

// childCreditAfterPhaseOut reduces the claimed base amount by $50 for each
// $1,000 (or part thereof) of AGI above the filing status threshold.
func (c *Calculator) childCreditAfterPhaseOut(baseAmount, agi, threshold decimal.Decimal) decimal.Decimal {
	if baseAmount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if threshold.IsZero() || agi.LessThanOrEqual(threshold) {
		return baseAmount
	}
	excess := agi.Sub(threshold)
	steps := excess.Div(phaseOutUnit).Ceil()
	credit := baseAmount.Sub(steps.Mul(phaseOutStep))
	if credit.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return credit
}

// selfEmploymentTax computes both halves of Social Security and Medicare on
// 92.35% of net profit. Net profit at or below $400 owes nothing.
//
// The Additional Medicare surtax on high earners is intentionally not
// computed here; the law configuration carries no surtax parameters.
func (c *Calculator) selfEmploymentTax(netProfit decimal.Decimal, law *domain.TaxLawConfiguration) decimal.Decimal {
	if netProfit.LessThanOrEqual(seMinimumNetProfit) {
		return decimal.Zero
	}
	base := netProfit.Mul(seNetEarningsFactor)
	two := decimal.NewFromInt(2)
	socialSecurity := decimal.Min(base, law.SocialSecurityWageBase).Mul(law.SocialSecurityRate).Mul(two)
	medicare := base.Mul(law.MedicareRate).Mul(two)
	return socialSecurity.Add(medicare)
}

// StandardDeductionFor returns the standard deduction for a year and filing
// status, resolved through the registry.
func (c *Calculator) StandardDeductionFor(ctx context.Context, year int, status domain.FilingStatus) (decimal.Decimal, error) {
	law, err := c.registry.Get(ctx, year)
	if err != nil {
		return decimal.Zero, err
	}
	return law.StandardDeductionFor(status), nil
}

// CompareItemizedVsStandard reports whether an itemized total beats the
// standard deduction for a year and status, the deduction that results, and
// the savings itemizing buys over the standard deduction.
func (c *Calculator) CompareItemizedVsStandard(ctx context.Context, year int, status domain.FilingStatus, itemizedTotal decimal.Decimal) (domain.DeductionComparison, error) {
	standard, err := c.StandardDeductionFor(ctx, year, status)
	if err != nil {
		return domain.DeductionComparison{}, err
	}
	useItemized := itemizedTotal.GreaterThan(standard)
	comparison := domain.DeductionComparison{
		UseItemized:     useItemized,
		DeductionAmount: decimal.Max(itemizedTotal, standard),
		Savings:         decimal.Zero,
	}
	if useItemized {
		comparison.Savings = itemizedTotal.Sub(standard)
	}
	return comparison, nil
}
