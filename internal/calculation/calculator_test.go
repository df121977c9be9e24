package calculation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise/taxcore/internal/domain"
	"github.com/finwise/taxcore/internal/registry"
)

func seededCalculator(t *testing.T) *Calculator {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.Seed(context.Background()), "seeding built-in law should succeed")
	return NewCalculator(reg)
}

func singleWageReturn(year int, wages, withholding float64) *domain.TaxReturn {
	return &domain.TaxReturn{
		TaxYear:      year,
		FilingStatus: domain.FilingStatusSingle,
		Income: domain.IncomeSources{
			Wages: []domain.WageIncome{
				{Employer: "Acme", Amount: decimal.NewFromFloat(wages), FederalWithholding: decimal.NewFromFloat(withholding)},
			},
		},
	}
}

func TestCompute_SingleFiler2024(t *testing.T) {
	calc := seededCalculator(t)

	result, err := calc.Compute(context.Background(), singleWageReturn(2024, 60000, 5000))
	require.NoError(t, err)

	assert.True(t, result.GrossIncome.Equal(decimal.NewFromInt(60000)), "gross income should be 60000, got %s", result.GrossIncome)
	assert.True(t, result.AdjustedGrossIncome.Equal(decimal.NewFromInt(60000)), "AGI should equal gross with no adjustments")
	assert.True(t, result.TaxableIncome.Equal(decimal.NewFromInt(45400)), "standard deduction 14600 should apply, got %s", result.TaxableIncome)
	assert.True(t, result.FederalTaxBeforeCredits.Equal(decimal.NewFromFloat(5295.50)), "bracket walk should produce 5295.50, got %s", result.FederalTaxBeforeCredits)
	assert.True(t, result.SelfEmploymentTax.IsZero(), "no SE income means no SE tax")
	assert.True(t, result.AmountOwed.Equal(decimal.NewFromFloat(295.50)), "owed should be 295.50, got %s", result.AmountOwed)
	assert.True(t, result.RefundAmount.IsZero(), "no refund when tax exceeds withholding")
	assert.True(t, result.MarginalTaxRate.Equal(decimal.NewFromFloat(0.22)), "45400 falls in the 22%% bracket")
}

func TestCompute_RefundWhenOverWithheld(t *testing.T) {
	calc := seededCalculator(t)

	result, err := calc.Compute(context.Background(), singleWageReturn(2024, 60000, 8000))
	require.NoError(t, err)

	assert.True(t, result.RefundAmount.Equal(decimal.NewFromFloat(2704.50)), "refund should be withholding minus liability, got %s", result.RefundAmount)
	assert.True(t, result.AmountOwed.IsZero(), "owed must be zero when refunded")
}

func TestCompute_RefundAndOwedMutuallyExclusive(t *testing.T) {
	calc := seededCalculator(t)

	withholdings := []float64{0, 1000, 5295.50, 5296, 20000}
	for _, wh := range withholdings {
		result, err := calc.Compute(context.Background(), singleWageReturn(2024, 60000, wh))
		require.NoError(t, err)

		assert.False(t, result.RefundAmount.IsPositive() && result.AmountOwed.IsPositive(),
			"refund and owed must never both be positive (withholding %v)", wh)
		assert.False(t, result.RefundAmount.IsNegative(), "refund must be non-negative")
		assert.False(t, result.AmountOwed.IsNegative(), "owed must be non-negative")
	}
}

func TestCompute_TaxMonotonicInIncome(t *testing.T) {
	calc := seededCalculator(t)

	previous := decimal.NewFromInt(-1)
	for _, income := range []float64{0, 500, 11000, 14600, 25600, 59325, 110000, 250000, 600000, 1200000} {
		result, err := calc.Compute(context.Background(), singleWageReturn(2024, income, 0))
		require.NoError(t, err)

		assert.True(t, result.FederalTaxBeforeCredits.GreaterThanOrEqual(previous),
			"tax must not decrease as income rises (income %v)", income)
		previous = result.FederalTaxBeforeCredits
	}
}

func TestMarginalRateFor_AssignsExactlyOneBracket(t *testing.T) {
	law := registry.TaxLaw2024()
	brackets := law.BracketsFor(domain.FilingStatusSingle)

	cases := []struct {
		income float64
		rate   float64
	}{
		{0, 0.10},
		{10999.99, 0.10},
		{11000, 0.12},
		{44725, 0.22},
		{95375, 0.24},
		{182100, 0.32},
		{231250, 0.35},
		{578125, 0.37},
		{5000000, 0.37},
	}
	for _, tc := range cases {
		rate := marginalRateFor(brackets, decimal.NewFromFloat(tc.income))
		assert.True(t, rate.Equal(decimal.NewFromFloat(tc.rate)),
			"income %v should land in the %v bracket, got %s", tc.income, tc.rate, rate)
	}
}

func TestCompute_SelfEmploymentTax(t *testing.T) {
	calc := seededCalculator(t)

	seReturn := func(netProfit float64) *domain.TaxReturn {
		return &domain.TaxReturn{
			TaxYear:      2024,
			FilingStatus: domain.FilingStatusSingle,
			Income: domain.IncomeSources{
				SelfEmployment: []domain.SelfEmploymentIncome{
					{Description: "consulting", NetProfit: decimal.NewFromFloat(netProfit)},
				},
			},
		}
	}

	atFloor, err := calc.Compute(context.Background(), seReturn(400))
	require.NoError(t, err)
	assert.True(t, atFloor.SelfEmploymentTax.IsZero(), "net profit of exactly 400 owes no SE tax")

	justAbove, err := calc.Compute(context.Background(), seReturn(401))
	require.NoError(t, err)
	assert.True(t, justAbove.SelfEmploymentTax.IsPositive(), "net profit of 401 owes SE tax on 401*0.9235")

	tenThousand, err := calc.Compute(context.Background(), seReturn(10000))
	require.NoError(t, err)
	// base 9235; SS 9235*0.062*2 = 1145.14; Medicare 9235*0.0145*2 = 267.815
	assert.True(t, tenThousand.SelfEmploymentTax.Equal(decimal.NewFromFloat(1412.96)),
		"SE tax on 10000 net profit should round to 1412.96, got %s", tenThousand.SelfEmploymentTax)
}

func TestCompute_ChildCreditPhaseOut(t *testing.T) {
	calc := seededCalculator(t)

	mfjReturn := func(wages float64) *domain.TaxReturn {
		return &domain.TaxReturn{
			TaxYear:      2024,
			FilingStatus: domain.FilingStatusMarriedFilingJointly,
			Income: domain.IncomeSources{
				Wages: []domain.WageIncome{{Employer: "Acme", Amount: decimal.NewFromFloat(wages)}},
			},
			Credits: domain.CreditClaims{ChildTaxCredit: decimal.NewFromInt(2000)},
		}
	}

	atThreshold, err := calc.Compute(context.Background(), mfjReturn(400000))
	require.NoError(t, err)
	assert.True(t, atThreshold.TotalCredits.Equal(decimal.NewFromInt(2000)),
		"AGI at the threshold keeps the full credit, got %s", atThreshold.TotalCredits)

	oneOver, err := calc.Compute(context.Background(), mfjReturn(400001))
	require.NoError(t, err)
	assert.True(t, oneOver.TotalCredits.Equal(decimal.NewFromInt(1950)),
		"one dollar over the threshold loses exactly 50, got %s", oneOver.TotalCredits)

	tenOver, err := calc.Compute(context.Background(), mfjReturn(410000))
	require.NoError(t, err)
	assert.True(t, tenOver.TotalCredits.Equal(decimal.NewFromInt(1500)),
		"10000 over the threshold loses 500, got %s", tenOver.TotalCredits)
}

func TestCompute_CreditsNeverDriveTaxNegative(t *testing.T) {
	calc := seededCalculator(t)

	taxReturn := singleWageReturn(2024, 20000, 0)
	taxReturn.Credits.EarnedIncomeCredit = decimal.NewFromInt(50000)

	result, err := calc.Compute(context.Background(), taxReturn)
	require.NoError(t, err)
	assert.True(t, result.FederalTaxAfterCredits.IsZero(), "credits floor tax after credits at zero")
}

func TestCompute_EffectiveRateZeroAGI(t *testing.T) {
	calc := seededCalculator(t)

	taxReturn := &domain.TaxReturn{
		TaxYear:      2024,
		FilingStatus: domain.FilingStatusSingle,
	}
	result, err := calc.Compute(context.Background(), taxReturn)
	require.NoError(t, err)

	assert.True(t, result.EffectiveTaxRate.IsZero(), "zero AGI must produce a zero effective rate, not a fault")
}

func TestCompute_AdjustmentsReduceAGI(t *testing.T) {
	calc := seededCalculator(t)

	taxReturn := singleWageReturn(2024, 60000, 0)
	taxReturn.Deductions.Adjustments = []domain.Adjustment{
		{Description: "traditional IRA contribution", Amount: decimal.NewFromInt(5000)},
	}

	result, err := calc.Compute(context.Background(), taxReturn)
	require.NoError(t, err)
	assert.True(t, result.AdjustedGrossIncome.Equal(decimal.NewFromInt(55000)), "adjustments subtract from gross income")
}

func TestCompute_ItemizedBeatsStandardWhenLarger(t *testing.T) {
	calc := seededCalculator(t)

	taxReturn := singleWageReturn(2024, 60000, 0)
	taxReturn.Deductions.TotalItemized = decimal.NewFromInt(20000)

	result, err := calc.Compute(context.Background(), taxReturn)
	require.NoError(t, err)
	assert.True(t, result.TaxableIncome.Equal(decimal.NewFromInt(40000)), "larger itemized total should displace the standard deduction")
}

func TestCompute_MissingYearFails(t *testing.T) {
	calc := seededCalculator(t)

	_, err := calc.Compute(context.Background(), singleWageReturn(1999, 60000, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigurationMissing, "unknown year must surface ErrConfigurationMissing")
}

func TestComputeWithConfig_NilLaw(t *testing.T) {
	calc := seededCalculator(t)

	_, err := calc.ComputeWithConfig(singleWageReturn(2024, 60000, 0), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
}

func TestCompareItemizedVsStandard(t *testing.T) {
	calc := seededCalculator(t)
	ctx := context.Background()

	below, err := calc.CompareItemizedVsStandard(ctx, 2024, domain.FilingStatusSingle, decimal.NewFromInt(12000))
	require.NoError(t, err)
	assert.False(t, below.UseItemized, "12000 does not beat the 14600 standard deduction")
	assert.True(t, below.DeductionAmount.Equal(decimal.NewFromInt(14600)), "standard deduction wins")
	assert.True(t, below.Savings.IsZero(), "no savings when standard wins")

	equal, err := calc.CompareItemizedVsStandard(ctx, 2024, domain.FilingStatusSingle, decimal.NewFromInt(14600))
	require.NoError(t, err)
	assert.False(t, equal.UseItemized, "a tie goes to the standard deduction")

	above, err := calc.CompareItemizedVsStandard(ctx, 2024, domain.FilingStatusSingle, decimal.NewFromInt(16000))
	require.NoError(t, err)
	assert.True(t, above.UseItemized, "16000 beats the standard deduction")
	assert.True(t, above.Savings.Equal(decimal.NewFromInt(1400)), "savings is the itemized excess, got %s", above.Savings)
}

func TestStandardDeductionFor(t *testing.T) {
	calc := seededCalculator(t)

	cases := []struct {
		status   domain.FilingStatus
		expected int64
	}{
		{domain.FilingStatusSingle, 14600},
		{domain.FilingStatusMarriedFilingJointly, 29200},
		{domain.FilingStatusMarriedFilingSeparately, 14600},
		{domain.FilingStatusHeadOfHousehold, 21900},
		{domain.FilingStatusQualifyingSurvivingSpouse, 29200},
	}
	for _, tc := range cases {
		deduction, err := calc.StandardDeductionFor(context.Background(), 2024, tc.status)
		require.NoError(t, err)
		assert.True(t, deduction.Equal(decimal.NewFromInt(tc.expected)),
			"2024 standard deduction for %s should be %d, got %s", tc.status, tc.expected, deduction)
	}
}

func TestTaxAcrossBrackets_TopBracketUnbounded(t *testing.T) {
	law := registry.TaxLaw2024()
	brackets := law.BracketsFor(domain.FilingStatusSingle)

	// Income far past the nominal top bound still accrues at 37%.
	income := decimal.NewFromInt(2000000000)
	tax := taxAcrossBrackets(brackets, income)
	assert.True(t, tax.IsPositive(), "enormous income is still taxed")

	more := taxAcrossBrackets(brackets, income.Add(decimal.NewFromInt(100)))
	assert.True(t, more.Sub(tax).Equal(decimal.NewFromInt(37)), "each extra 100 above the top bound adds 37 of tax")
}
