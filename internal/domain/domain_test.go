package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilingStatus(t *testing.T) {
	for _, status := range FilingStatuses {
		parsed, err := ParseFilingStatus(string(status))
		require.NoError(t, err, "canonical spelling %q should parse", status)
		assert.Equal(t, status, parsed)
	}

	_, err := ParseFilingStatus("married")
	require.Error(t, err, "non-canonical spellings are rejected")

	assert.False(t, FilingStatus("").Valid())
	assert.True(t, FilingStatusHeadOfHousehold.Valid())
}

func TestIncomeSources_Totals(t *testing.T) {
	income := IncomeSources{
		Wages: []WageIncome{
			{Employer: "Acme", Amount: decimal.NewFromInt(50000), FederalWithholding: decimal.NewFromInt(4000)},
			{Employer: "Globex", Amount: decimal.NewFromInt(10000), FederalWithholding: decimal.NewFromInt(800)},
		},
		SelfEmployment: []SelfEmploymentIncome{
			{Description: "consulting", NetProfit: decimal.NewFromInt(12000)},
			{Description: "side business", NetProfit: decimal.NewFromInt(-2000)},
		},
		Investment: []InvestmentIncome{
			{Description: "dividends", Amount: decimal.NewFromInt(1500), Taxable: true},
			{Description: "municipal bond interest", Amount: decimal.NewFromInt(900), Taxable: false},
		},
		Retirement: []RetirementIncome{
			{Description: "401k distribution", Amount: decimal.NewFromInt(5000), Taxable: true, FederalWithholding: decimal.NewFromInt(500)},
			{Description: "roth distribution", Amount: decimal.NewFromInt(3000), Taxable: false},
		},
		Other: []OtherIncome{
			{Description: "jury duty", Amount: decimal.NewFromInt(200), Taxable: true},
			{Description: "gift", Amount: decimal.NewFromInt(1000), Taxable: false},
		},
	}

	assert.True(t, income.TotalWages().Equal(decimal.NewFromInt(60000)))
	assert.True(t, income.SelfEmploymentNetProfit().Equal(decimal.NewFromInt(10000)), "losses offset profits")
	assert.True(t, income.TaxableInvestment().Equal(decimal.NewFromInt(1500)), "non-taxable investment income is excluded")
	assert.True(t, income.TaxableRetirement().Equal(decimal.NewFromInt(5000)), "non-taxable distributions are excluded")
	assert.True(t, income.TaxableOther().Equal(decimal.NewFromInt(200)))
	assert.True(t, income.TotalWithholding().Equal(decimal.NewFromInt(5300)), "wage and retirement withholding both count")
}

func TestDeductionDetail_CategoryHelpers(t *testing.T) {
	deductions := DeductionDetail{
		Itemized: []ItemizedDeduction{
			{Category: ItemizedMedical, Amount: decimal.NewFromInt(1200)},
			{Category: ItemizedMedical, Amount: decimal.NewFromInt(300)},
			{Category: ItemizedCharitable, Amount: decimal.NewFromInt(500)},
		},
		Adjustments: []Adjustment{
			{Description: "educator expenses", Amount: decimal.NewFromInt(250)},
			{Description: "traditional IRA contribution", Amount: decimal.NewFromInt(3000)},
		},
	}

	assert.True(t, deductions.ItemizedTotalByCategory(ItemizedMedical).Equal(decimal.NewFromInt(1500)))
	assert.True(t, deductions.ItemizedTotalByCategory(ItemizedMortgageInterest).IsZero())
	assert.True(t, deductions.HasItemizedCategory(ItemizedCharitable))
	assert.False(t, deductions.HasItemizedCategory(ItemizedStateLocalTax))
	assert.True(t, deductions.TotalAdjustments().Equal(decimal.NewFromInt(3250)))
}

func TestRecommendationCategory_TaggedVariant(t *testing.T) {
	itemized := ItemizedRecommendationCategory(ItemizedMedical)
	assert.Equal(t, CategoryKindItemized, itemized.Kind)
	assert.Equal(t, "medical", itemized.String())

	business := BusinessRecommendationCategory(BusinessHomeOffice)
	assert.Equal(t, CategoryKindBusiness, business.Kind)
	assert.Equal(t, "home_office", business.String())
}

func TestCreditClaims_TotalOther(t *testing.T) {
	credits := CreditClaims{
		Other: []CreditClaim{
			{Description: "foreign tax credit", Amount: decimal.NewFromInt(120)},
			{Description: "residential energy credit", Amount: decimal.NewFromInt(600)},
		},
	}
	assert.True(t, credits.TotalOther().Equal(decimal.NewFromInt(720)))
}
