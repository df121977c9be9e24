package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise/taxcore/internal/domain"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{5295.5, "$5,295.50"},
		{1412.96, "$1,412.96"},
		{1234567.89, "$1,234,567.89"},
		{-42.1, "-$42.10"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCurrency(decimal.NewFromFloat(tc.in)))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "22.00%", FormatPercent(decimal.NewFromFloat(0.22)))
	assert.Equal(t, "8.83%", FormatPercent(decimal.NewFromFloat(0.0883)))
}

func TestWriteCalculation_Console(t *testing.T) {
	var buf bytes.Buffer
	rg := NewReportGenerator(&buf)

	calc := &domain.TaxCalculation{
		GrossIncome:             decimal.NewFromInt(60000),
		AdjustedGrossIncome:     decimal.NewFromInt(60000),
		TaxableIncome:           decimal.NewFromInt(45400),
		FederalTaxBeforeCredits: decimal.NewFromFloat(5295.50),
		FederalTaxAfterCredits:  decimal.NewFromFloat(5295.50),
		TotalTaxLiability:       decimal.NewFromFloat(5295.50),
		TotalWithholding:        decimal.NewFromInt(5000),
		AmountOwed:              decimal.NewFromFloat(295.50),
		EffectiveTaxRate:        decimal.NewFromFloat(0.0883),
		MarginalTaxRate:         decimal.NewFromFloat(0.22),
	}

	require.NoError(t, rg.WriteCalculation(calc, "console"))
	out := buf.String()
	assert.Contains(t, out, "FEDERAL TAX CALCULATION")
	assert.Contains(t, out, "$45,400.00")
	assert.Contains(t, out, "$295.50")
	assert.Contains(t, out, "22.00%")
}

func TestWriteCalculation_UnsupportedFormat(t *testing.T) {
	rg := NewReportGenerator(&bytes.Buffer{})
	err := rg.WriteCalculation(&domain.TaxCalculation{}, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestWriteAnalysis_CSV(t *testing.T) {
	var buf bytes.Buffer
	rg := NewReportGenerator(&buf)

	analysis := &domain.DeductionAnalysis{
		Recommendations: []domain.DeductionRecommendation{
			{
				Category:         domain.ItemizedRecommendationCategory(domain.ItemizedCharitable),
				Description:      "Document charitable contributions",
				EstimatedAmount:  decimal.NewFromInt(1000),
				Confidence:       decimal.NewFromFloat(0.7),
				PotentialSavings: decimal.NewFromInt(220),
			},
			{
				Category:         domain.BusinessRecommendationCategory(domain.BusinessVehicle),
				Description:      "Deduct business mileage",
				EstimatedAmount:  decimal.NewFromInt(2500),
				Confidence:       decimal.NewFromFloat(0.5),
				PotentialSavings: decimal.NewFromInt(550),
			},
		},
	}

	require.NoError(t, rg.WriteAnalysis(analysis, "csv"))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per recommendation")
	assert.Equal(t, "charitable", records[1][0])
	assert.Equal(t, "vehicle", records[2][0])
	assert.Equal(t, "550.00", records[2][4])
}

func TestWriteAnalysis_JSON(t *testing.T) {
	var buf bytes.Buffer
	rg := NewReportGenerator(&buf)

	analysis := &domain.DeductionAnalysis{PotentialSavings: decimal.NewFromInt(220)}
	require.NoError(t, rg.WriteAnalysis(analysis, "json"))
	assert.Contains(t, buf.String(), "potential_savings")
}
