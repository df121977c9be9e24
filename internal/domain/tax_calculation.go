package domain

import "github.com/shopspring/decimal"

// TaxCalculation is the value object produced by one run of the calculation
// pipeline. Money fields are rounded to 2 decimal places, rate fields to 4.
// RefundAmount and AmountOwed are both non-negative and never both positive.
type TaxCalculation struct {
	GrossIncome             decimal.Decimal `yaml:"gross_income" json:"gross_income"`
	AdjustedGrossIncome     decimal.Decimal `yaml:"adjusted_gross_income" json:"adjusted_gross_income"`
	TaxableIncome           decimal.Decimal `yaml:"taxable_income" json:"taxable_income"`
	FederalTaxBeforeCredits decimal.Decimal `yaml:"federal_tax_before_credits" json:"federal_tax_before_credits"`
	TotalCredits            decimal.Decimal `yaml:"total_credits" json:"total_credits"`
	FederalTaxAfterCredits  decimal.Decimal `yaml:"federal_tax_after_credits" json:"federal_tax_after_credits"`
	SelfEmploymentTax       decimal.Decimal `yaml:"self_employment_tax" json:"self_employment_tax"`
	TotalTaxLiability       decimal.Decimal `yaml:"total_tax_liability" json:"total_tax_liability"`
	TotalWithholding        decimal.Decimal `yaml:"total_withholding" json:"total_withholding"`

	// EstimatedPayments is always zero: quarterly estimated payment intake is
	// an unimplemented upstream feature. The field is carried so the refund
	// arithmetic does not change shape when it lands.
	EstimatedPayments decimal.Decimal `yaml:"estimated_payments" json:"estimated_payments"`

	RefundAmount     decimal.Decimal `yaml:"refund_amount" json:"refund_amount"`
	AmountOwed       decimal.Decimal `yaml:"amount_owed" json:"amount_owed"`
	EffectiveTaxRate decimal.Decimal `yaml:"effective_tax_rate" json:"effective_tax_rate"`
	MarginalTaxRate  decimal.Decimal `yaml:"marginal_tax_rate" json:"marginal_tax_rate"`
}

// DeductionComparison is the standard-versus-itemized verdict.
type DeductionComparison struct {
	UseItemized     bool            `yaml:"use_itemized" json:"use_itemized"`
	DeductionAmount decimal.Decimal `yaml:"deduction_amount" json:"deduction_amount"`
	Savings         decimal.Decimal `yaml:"savings" json:"savings"`
}
