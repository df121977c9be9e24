package domain

import "github.com/shopspring/decimal"

// TaxBracket is one rung of a progressive rate schedule. Max is exclusive;
// the top bracket of a schedule is treated as unbounded regardless of Max.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// TaxLawConfiguration carries every per-year parameter the calculator needs.
// Instances are created by an administrative process, cached by the registry
// keyed on Year, and read-only during any calculation.
type TaxLawConfiguration struct {
	Year int `yaml:"year" json:"year"`

	// StandardDeductions and Brackets are keyed by filing status and must
	// cover all five statuses. Brackets per status are ordered, contiguous
	// (bracket[i].Max == bracket[i+1].Min), with non-decreasing rates.
	StandardDeductions map[FilingStatus]decimal.Decimal `yaml:"standard_deductions" json:"standard_deductions"`
	Brackets           map[FilingStatus][]TaxBracket    `yaml:"brackets" json:"brackets"`

	// Self-employment tax parameters.
	SocialSecurityWageBase decimal.Decimal `yaml:"social_security_wage_base" json:"social_security_wage_base"`
	SocialSecurityRate     decimal.Decimal `yaml:"social_security_rate" json:"social_security_rate"`
	MedicareRate           decimal.Decimal `yaml:"medicare_rate" json:"medicare_rate"`

	// Child tax credit parameters. The phase-out threshold varies by filing
	// status; the base amount is the full per-return credit before phase-out.
	ChildCreditBaseAmount       decimal.Decimal                  `yaml:"child_credit_base_amount" json:"child_credit_base_amount"`
	ChildCreditPhaseOutByStatus map[FilingStatus]decimal.Decimal `yaml:"child_credit_phase_out_thresholds" json:"child_credit_phase_out_thresholds"`
}

// StandardDeductionFor returns the standard deduction for a filing status,
// or zero if the configuration does not carry one.
func (c *TaxLawConfiguration) StandardDeductionFor(status FilingStatus) decimal.Decimal {
	return c.StandardDeductions[status]
}

// BracketsFor returns the ordered bracket schedule for a filing status.
func (c *TaxLawConfiguration) BracketsFor(status FilingStatus) []TaxBracket {
	return c.Brackets[status]
}

// ChildCreditThresholdFor returns the phase-out threshold for a filing status.
func (c *TaxLawConfiguration) ChildCreditThresholdFor(status FilingStatus) decimal.Decimal {
	return c.ChildCreditPhaseOutByStatus[status]
}
