package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxReturn is the fully populated input to the calculation pipeline. It is
// owned and mutated by an external caller (persistence, document intake); the
// calculation core only reads it.
type TaxReturn struct {
	ID           uuid.UUID       `yaml:"id" json:"id"`
	TaxYear      int             `yaml:"tax_year" json:"tax_year"`
	FilingStatus FilingStatus    `yaml:"filing_status" json:"filing_status"`
	Income       IncomeSources   `yaml:"income" json:"income"`
	Deductions   DeductionDetail `yaml:"deductions" json:"deductions"`
	Credits      CreditClaims    `yaml:"credits" json:"credits"`
}

// WageIncome is a single W-2 style wage entry.
type WageIncome struct {
	Employer           string          `yaml:"employer" json:"employer"`
	Amount             decimal.Decimal `yaml:"amount" json:"amount"`
	FederalWithholding decimal.Decimal `yaml:"federal_withholding" json:"federal_withholding"`
}

// SelfEmploymentIncome is the net profit of one business activity.
type SelfEmploymentIncome struct {
	Description string          `yaml:"description" json:"description"`
	NetProfit   decimal.Decimal `yaml:"net_profit" json:"net_profit"`
}

// InvestmentIncome is dividend/interest/capital-gain income; only entries
// flagged taxable count toward gross income.
type InvestmentIncome struct {
	Description string          `yaml:"description" json:"description"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Taxable     bool            `yaml:"taxable" json:"taxable"`
}

// RetirementIncome is a pension or account distribution.
type RetirementIncome struct {
	Description        string          `yaml:"description" json:"description"`
	Amount             decimal.Decimal `yaml:"amount" json:"amount"`
	Taxable            bool            `yaml:"taxable" json:"taxable"`
	FederalWithholding decimal.Decimal `yaml:"federal_withholding" json:"federal_withholding"`
}

// OtherIncome covers income that fits none of the categories above.
type OtherIncome struct {
	Description string          `yaml:"description" json:"description"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Taxable     bool            `yaml:"taxable" json:"taxable"`
}

// IncomeSources groups all income entries on a return.
type IncomeSources struct {
	Wages          []WageIncome           `yaml:"wages" json:"wages"`
	SelfEmployment []SelfEmploymentIncome `yaml:"self_employment" json:"self_employment"`
	Investment     []InvestmentIncome     `yaml:"investment" json:"investment"`
	Retirement     []RetirementIncome     `yaml:"retirement" json:"retirement"`
	Other          []OtherIncome          `yaml:"other" json:"other"`
}

// ItemizedCategory tags an itemized deduction entry.
type ItemizedCategory string

const (
	ItemizedMedical          ItemizedCategory = "medical"
	ItemizedStateLocalTax    ItemizedCategory = "state_local_tax"
	ItemizedMortgageInterest ItemizedCategory = "mortgage_interest"
	ItemizedCharitable       ItemizedCategory = "charitable"
	ItemizedEducation        ItemizedCategory = "education"
	ItemizedRetirement       ItemizedCategory = "retirement"
	ItemizedOther            ItemizedCategory = "other"
)

// ItemizedDeduction is one enumerated deduction entry.
type ItemizedDeduction struct {
	Category    ItemizedCategory `yaml:"category" json:"category"`
	Description string           `yaml:"description" json:"description"`
	Amount      decimal.Decimal  `yaml:"amount" json:"amount"`
}

// Adjustment is an above-the-line reduction of gross income (educator
// expenses, IRA contributions, student loan interest, and so on).
type Adjustment struct {
	Description string          `yaml:"description" json:"description"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
}

// DeductionDetail groups the deduction side of a return. TotalItemized is
// carried by the caller and may exceed the sum of the Itemized entries when
// documents have been totaled but not yet categorized.
type DeductionDetail struct {
	Itemized      []ItemizedDeduction `yaml:"itemized" json:"itemized"`
	Adjustments   []Adjustment        `yaml:"adjustments" json:"adjustments"`
	TotalItemized decimal.Decimal     `yaml:"total_itemized" json:"total_itemized"`
}

// CreditClaim is a credit that fits none of the named fields.
type CreditClaim struct {
	Description string          `yaml:"description" json:"description"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
}

// CreditClaims groups the credits claimed on a return. ChildTaxCredit is the
// base amount before phase-out; the calculator applies the phase-out.
type CreditClaims struct {
	ChildTaxCredit          decimal.Decimal `yaml:"child_tax_credit" json:"child_tax_credit"`
	EarnedIncomeCredit      decimal.Decimal `yaml:"earned_income_credit" json:"earned_income_credit"`
	EducationCredits        decimal.Decimal `yaml:"education_credits" json:"education_credits"`
	RetirementSavingsCredit decimal.Decimal `yaml:"retirement_savings_credit" json:"retirement_savings_credit"`
	Other                   []CreditClaim   `yaml:"other" json:"other"`
}

// TotalWages sums all wage amounts.
func (i IncomeSources) TotalWages() decimal.Decimal {
	total := decimal.Zero
	for _, w := range i.Wages {
		total = total.Add(w.Amount)
	}
	return total
}

// SelfEmploymentNetProfit sums net profit across all business activities.
func (i IncomeSources) SelfEmploymentNetProfit() decimal.Decimal {
	total := decimal.Zero
	for _, se := range i.SelfEmployment {
		total = total.Add(se.NetProfit)
	}
	return total
}

// TaxableInvestment sums investment entries flagged taxable.
func (i IncomeSources) TaxableInvestment() decimal.Decimal {
	total := decimal.Zero
	for _, inv := range i.Investment {
		if inv.Taxable {
			total = total.Add(inv.Amount)
		}
	}
	return total
}

// TaxableRetirement sums retirement entries flagged taxable.
func (i IncomeSources) TaxableRetirement() decimal.Decimal {
	total := decimal.Zero
	for _, r := range i.Retirement {
		if r.Taxable {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// TaxableOther sums other-income entries flagged taxable.
func (i IncomeSources) TaxableOther() decimal.Decimal {
	total := decimal.Zero
	for _, o := range i.Other {
		if o.Taxable {
			total = total.Add(o.Amount)
		}
	}
	return total
}

// TotalWithholding sums federal withholding across wages and retirement
// distributions.
func (i IncomeSources) TotalWithholding() decimal.Decimal {
	total := decimal.Zero
	for _, w := range i.Wages {
		total = total.Add(w.FederalWithholding)
	}
	for _, r := range i.Retirement {
		total = total.Add(r.FederalWithholding)
	}
	return total
}

// TotalAdjustments sums all above-the-line adjustments.
func (d DeductionDetail) TotalAdjustments() decimal.Decimal {
	total := decimal.Zero
	for _, a := range d.Adjustments {
		total = total.Add(a.Amount)
	}
	return total
}

// ItemizedTotalByCategory sums itemized entries carrying the given category.
func (d DeductionDetail) ItemizedTotalByCategory(category ItemizedCategory) decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.Itemized {
		if item.Category == category {
			total = total.Add(item.Amount)
		}
	}
	return total
}

// HasItemizedCategory reports whether any itemized entry carries the category.
func (d DeductionDetail) HasItemizedCategory(category ItemizedCategory) bool {
	for _, item := range d.Itemized {
		if item.Category == category {
			return true
		}
	}
	return false
}

// AdjustmentTotalByDescription sums adjustments whose description matches.
func (d DeductionDetail) AdjustmentTotalByDescription(description string) decimal.Decimal {
	total := decimal.Zero
	for _, a := range d.Adjustments {
		if a.Description == description {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// TotalOther sums the unnamed credit claims.
func (c CreditClaims) TotalOther() decimal.Decimal {
	total := decimal.Zero
	for _, claim := range c.Other {
		total = total.Add(claim.Amount)
	}
	return total
}
