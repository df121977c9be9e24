// Package config loads tax law configurations and tax returns from YAML
// documents and validates them before they enter the calculation core.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finwise/taxcore/internal/domain"
)

// InputParser handles parsing of input documents.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadTaxLawFile loads and validates a tax law configuration from a YAML file.
func (ip *InputParser) LoadTaxLawFile(filename string) (*domain.TaxLawConfiguration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.TaxLawConfiguration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateTaxLaw(&config); err != nil {
		return nil, fmt.Errorf("tax law validation failed: %w", err)
	}
	return &config, nil
}

// LoadTaxReturnFile loads and validates a tax return from a YAML file.
func (ip *InputParser) LoadTaxReturnFile(filename string) (*domain.TaxReturn, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var taxReturn domain.TaxReturn
	if err := yaml.Unmarshal(data, &taxReturn); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateTaxReturn(&taxReturn); err != nil {
		return nil, fmt.Errorf("tax return validation failed: %w", err)
	}
	return &taxReturn, nil
}

// ValidateTaxLaw checks a law configuration: the year must be set, every
// filing status must carry a standard deduction and a bracket schedule, and
// each schedule must be contiguous, ascending, and rate-monotonic.
func (ip *InputParser) ValidateTaxLaw(config *domain.TaxLawConfiguration) error {
	if config.Year == 0 {
		return fmt.Errorf("year is required")
	}

	for _, status := range domain.FilingStatuses {
		deduction, ok := config.StandardDeductions[status]
		if !ok {
			return fmt.Errorf("standard deduction missing for filing status %s", status)
		}
		if deduction.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("standard deduction for %s must be positive", status)
		}

		brackets := config.Brackets[status]
		if len(brackets) == 0 {
			return fmt.Errorf("brackets missing for filing status %s", status)
		}
		if err := ip.validateBrackets(status, brackets); err != nil {
			return err
		}
	}

	if config.SocialSecurityWageBase.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("social security wage base must be positive")
	}
	if config.SocialSecurityRate.LessThanOrEqual(decimal.Zero) || config.SocialSecurityRate.GreaterThan(decimal.NewFromFloat(1.0)) {
		return fmt.Errorf("social security rate must be between 0 and 1")
	}
	if config.MedicareRate.LessThanOrEqual(decimal.Zero) || config.MedicareRate.GreaterThan(decimal.NewFromFloat(1.0)) {
		return fmt.Errorf("medicare rate must be between 0 and 1")
	}
	if config.ChildCreditBaseAmount.LessThan(decimal.Zero) {
		return fmt.Errorf("child credit base amount cannot be negative")
	}
	for _, status := range domain.FilingStatuses {
		threshold, ok := config.ChildCreditPhaseOutByStatus[status]
		if !ok {
			return fmt.Errorf("child credit phase-out threshold missing for filing status %s", status)
		}
		if threshold.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("child credit phase-out threshold for %s must be positive", status)
		}
	}

	return nil
}

func (ip *InputParser) validateBrackets(status domain.FilingStatus, brackets []domain.TaxBracket) error {
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("brackets for %s must start at zero", status)
	}
	for i, bracket := range brackets {
		if bracket.Rate.LessThan(decimal.Zero) || bracket.Rate.GreaterThan(decimal.NewFromFloat(1.0)) {
			return fmt.Errorf("bracket %d for %s: rate must be between 0 and 1", i, status)
		}
		if bracket.Max.LessThanOrEqual(bracket.Min) {
			return fmt.Errorf("bracket %d for %s: max must exceed min", i, status)
		}
		if i > 0 {
			if !bracket.Min.Equal(brackets[i-1].Max) {
				return fmt.Errorf("bracket %d for %s: min %s does not continue previous max %s",
					i, status, bracket.Min.String(), brackets[i-1].Max.String())
			}
			if bracket.Rate.LessThan(brackets[i-1].Rate) {
				return fmt.Errorf("bracket %d for %s: rates must be non-decreasing", i, status)
			}
		}
	}
	return nil
}

// ValidateTaxReturn rejects malformed returns at the file boundary. Negative
// monetary fields are refused here; the calculation pipeline itself only
// clamps, so the boundary is where bad input is caught.
func (ip *InputParser) ValidateTaxReturn(taxReturn *domain.TaxReturn) error {
	if taxReturn.TaxYear == 0 {
		return fmt.Errorf("tax year is required")
	}
	if !taxReturn.FilingStatus.Valid() {
		return fmt.Errorf("unknown filing status %q", taxReturn.FilingStatus)
	}

	for i, wage := range taxReturn.Income.Wages {
		if wage.Amount.LessThan(decimal.Zero) {
			return fmt.Errorf("wage %d: amount cannot be negative", i)
		}
		if wage.FederalWithholding.LessThan(decimal.Zero) {
			return fmt.Errorf("wage %d: withholding cannot be negative", i)
		}
	}
	for i, inv := range taxReturn.Income.Investment {
		if inv.Amount.LessThan(decimal.Zero) {
			return fmt.Errorf("investment income %d: amount cannot be negative", i)
		}
	}
	for i, ret := range taxReturn.Income.Retirement {
		if ret.Amount.LessThan(decimal.Zero) {
			return fmt.Errorf("retirement income %d: amount cannot be negative", i)
		}
		if ret.FederalWithholding.LessThan(decimal.Zero) {
			return fmt.Errorf("retirement income %d: withholding cannot be negative", i)
		}
	}
	for i, other := range taxReturn.Income.Other {
		if other.Amount.LessThan(decimal.Zero) {
			return fmt.Errorf("other income %d: amount cannot be negative", i)
		}
	}
	// Self-employment net profit may legitimately be negative (a loss year),
	// so it is not checked here.

	for i, item := range taxReturn.Deductions.Itemized {
		if item.Amount.LessThan(decimal.Zero) {
			return fmt.Errorf("itemized deduction %d: amount cannot be negative", i)
		}
	}
	for i, adj := range taxReturn.Deductions.Adjustments {
		if adj.Amount.LessThan(decimal.Zero) {
			return fmt.Errorf("adjustment %d: amount cannot be negative", i)
		}
	}
	if taxReturn.Deductions.TotalItemized.LessThan(decimal.Zero) {
		return fmt.Errorf("total itemized deductions cannot be negative")
	}

	credits := taxReturn.Credits
	if credits.ChildTaxCredit.LessThan(decimal.Zero) {
		return fmt.Errorf("child tax credit cannot be negative")
	}
	if credits.EarnedIncomeCredit.LessThan(decimal.Zero) {
		return fmt.Errorf("earned income credit cannot be negative")
	}
	if credits.EducationCredits.LessThan(decimal.Zero) {
		return fmt.Errorf("education credits cannot be negative")
	}
	if credits.RetirementSavingsCredit.LessThan(decimal.Zero) {
		return fmt.Errorf("retirement savings credit cannot be negative")
	}
	for i, claim := range credits.Other {
		if claim.Amount.LessThan(decimal.Zero) {
			return fmt.Errorf("credit %d: amount cannot be negative", i)
		}
	}

	return nil
}
