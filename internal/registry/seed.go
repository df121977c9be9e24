package registry

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finwise/taxcore/internal/domain"
)

// bracketBound caps the top bracket; the calculator treats the final bracket
// as unbounded, so the value only has to exceed any plausible income.
var bracketBound = decimal.NewFromInt(999999999)

func bracket(min, max int64, rate float64) domain.TaxBracket {
	return domain.TaxBracket{
		Min:  decimal.NewFromInt(min),
		Max:  decimal.NewFromInt(max),
		Rate: decimal.NewFromFloat(rate),
	}
}

func topBracket(min int64, rate float64) domain.TaxBracket {
	return domain.TaxBracket{
		Min:  decimal.NewFromInt(min),
		Max:  bracketBound,
		Rate: decimal.NewFromFloat(rate),
	}
}

// seededBrackets returns the bracket schedules shared by the seeded years.
// Bounds are the 2023 schedules; the 2024 seed intentionally reuses them with
// 2024 standard deductions, matching the upstream law data this core was
// bootstrapped with.
func seededBrackets() map[domain.FilingStatus][]domain.TaxBracket {
	single := []domain.TaxBracket{
		bracket(0, 11000, 0.10),
		bracket(11000, 44725, 0.12),
		bracket(44725, 95375, 0.22),
		bracket(95375, 182100, 0.24),
		bracket(182100, 231250, 0.32),
		bracket(231250, 578125, 0.35),
		topBracket(578125, 0.37),
	}
	mfj := []domain.TaxBracket{
		bracket(0, 22000, 0.10),
		bracket(22000, 89450, 0.12),
		bracket(89450, 190750, 0.22),
		bracket(190750, 364200, 0.24),
		bracket(364200, 462500, 0.32),
		bracket(462500, 693750, 0.35),
		topBracket(693750, 0.37),
	}
	mfs := []domain.TaxBracket{
		bracket(0, 11000, 0.10),
		bracket(11000, 44725, 0.12),
		bracket(44725, 95375, 0.22),
		bracket(95375, 182100, 0.24),
		bracket(182100, 231250, 0.32),
		bracket(231250, 346875, 0.35),
		topBracket(346875, 0.37),
	}
	hoh := []domain.TaxBracket{
		bracket(0, 15700, 0.10),
		bracket(15700, 59850, 0.12),
		bracket(59850, 95350, 0.22),
		bracket(95350, 182100, 0.24),
		bracket(182100, 231250, 0.32),
		bracket(231250, 578100, 0.35),
		topBracket(578100, 0.37),
	}
	return map[domain.FilingStatus][]domain.TaxBracket{
		domain.FilingStatusSingle:                    single,
		domain.FilingStatusMarriedFilingJointly:      mfj,
		domain.FilingStatusMarriedFilingSeparately:   mfs,
		domain.FilingStatusHeadOfHousehold:           hoh,
		domain.FilingStatusQualifyingSurvivingSpouse: mfj,
	}
}

func childCreditThresholds() map[domain.FilingStatus]decimal.Decimal {
	joint := decimal.NewFromInt(400000)
	other := decimal.NewFromInt(200000)
	return map[domain.FilingStatus]decimal.Decimal{
		domain.FilingStatusSingle:                    other,
		domain.FilingStatusMarriedFilingJointly:      joint,
		domain.FilingStatusMarriedFilingSeparately:   other,
		domain.FilingStatusHeadOfHousehold:           other,
		domain.FilingStatusQualifyingSurvivingSpouse: joint,
	}
}

// TaxLaw2023 returns the built-in 2023 configuration.
func TaxLaw2023() *domain.TaxLawConfiguration {
	return &domain.TaxLawConfiguration{
		Year: 2023,
		StandardDeductions: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingStatusSingle:                    decimal.NewFromInt(13850),
			domain.FilingStatusMarriedFilingJointly:      decimal.NewFromInt(27700),
			domain.FilingStatusMarriedFilingSeparately:   decimal.NewFromInt(13850),
			domain.FilingStatusHeadOfHousehold:           decimal.NewFromInt(20800),
			domain.FilingStatusQualifyingSurvivingSpouse: decimal.NewFromInt(27700),
		},
		Brackets:                    seededBrackets(),
		SocialSecurityWageBase:      decimal.NewFromInt(160200),
		SocialSecurityRate:          decimal.NewFromFloat(0.062),
		MedicareRate:                decimal.NewFromFloat(0.0145),
		ChildCreditBaseAmount:       decimal.NewFromInt(2000),
		ChildCreditPhaseOutByStatus: childCreditThresholds(),
	}
}

// TaxLaw2024 returns the built-in 2024 configuration.
func TaxLaw2024() *domain.TaxLawConfiguration {
	return &domain.TaxLawConfiguration{
		Year: 2024,
		StandardDeductions: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingStatusSingle:                    decimal.NewFromInt(14600),
			domain.FilingStatusMarriedFilingJointly:      decimal.NewFromInt(29200),
			domain.FilingStatusMarriedFilingSeparately:   decimal.NewFromInt(14600),
			domain.FilingStatusHeadOfHousehold:           decimal.NewFromInt(21900),
			domain.FilingStatusQualifyingSurvivingSpouse: decimal.NewFromInt(29200),
		},
		Brackets:                    seededBrackets(),
		SocialSecurityWageBase:      decimal.NewFromInt(168600),
		SocialSecurityRate:          decimal.NewFromFloat(0.062),
		MedicareRate:                decimal.NewFromFloat(0.0145),
		ChildCreditBaseAmount:       decimal.NewFromInt(2000),
		ChildCreditPhaseOutByStatus: childCreditThresholds(),
	}
}

// Seed upserts the built-in historical configurations. Intended to run once
// at startup before any calculation.
func (r *Registry) Seed(ctx context.Context) error {
	for _, config := range []*domain.TaxLawConfiguration{TaxLaw2023(), TaxLaw2024()} {
		if err := r.Upsert(ctx, config); err != nil {
			return fmt.Errorf("seed tax law for year %d: %w", config.Year, err)
		}
	}
	return nil
}
