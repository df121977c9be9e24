package advisor

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finwise/taxcore/internal/domain"
)

// Rule thresholds and fixed estimates. These are advisory heuristics, not
// law parameters, so they live here rather than in the law configuration.
var (
	medicalAGIRate = decimal.NewFromFloat(0.075)

	saltCap = decimal.NewFromInt(10000)

	mortgageAGIFloor = decimal.NewFromInt(100000)
	mortgageEstimate = decimal.NewFromInt(10000)

	charitableAGIRate = decimal.NewFromFloat(0.02)
	charitableCap     = decimal.NewFromInt(2000)

	homeOfficeEstimate   = decimal.NewFromInt(1500)
	vehicleEstimate      = decimal.NewFromInt(2500)
	professionalEstimate = decimal.NewFromInt(1000)

	studentLoanAGICeiling = decimal.NewFromInt(85000)
	studentLoanEstimate   = decimal.NewFromInt(2500)
	tuitionAGICeiling     = decimal.NewFromInt(90000)
	tuitionEstimate       = decimal.NewFromInt(4000)

	iraContributionLimit = decimal.NewFromInt(7000)
	hsaContributionLimit = decimal.NewFromInt(4150)
	hsaAGICeiling        = decimal.NewFromInt(150000)
)

// rule evaluates one heuristic against a return and its calculation,
// producing zero or one recommendation.
type rule func(taxReturn *domain.TaxReturn, calc *domain.TaxCalculation) *domain.DeductionRecommendation

// rules in evaluation order. Ordering matters: ties on potential savings are
// broken by this order through the stable sort in Analyze.
var rules = []rule{
	medicalRule,
	saltRule,
	mortgageRule,
	charitableRule,
	homeOfficeRule,
	vehicleRule,
	professionalServicesRule,
	studentLoanRule,
	tuitionRule,
	iraRule,
	hsaRule,
}

func evaluateRules(taxReturn *domain.TaxReturn, calc *domain.TaxCalculation) []domain.DeductionRecommendation {
	var out []domain.DeductionRecommendation
	for _, evaluate := range rules {
		if rec := evaluate(taxReturn, calc); rec != nil {
			rec.PotentialSavings = rec.EstimatedAmount.Mul(calc.MarginalTaxRate).Round(2)
			out = append(out, *rec)
		}
	}
	return out
}

// medicalRule flags headroom between current medical deductions and the
// 7.5%-of-AGI threshold where medical expenses start to count.
func medicalRule(taxReturn *domain.TaxReturn, calc *domain.TaxCalculation) *domain.DeductionRecommendation {
	threshold := calc.AdjustedGrossIncome.Mul(medicalAGIRate)
	current := taxReturn.Deductions.ItemizedTotalByCategory(domain.ItemizedMedical)
	gap := threshold.Sub(current)
	if gap.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	return &domain.DeductionRecommendation{
		Category:        domain.ItemizedRecommendationCategory(domain.ItemizedMedical),
		Description:     "Track additional medical expenses; amounts above 7.5% of AGI are deductible",
		EstimatedAmount: gap.Round(2),
		Confidence:      decimal.NewFromFloat(0.6),
		RequiredDocuments: []string{
			"Medical expense receipts",
			"Health insurance premium statements",
		},
	}
}

// saltRule flags unused room under the $10,000 state and local tax cap.
func saltRule(taxReturn *domain.TaxReturn, calc *domain.TaxCalculation) *domain.DeductionRecommendation {
	current := taxReturn.Deductions.ItemizedTotalByCategory(domain.ItemizedStateLocalTax)
	gap := saltCap.Sub(current)
	if gap.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	return &domain.DeductionRecommendation{
		Category:        domain.ItemizedRecommendationCategory(domain.ItemizedStateLocalTax),
		Description:     "Deduct state income and property taxes up to the $10,000 cap",
		EstimatedAmount: gap.Round(2),
		Confidence:      decimal.NewFromFloat(0.8),
		RequiredDocuments: []string{
			"State tax returns",
			"Property tax statements",
		},
	}
}

// mortgageRule suggests mortgage interest only when none is present and AGI
// makes home ownership plausible.
func mortgageRule(taxReturn *domain.TaxReturn, calc *domain.TaxCalculation) *domain.DeductionRecommendation {
	if taxReturn.Deductions.HasItemizedCategory(domain.ItemizedMortgageInterest) {
		return nil
	}
	if calc.AdjustedGrossIncome.LessThanOrEqual(mortgageAGIFloor) {
		return nil
	}
	return &domain.DeductionRecommendation{
		Category:          domain.ItemizedRecommendationCategory(domain.ItemizedMortgageInterest),
		Description:       "If you own a home, mortgage interest is typically deductible",
		EstimatedAmount:   mortgageEstimate,
		Confidence:        decimal.NewFromFloat(0.4),
		RequiredDocuments: []string{"Form 1098 mortgage interest statement"},
	}
}

// charitableRule flags headroom up to min(2% of AGI, $2,000).
func charitableRule(taxReturn *domain.TaxReturn, calc *domain.TaxCalculation) *domain.DeductionRecommendation {
	ceiling := decimal.Min(calc.AdjustedGrossIncome.Mul(charitableAGIRate), charitableCap)
	current := taxReturn.Deductions.ItemizedTotalByCategory(domain.ItemizedCharitable)
	gap := ceiling.Sub(current)
	if gap.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	return &domain.DeductionRecommendation{
		Category:        domain.ItemizedRecommendationCategory(domain.ItemizedCharitable),
		Description:     "Document charitable contributions, including non-cash donations",
		EstimatedAmount: gap.Round(2),
		Confidence:      decimal.NewFromFloat(0.7),
		RequiredDocuments: []string{
			"Donation receipts",
			"Charity acknowledgment letters",
		},
	}
}

func hasSelfEmployment(taxReturn *domain.TaxReturn) bool {
	return taxReturn.Income.SelfEmploymentNetProfit().GreaterThan(decimal.Zero)
}

func homeOfficeRule(taxReturn *domain.TaxReturn, calc *domain.TaxCalculation) *domain.DeductionRecommendation {
	if !hasSelfEmployment(taxReturn) {
		return nil
	}
	return &domain.DeductionRecommendation{
		Category:        domain.BusinessRecommendationCategory(domain.BusinessHomeOffice),
		Description:     "Deduct a home office used regularly and exclusively for the business",
		EstimatedAmount: homeOfficeEstimate,
		Confidence:      decimal.NewFromFloat(0.6),
		RequiredDocuments: []string{
			"Home office square footage",
			"Utility bills",
		},
	}
}

func vehicleRule(taxReturn *domain.TaxReturn, calc *domain.TaxCalculation) *domain.DeductionRecommendation {
	if !hasSelfEmployment(taxReturn) {
		return nil
	}
	return &domain.DeductionRecommendation{
		Category:        domain.BusinessRecommendationCategory(domain.BusinessVehicle),
		Description:     "Deduct business mileage or actual vehicle expenses",
		EstimatedAmount: vehicleEstimate,
		Confidence:      decimal.NewFromFloat(0.5),
		RequiredDocuments: []string{
			"Mileage log",
			"Vehicle expense receipts",
		},
	}
}

func professionalServicesRule(taxReturn *domain.TaxReturn, calc *domain.TaxCalculation) *domain.DeductionRecommendation {
	if !hasSelfEmployment(taxReturn) {
		return nil
	}
	return &domain.DeductionRecommendation{
		Category:          domain.BusinessRecommendationCategory(domain.BusinessProfessionalServices),
		Description:       "Deduct accounting, legal, and other professional service fees",
		EstimatedAmount:   professionalEstimate,
		Confidence:        decimal.NewFromFloat(0.7),
		RequiredDocuments: []string{"Invoices for professional services"},
	}
}

func studentLoanRule(taxReturn *domain.TaxReturn, calc *domain.TaxCalculation) *domain.DeductionRecommendation {
	if calc.AdjustedGrossIncome.GreaterThan(studentLoanAGICeiling) {
		return nil
	}
	return &domain.DeductionRecommendation{
		Category:          domain.ItemizedRecommendationCategory(domain.ItemizedEducation),
		Description:       "Student loan interest up to $2,500 is deductible below the income ceiling",
		EstimatedAmount:   studentLoanEstimate,
		Confidence:        decimal.NewFromFloat(0.65),
		RequiredDocuments: []string{"Form 1098-E student loan interest statement"},
	}
}

func tuitionRule(taxReturn *domain.TaxReturn, calc *domain.TaxCalculation) *domain.DeductionRecommendation {
	if calc.AdjustedGrossIncome.GreaterThan(tuitionAGICeiling) {
		return nil
	}
	return &domain.DeductionRecommendation{
		Category:          domain.ItemizedRecommendationCategory(domain.ItemizedEducation),
		Description:       "Tuition and fees may qualify for education benefits below the income ceiling",
		EstimatedAmount:   tuitionEstimate,
		Confidence:        decimal.NewFromFloat(0.5),
		RequiredDocuments: []string{"Form 1098-T tuition statement"},
	}
}

// adjustmentTotalContaining sums adjustments whose description mentions the
// given keyword. Adjustment descriptions are free-form caller input, so this
// match is intentionally loose.
func adjustmentTotalContaining(taxReturn *domain.TaxReturn, keyword string) decimal.Decimal {
	total := decimal.Zero
	for _, adj := range taxReturn.Deductions.Adjustments {
		if strings.Contains(strings.ToLower(adj.Description), keyword) {
			total = total.Add(adj.Amount)
		}
	}
	return total
}

func iraRule(taxReturn *domain.TaxReturn, calc *domain.TaxCalculation) *domain.DeductionRecommendation {
	headroom := iraContributionLimit.Sub(adjustmentTotalContaining(taxReturn, "ira"))
	if headroom.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	return &domain.DeductionRecommendation{
		Category:          domain.ItemizedRecommendationCategory(domain.ItemizedRetirement),
		Description:       "Contribute remaining headroom to a traditional IRA before the filing deadline",
		EstimatedAmount:   headroom.Round(2),
		Confidence:        decimal.NewFromFloat(0.75),
		RequiredDocuments: []string{"IRA contribution confirmation"},
	}
}

func hsaRule(taxReturn *domain.TaxReturn, calc *domain.TaxCalculation) *domain.DeductionRecommendation {
	if calc.AdjustedGrossIncome.GreaterThan(hsaAGICeiling) {
		return nil
	}
	headroom := hsaContributionLimit.Sub(adjustmentTotalContaining(taxReturn, "hsa"))
	if headroom.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	return &domain.DeductionRecommendation{
		Category:          domain.ItemizedRecommendationCategory(domain.ItemizedRetirement),
		Description:       "Contribute remaining headroom to an HSA if enrolled in a high-deductible plan",
		EstimatedAmount:   headroom.Round(2),
		Confidence:        decimal.NewFromFloat(0.55),
		RequiredDocuments: []string{"Form 5498-SA HSA contribution statement"},
	}
}
