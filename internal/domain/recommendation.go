package domain

import "github.com/shopspring/decimal"

// BusinessCategory tags a business-deduction recommendation.
type BusinessCategory string

const (
	BusinessHomeOffice           BusinessCategory = "home_office"
	BusinessVehicle              BusinessCategory = "vehicle"
	BusinessProfessionalServices BusinessCategory = "professional_services"
	BusinessSupplies             BusinessCategory = "supplies"
	BusinessOther                BusinessCategory = "business_other"
)

// CategoryKind discriminates the two recommendation category variants.
type CategoryKind string

const (
	CategoryKindItemized CategoryKind = "itemized"
	CategoryKindBusiness CategoryKind = "business"
)

// RecommendationCategory is a tagged variant: exactly one of Itemized or
// Business is meaningful, selected by Kind.
type RecommendationCategory struct {
	Kind     CategoryKind     `yaml:"kind" json:"kind"`
	Itemized ItemizedCategory `yaml:"itemized,omitempty" json:"itemized,omitempty"`
	Business BusinessCategory `yaml:"business,omitempty" json:"business,omitempty"`
}

// ItemizedRecommendationCategory builds the itemized variant.
func ItemizedRecommendationCategory(c ItemizedCategory) RecommendationCategory {
	return RecommendationCategory{Kind: CategoryKindItemized, Itemized: c}
}

// BusinessRecommendationCategory builds the business variant.
func BusinessRecommendationCategory(c BusinessCategory) RecommendationCategory {
	return RecommendationCategory{Kind: CategoryKindBusiness, Business: c}
}

func (rc RecommendationCategory) String() string {
	if rc.Kind == CategoryKindBusiness {
		return string(rc.Business)
	}
	return string(rc.Itemized)
}

// DeductionRecommendation is one ranked improvement opportunity produced by
// the advisor. PotentialSavings = EstimatedAmount * the return's marginal rate.
type DeductionRecommendation struct {
	Category          RecommendationCategory `yaml:"category" json:"category"`
	Description       string                 `yaml:"description" json:"description"`
	EstimatedAmount   decimal.Decimal        `yaml:"estimated_amount" json:"estimated_amount"`
	Confidence        decimal.Decimal        `yaml:"confidence" json:"confidence"`
	RequiredDocuments []string               `yaml:"required_documents" json:"required_documents"`
	PotentialSavings  decimal.Decimal        `yaml:"potential_savings" json:"potential_savings"`
}

// DeductionAnalysis is the advisor's full output for one return.
type DeductionAnalysis struct {
	Recommendations    []DeductionRecommendation `yaml:"recommendations" json:"recommendations"`
	StandardVsItemized DeductionComparison       `yaml:"standard_vs_itemized" json:"standard_vs_itemized"`
	PotentialSavings   decimal.Decimal           `yaml:"potential_savings" json:"potential_savings"`
}

// StrategyVerdict is the advisor's itemize-or-standard recommendation.
type StrategyVerdict string

const (
	StrategyItemize  StrategyVerdict = "itemize"
	StrategyStandard StrategyVerdict = "standard"
)

// StrategyAnalysis is the result of evaluating a set of proposed deductions
// against a baseline calculation.
type StrategyAnalysis struct {
	CurrentTax     decimal.Decimal `yaml:"current_tax" json:"current_tax"`
	NewTax         decimal.Decimal `yaml:"new_tax" json:"new_tax"`
	Savings        decimal.Decimal `yaml:"savings" json:"savings"`
	Recommendation StrategyVerdict `yaml:"recommendation" json:"recommendation"`
}
