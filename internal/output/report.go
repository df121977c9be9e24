// Package output renders calculation results and deduction analyses for the
// CLI in console, JSON, and CSV form.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/finwise/taxcore/internal/domain"
)

// ReportGenerator writes reports in various formats.
type ReportGenerator struct {
	w io.Writer
}

// NewReportGenerator creates a generator writing to w.
func NewReportGenerator(w io.Writer) *ReportGenerator {
	return &ReportGenerator{w: w}
}

// WriteCalculation renders a calculation in the requested format.
func (rg *ReportGenerator) WriteCalculation(calc *domain.TaxCalculation, format string) error {
	switch format {
	case "console":
		return rg.writeCalculationConsole(calc)
	case "json":
		return rg.writeJSON(calc)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteAnalysis renders a deduction analysis in the requested format.
func (rg *ReportGenerator) WriteAnalysis(analysis *domain.DeductionAnalysis, format string) error {
	switch format {
	case "console":
		return rg.writeAnalysisConsole(analysis)
	case "json":
		return rg.writeJSON(analysis)
	case "csv":
		return rg.writeAnalysisCSV(analysis)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteStrategy renders a what-if strategy result in the requested format.
func (rg *ReportGenerator) WriteStrategy(strategy *domain.StrategyAnalysis, format string) error {
	switch format {
	case "console":
		return rg.writeStrategyConsole(strategy)
	case "json":
		return rg.writeJSON(strategy)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (rg *ReportGenerator) writeJSON(v any) error {
	enc := json.NewEncoder(rg.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (rg *ReportGenerator) writeCalculationConsole(calc *domain.TaxCalculation) error {
	fmt.Fprintln(rg.w, titleStyle.Render("FEDERAL TAX CALCULATION"))
	fmt.Fprintln(rg.w)

	fmt.Fprintln(rg.w, sectionStyle.Render("Income"))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Gross income:         "), FormatCurrency(calc.GrossIncome))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Adjusted gross income:"), FormatCurrency(calc.AdjustedGrossIncome))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Taxable income:       "), FormatCurrency(calc.TaxableIncome))
	fmt.Fprintln(rg.w)

	fmt.Fprintln(rg.w, sectionStyle.Render("Tax"))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Tax before credits:   "), FormatCurrency(calc.FederalTaxBeforeCredits))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Total credits:        "), FormatCurrency(calc.TotalCredits))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Tax after credits:    "), FormatCurrency(calc.FederalTaxAfterCredits))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Self-employment tax:  "), FormatCurrency(calc.SelfEmploymentTax))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Total liability:      "), FormatCurrency(calc.TotalTaxLiability))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Effective rate:       "), FormatPercent(calc.EffectiveTaxRate))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Marginal rate:        "), FormatPercent(calc.MarginalTaxRate))
	fmt.Fprintln(rg.w)

	fmt.Fprintln(rg.w, sectionStyle.Render("Balance"))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Total withholding:    "), FormatCurrency(calc.TotalWithholding))
	if calc.RefundAmount.IsPositive() {
		fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Refund:               "), positiveStyle.Render(FormatCurrency(calc.RefundAmount)))
	} else {
		fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Amount owed:          "), negativeStyle.Render(FormatCurrency(calc.AmountOwed)))
	}
	return nil
}

func (rg *ReportGenerator) writeAnalysisConsole(analysis *domain.DeductionAnalysis) error {
	fmt.Fprintln(rg.w, titleStyle.Render("DEDUCTION RECOMMENDATIONS"))
	fmt.Fprintln(rg.w)

	if len(analysis.Recommendations) == 0 {
		fmt.Fprintln(rg.w, "No recommendations for this return.")
	}
	for i, rec := range analysis.Recommendations {
		fmt.Fprintf(rg.w, "%d. %s [%s]\n", i+1, sectionStyle.Render(rec.Description), rec.Category)
		fmt.Fprintf(rg.w, "   %s %s   %s %s   %s %s\n",
			labelStyle.Render("Estimated:"), FormatCurrency(rec.EstimatedAmount),
			labelStyle.Render("Savings:"), positiveStyle.Render(FormatCurrency(rec.PotentialSavings)),
			labelStyle.Render("Confidence:"), rec.Confidence.StringFixed(2))
		for _, doc := range rec.RequiredDocuments {
			fmt.Fprintf(rg.w, "   - %s\n", doc)
		}
	}
	fmt.Fprintln(rg.w)

	fmt.Fprintf(rg.w, "%s %s\n", labelStyle.Render("Aggregate potential savings:"), positiveStyle.Render(FormatCurrency(analysis.PotentialSavings)))
	verdict := "standard deduction"
	if analysis.StandardVsItemized.UseItemized {
		verdict = "itemized deductions"
	}
	fmt.Fprintf(rg.w, "%s use the %s (%s)\n", labelStyle.Render("Standard vs itemized:"), verdict,
		FormatCurrency(analysis.StandardVsItemized.DeductionAmount))
	return nil
}

func (rg *ReportGenerator) writeAnalysisCSV(analysis *domain.DeductionAnalysis) error {
	w := csv.NewWriter(rg.w)
	if err := w.Write([]string{"category", "description", "estimated_amount", "confidence", "potential_savings"}); err != nil {
		return err
	}
	for _, rec := range analysis.Recommendations {
		record := []string{
			rec.Category.String(),
			rec.Description,
			rec.EstimatedAmount.StringFixed(2),
			rec.Confidence.StringFixed(2),
			rec.PotentialSavings.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (rg *ReportGenerator) writeStrategyConsole(strategy *domain.StrategyAnalysis) error {
	fmt.Fprintln(rg.w, titleStyle.Render("DEDUCTION STRATEGY"))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Current tax:"), FormatCurrency(strategy.CurrentTax))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("New tax:    "), FormatCurrency(strategy.NewTax))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Savings:    "), positiveStyle.Render(FormatCurrency(strategy.Savings)))
	fmt.Fprintf(rg.w, "  %s %s\n", labelStyle.Render("Verdict:    "), string(strategy.Recommendation))
	return nil
}
