package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finwise/taxcore/internal/advisor"
	"github.com/finwise/taxcore/internal/calculation"
	"github.com/finwise/taxcore/internal/config"
	"github.com/finwise/taxcore/internal/domain"
	"github.com/finwise/taxcore/internal/output"
	"github.com/finwise/taxcore/internal/registry"
	"github.com/finwise/taxcore/pkg/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "taxcore %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "taxcore",
	Short: "Federal tax calculation and deduction advisory CLI",
	Long:  "Computes federal tax liability for an individual return and recommends deduction opportunities",
}

// newCore builds the registry/calculator/advisor trio with seeded law and a
// CLI logger.
func newCore(cmd *cobra.Command) (*calculation.Calculator, *advisor.Advisor, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")

	var opts []registry.Option
	if verbose {
		opts = append(opts, registry.WithLogger(logging.StdLogger{}))
	}
	reg := registry.New(opts...)
	if err := reg.Seed(cmd.Context()); err != nil {
		return nil, nil, fmt.Errorf("seed tax law: %w", err)
	}

	// Extra law configuration years can be layered on top of the seeds.
	if lawFile, _ := cmd.Flags().GetString("law-config"); lawFile != "" {
		parser := config.NewInputParser()
		law, err := parser.LoadTaxLawFile(lawFile)
		if err != nil {
			return nil, nil, err
		}
		if err := reg.Upsert(cmd.Context(), law); err != nil {
			return nil, nil, err
		}
	}

	calc := calculation.NewCalculator(reg)
	adv := advisor.New(calc)
	if verbose {
		calc.SetLogger(logging.StdLogger{})
		adv.SetLogger(logging.StdLogger{})
	}
	return calc, adv, nil
}

func loadReturn(filename string) (*domain.TaxReturn, error) {
	parser := config.NewInputParser()
	return parser.LoadTaxReturnFile(filename)
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [return-file]",
	Short: "Calculate federal tax liability for a return",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calc, _, err := newCore(cmd)
		if err != nil {
			return err
		}
		taxReturn, err := loadReturn(args[0])
		if err != nil {
			return err
		}
		result, err := calc.Compute(cmd.Context(), taxReturn)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return output.NewReportGenerator(os.Stdout).WriteCalculation(result, format)
	},
}

var adviseCmd = &cobra.Command{
	Use:   "advise [return-file]",
	Short: "Recommend deduction opportunities for a return",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, adv, err := newCore(cmd)
		if err != nil {
			return err
		}
		taxReturn, err := loadReturn(args[0])
		if err != nil {
			return err
		}
		analysis, err := adv.Analyze(cmd.Context(), taxReturn)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return output.NewReportGenerator(os.Stdout).WriteAnalysis(analysis, format)
	},
}

// parseProposed turns repeated --add category:amount flags into deductions.
func parseProposed(entries []string) ([]domain.ItemizedDeduction, error) {
	var proposed []domain.ItemizedDeduction
	for _, entry := range entries {
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid deduction %q, expected category:amount", entry)
		}
		amount, err := decimal.NewFromString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid amount in %q: %w", entry, err)
		}
		proposed = append(proposed, domain.ItemizedDeduction{
			Category:    domain.ItemizedCategory(parts[0]),
			Description: "proposed " + parts[0],
			Amount:      amount,
		})
	}
	return proposed, nil
}

var whatifCmd = &cobra.Command{
	Use:   "whatif [return-file]",
	Short: "Evaluate proposed deductions against the current return",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, adv, err := newCore(cmd)
		if err != nil {
			return err
		}
		taxReturn, err := loadReturn(args[0])
		if err != nil {
			return err
		}
		entries, _ := cmd.Flags().GetStringArray("add")
		proposed, err := parseProposed(entries)
		if err != nil {
			return err
		}
		strategy, err := adv.AnalyzeDeductionStrategy(cmd.Context(), taxReturn, proposed)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return output.NewReportGenerator(os.Stdout).WriteStrategy(strategy, format)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare an itemized total against the standard deduction",
	RunE: func(cmd *cobra.Command, args []string) error {
		calc, _, err := newCore(cmd)
		if err != nil {
			return err
		}
		year, _ := cmd.Flags().GetInt("year")
		statusFlag, _ := cmd.Flags().GetString("status")
		itemizedFlag, _ := cmd.Flags().GetString("itemized")

		status, err := domain.ParseFilingStatus(statusFlag)
		if err != nil {
			return err
		}
		itemized, err := decimal.NewFromString(itemizedFlag)
		if err != nil {
			return fmt.Errorf("invalid itemized total %q: %w", itemizedFlag, err)
		}

		comparison, err := calc.CompareItemizedVsStandard(cmd.Context(), year, status, itemized)
		if err != nil {
			return err
		}
		verdict := "standard deduction"
		if comparison.UseItemized {
			verdict = "itemized deductions"
		}
		fmt.Fprintf(os.Stdout, "Use the %s: deduction %s, savings %s\n",
			verdict, output.FormatCurrency(comparison.DeductionAmount), output.FormatCurrency(comparison.Savings))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("law-config", "", "Additional tax law configuration YAML to upsert")

	calculateCmd.Flags().String("format", "console", "Output format (console, json)")
	adviseCmd.Flags().String("format", "console", "Output format (console, json, csv)")
	whatifCmd.Flags().String("format", "console", "Output format (console, json)")
	whatifCmd.Flags().StringArray("add", nil, "Proposed deduction as category:amount (repeatable)")

	compareCmd.Flags().Int("year", 2024, "Tax year")
	compareCmd.Flags().String("status", "single", "Filing status")
	compareCmd.Flags().String("itemized", "0", "Itemized deduction total")

	rootCmd.AddCommand(calculateCmd, adviseCmd, whatifCmd, compareCmd, versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
