package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	positiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	negativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// FormatCurrency renders a decimal as $1,234.56.
func FormatCurrency(d decimal.Decimal) string {
	negative := d.LessThan(decimal.Zero)
	s := d.Abs().StringFixed(2)

	// Insert thousands separators into the integer part.
	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]
	var grouped []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, c)
	}

	if negative {
		return "-$" + string(grouped) + fracPart
	}
	return "$" + string(grouped) + fracPart
}

// FormatPercent renders a rate decimal (0.22) as a percentage (22.00%).
func FormatPercent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
