package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/revrec/internal/contract"
	"github.com/MrJamesThe3rd/revrec/internal/money"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

var statusColors = map[contract.Status]lipgloss.Color{
	contract.StatusUploaded:   lipgloss.Color("33"),
	contract.StatusProcessing: lipgloss.Color("220"),
	contract.StatusProcessed:  lipgloss.Color("46"),
	contract.StatusCompleted:  lipgloss.Color("46"),
	contract.StatusError:      lipgloss.Color("196"),
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})
}

// statusLabel colours the status label. Unknown statuses read as uploaded.
func statusLabel(s contract.Status) string {
	color, ok := statusColors[s]
	if !ok {
		color = statusColors[contract.StatusUploaded]
	}

	return lipgloss.NewStyle().Foreground(color).Render(s.Label())
}

func formatValue(amount decimal.NullDecimal, code, fallback string) string {
	if code == "" {
		code = fallback
	}

	return money.FormatNull(amount, code)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}

	return s
}
