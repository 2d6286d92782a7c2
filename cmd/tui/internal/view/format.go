package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/revrec/internal/contract"
	"github.com/MrJamesThe3rd/revrec/internal/money"
)

// RequestCtx bounds a backend call by timeout. A zero timeout leaves the call
// unbounded.
func RequestCtx(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}

	return context.WithTimeout(context.Background(), timeout)
}

var badgeColors = map[contract.Status]lipgloss.Color{
	contract.StatusUploaded:   lipgloss.Color("33"),
	contract.StatusProcessing: lipgloss.Color("220"),
	contract.StatusProcessed:  lipgloss.Color("46"),
	contract.StatusCompleted:  lipgloss.Color("46"),
	contract.StatusError:      lipgloss.Color("196"),
}

// StatusBadge renders a contract status as a coloured pill. Unknown statuses
// look like uploaded ones.
func StatusBadge(s contract.Status) string {
	color, ok := badgeColors[s]
	if !ok {
		color = badgeColors[contract.StatusUploaded]
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(color).
		Padding(0, 1).
		Render(s.Label())
}

func currencyOr(code, fallback string) string {
	if code != "" {
		return code
	}

	return fallback
}

func FormatAmount(amount decimal.NullDecimal, code string) string {
	return money.FormatNull(amount, code)
}
