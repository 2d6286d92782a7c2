package contract

import (
	"github.com/shopspring/decimal"
)

// Obligation is absent on entries created before obligations were tracked.
type Obligation struct {
	ID                *int64 `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	Type              string `json:"type,omitempty"`
	RecognitionMethod string `json:"recognition_method,omitempty"`
}

type RevenueScheduleEntry struct {
	ID           int64               `json:"id"`
	ContractID   int64               `json:"contract_id"`
	ObligationID *int64              `json:"obligation_id,omitempty"`
	PeriodStart  Date                `json:"period_start"`
	PeriodEnd    Date                `json:"period_end"`
	Amount       decimal.NullDecimal `json:"amount"`
	Recognized   bool                `json:"recognized"`
	CreatedAt    Date                `json:"created_at"`
	Obligation   *Obligation         `json:"obligation,omitempty"`
}

// ObligationName falls back to "Unknown Obligation".
func (e RevenueScheduleEntry) ObligationName() string {
	if e.Obligation == nil || e.Obligation.Name == "" {
		return "Unknown Obligation"
	}

	return e.Obligation.Name
}

// ObligationType falls back to "N/A".
func (e RevenueScheduleEntry) ObligationType() string {
	if e.Obligation == nil || e.Obligation.Type == "" {
		return "N/A"
	}

	return e.Obligation.Type
}

func (e RevenueScheduleEntry) amount() decimal.Decimal {
	if !e.Amount.Valid {
		return decimal.Zero
	}

	return e.Amount.Decimal
}

// TotalAmount sums every entry, counting missing amounts as zero.
func TotalAmount(entries []RevenueScheduleEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.amount())
	}

	return total
}

// RecognizedAmount sums only the entries already recognized.
func RecognizedAmount(entries []RevenueScheduleEntry) decimal.Decimal {
	total := decimal.Zero

	for _, e := range entries {
		if !e.Recognized {
			continue
		}

		total = total.Add(e.amount())
	}

	return total
}

// TotalTimeSaved sums time_saved_hours over processed contracts that report it.
func TotalTimeSaved(contracts []Contract) float64 {
	var hours float64

	for _, c := range contracts {
		if c.Status != StatusProcessed || c.TimeSavedHours == nil {
			continue
		}

		hours += *c.TimeSavedHours
	}

	return hours
}
