package memo

import (
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/revrec/internal/contract"
	"github.com/MrJamesThe3rd/revrec/internal/money"
)

const (
	plainStandard   = "ASC 606 - Revenue from Contracts with Customers"
	plainPreparedBy = "Automated Revenue Recognition System"
)

// Card is the short header shown for a memo in a list.
type Card struct {
	Standard           string
	ContractID         string
	AnalysisDate       string
	PreparedBy         string
	Provider           string
	Customer           string
	EffectiveDate      string
	EndDate            string
	TotalConsideration string
}

// StructuredCard builds the list header for a structured memo.
func StructuredCard(m contract.StructuredAuditMemo) Card {
	return Card{
		Standard:           m.Metadata.Standard,
		ContractID:         m.Metadata.ContractID,
		AnalysisDate:       m.Metadata.AnalysisDate,
		PreparedBy:         m.Metadata.PreparedBy,
		Provider:           m.ContractSummary.Provider,
		Customer:           m.ContractSummary.Customer,
		EffectiveDate:      m.ContractSummary.EffectiveDate,
		EndDate:            m.ContractSummary.EndDate,
		TotalConsideration: m.ContractSummary.TotalConsideration,
	}
}

// PlainCard synthesises a header for a plain memo from its contract. The
// provider is the file name's prefix up to the first underscore.
func PlainCard(m contract.AuditMemo, c contract.Contract) Card {
	contractID := c.ExternalID
	if m.ContractID != 0 {
		contractID = strconv.FormatInt(m.ContractID, 10)
	}

	provider, _, _ := strings.Cut(c.FileName, "_")

	return Card{
		Standard:           plainStandard,
		ContractID:         contractID,
		AnalysisDate:       m.CreatedAt.String(),
		PreparedBy:         plainPreparedBy,
		Provider:           provider,
		Customer:           c.CustomerName,
		EffectiveDate:      c.StartDate.String(),
		EndDate:            c.EndDate.String(),
		TotalConsideration: money.FormatNull(c.TotalValue, c.Currency),
	}
}

// Title is the one-line label used in memo lists.
func (c Card) Title() string {
	who := c.Customer
	if who == "" {
		who = c.Provider
	}

	if who == "" {
		return "Audit memo for contract " + c.ContractID
	}

	return "Audit memo: " + who
}

// Description is the second line used in memo lists.
func (c Card) Description() string {
	parts := []string{c.Standard}

	if c.AnalysisDate != "" {
		parts = append(parts, c.AnalysisDate)
	}

	if c.TotalConsideration != "" {
		parts = append(parts, c.TotalConsideration)
	}

	return strings.Join(parts, " · ")
}

// RenderPlain renders a plain memo: the synthesised header followed by the
// memo text.
func RenderPlain(m contract.AuditMemo, c contract.Contract) string {
	card := PlainCard(m, c)
	r := &renderer{currency: c.Currency}

	r.b.WriteString(titleStyle.Render("Audit Memo"))
	r.b.WriteString("\n")
	r.field("Standard", card.Standard)
	r.field("Contract ID", card.ContractID)
	r.field("Analysis Date", card.AnalysisDate)
	r.field("Prepared By", card.PreparedBy)

	r.section("", "Contract Summary")
	r.field("Provider", card.Provider)
	r.field("Customer", card.Customer)
	r.field("Effective Date", card.EffectiveDate)
	r.field("End Date", card.EndDate)
	r.field("Total Consideration", card.TotalConsideration)

	r.section("", "Memo")

	text := m.MemoText
	if text == "" {
		text = "No memo text available."
	}

	r.para(text)

	return r.b.String()
}
