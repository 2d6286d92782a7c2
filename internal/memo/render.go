// Package memo renders audit memos as read-only text.
package memo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/revrec/internal/contract"
	"github.com/MrJamesThe3rd/revrec/internal/money"
)

const DefaultMaxPeriods = 10

type Options struct {
	// MaxPeriods caps the schedule rollup. Zero means DefaultMaxPeriods.
	MaxPeriods int
	// Currency is used when the memo does not name one.
	Currency string
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Faint(true)
	noteStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
)

type renderer struct {
	b        strings.Builder
	currency string
}

// Render writes every section of m.
func Render(m contract.StructuredAuditMemo, opts Options) string {
	if opts.MaxPeriods <= 0 {
		opts.MaxPeriods = DefaultMaxPeriods
	}

	r := &renderer{currency: m.ContractSummary.Currency}
	if r.currency == "" {
		r.currency = opts.Currency
	}

	r.header(m.Metadata)
	r.section(m.Purpose.Title, "Purpose")
	r.para(m.Purpose.Description)
	r.summary(m.ContractSummary)
	r.steps(m.Steps)
	r.schedule(m.RevenueSchedule, opts.MaxPeriods)
	r.assessment(m.AccountingAssessment)
	r.risks(m.RiskAssessment)
	r.conclusion(m.Conclusion)

	return r.b.String()
}

// PeriodNote is the overflow note for a rollup capped at maxPeriods. It is
// empty unless total exceeds the cap.
func PeriodNote(shown, total, maxPeriods int) string {
	if total <= maxPeriods {
		return ""
	}

	return fmt.Sprintf("Showing %d of %d total periods", shown, total)
}

func (r *renderer) amount(d decimal.Decimal) string {
	return money.Format(d, r.currency)
}

func (r *renderer) header(md contract.MemoMetadata) {
	r.b.WriteString(titleStyle.Render("ASC 606 Revenue Recognition Memo"))
	r.b.WriteString("\n")
	r.field("Standard", md.Standard)
	r.field("Contract ID", md.ContractID)
	r.field("Analysis Date", md.AnalysisDate)
	r.field("Prepared By", md.PreparedBy)
	r.field("Version", md.Version)
}

func (r *renderer) summary(s contract.ContractSummary) {
	r.section(s.Title, "Contract Summary")
	r.field("Provider", s.Provider)
	r.field("Customer", s.Customer)
	r.field("Contract ID", s.ContractID)
	r.field("Effective Date", s.EffectiveDate)
	r.field("End Date", s.EndDate)
	r.field("Total Consideration", s.TotalConsideration)
	r.field("Currency", s.Currency)
	r.para(s.Description)
}

func (r *renderer) steps(s contract.ASC606Steps) {
	r.section(s.Title, "ASC 606 Five-Step Analysis")

	r.step(s.Contract.Title, "Step 1: Identify the Contract", s.Contract.Description)
	r.list(s.Contract.Criteria)

	r.step(s.Obligations.Title, "Step 2: Identify Performance Obligations", s.Obligations.Description)
	if len(s.Obligations.Obligations) > 0 {
		t := newTable("Obligation", "Type", "Method", "SSP", "Allocated", "Trigger")
		for _, o := range s.Obligations.Obligations {
			t.Row(o.Name, o.Type, o.RecognitionMethod, r.amount(o.SSP), r.amount(o.AllocatedValue), o.RecognitionTrigger)
		}

		r.table(t)
	}

	r.step(s.Price.Title, "Step 3: Determine the Transaction Price", s.Price.Description)
	r.field("Total Price", s.Price.TotalPrice)
	r.notes("Variable Considerations", s.Price.VariableConsiderations)
	r.notes("Discounts", s.Price.Discounts)

	r.step(s.Allocation.Title, "Step 4: Allocate the Transaction Price", s.Allocation.Description)
	if len(s.Allocation.Allocations) > 0 {
		t := newTable("Obligation", "SSP", "Allocated", "%")
		for _, a := range s.Allocation.Allocations {
			t.Row(a.Obligation, r.amount(a.SSP), r.amount(a.AllocatedAmount), strconv.FormatFloat(a.Percentage, 'f', 1, 64)+"%")
		}

		r.table(t)
	}

	r.step(s.Recognition.Title, "Step 5: Recognize Revenue", s.Recognition.Description)
	if len(s.Recognition.Details) > 0 {
		t := newTable("Obligation", "Method", "Timing", "Trigger")
		for _, d := range s.Recognition.Details {
			t.Row(d.Obligation, d.Method, d.Timing, d.Trigger)
		}

		r.table(t)
	}
}

func (r *renderer) schedule(s contract.ScheduleRollup, maxPeriods int) {
	r.section(s.Title, "Revenue Schedule")
	r.para(s.Description)

	total := s.TotalPeriods
	if total == 0 {
		total = len(s.Periods)
	}

	periods := s.Periods
	if len(periods) > maxPeriods {
		periods = periods[:maxPeriods]
	}

	if len(periods) > 0 {
		t := newTable("Period", "Amount", "Methods", "Status")
		for _, p := range periods {
			t.Row(p.Period, r.amount(p.TotalAmount), strings.Join(p.Methods, ", "), strings.Join(p.Statuses, ", "))
		}

		r.table(t)
	}

	if note := PeriodNote(len(periods), total, maxPeriods); note != "" {
		r.b.WriteString(noteStyle.Render(note))
		r.b.WriteString("\n")
	}
}

func (r *renderer) assessment(a contract.AccountingAssessment) {
	r.section(a.Title, "Accounting Assessment")
	r.sublist(a.Compliance.Title, "Compliance", a.Compliance.Items)
	r.sublist(a.Judgments.Title, "Key Judgments", a.Judgments.Items)
}

func (r *renderer) risks(ra contract.RiskAssessment) {
	r.section(ra.Title, "Risk Assessment")

	if len(ra.Areas) == 0 {
		return
	}

	t := newTable("Area", "Level", "Mitigation")
	for _, a := range ra.Areas {
		t.Row(a.Area, strings.ToUpper(a.Level), a.Mitigation)
	}

	r.table(t)
}

func (r *renderer) conclusion(c contract.Conclusion) {
	r.section(c.Title, "Conclusion")
	r.para(c.Summary)
	r.field("Total Revenue", c.TotalRevenue)
	r.field("Recognition Period", c.RecognitionPeriod)
	r.field("Memo Date", c.MemoDate)
	r.field("Prepared By", c.PreparedBy)
	r.field("Reviewed By", c.ReviewedBy)
}

func (r *renderer) section(title, fallback string) {
	if title == "" {
		title = fallback
	}

	r.b.WriteString("\n")
	r.b.WriteString(sectionStyle.Render(title))
	r.b.WriteString("\n")
}

func (r *renderer) step(title, fallback, description string) {
	if title == "" {
		title = fallback
	}

	r.b.WriteString("\n")
	r.b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	r.b.WriteString("\n")
	r.para(description)
}

func (r *renderer) field(label, value string) {
	if value == "" {
		return
	}

	r.b.WriteString(labelStyle.Render(label + ":"))
	r.b.WriteString(" ")
	r.b.WriteString(value)
	r.b.WriteString("\n")
}

func (r *renderer) para(text string) {
	if text == "" {
		return
	}

	r.b.WriteString(text)
	r.b.WriteString("\n")
}

func (r *renderer) list(items []string) {
	for _, item := range items {
		r.b.WriteString("  • ")
		r.b.WriteString(item)
		r.b.WriteString("\n")
	}
}

func (r *renderer) sublist(title, fallback string, items []string) {
	if len(items) == 0 {
		return
	}

	if title == "" {
		title = fallback
	}

	r.b.WriteString(labelStyle.Render(title))
	r.b.WriteString("\n")
	r.list(items)
}

func (r *renderer) notes(label string, notes []contract.NamedNote) {
	if len(notes) == 0 {
		return
	}

	r.b.WriteString(labelStyle.Render(label))
	r.b.WriteString("\n")

	for _, n := range notes {
		r.b.WriteString("  • ")
		r.b.WriteString(n.Name)

		if n.Description != "" {
			r.b.WriteString(": ")
			r.b.WriteString(n.Description)
		}

		r.b.WriteString("\n")
	}
}

func (r *renderer) table(t *table.Table) {
	r.b.WriteString(t.Render())
	r.b.WriteString("\n")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}

			return lipgloss.NewStyle().Padding(0, 1)
		})
}
