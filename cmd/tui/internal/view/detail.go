package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/revrec/internal/contract"
	"github.com/MrJamesThe3rd/revrec/internal/memo"
	"github.com/MrJamesThe3rd/revrec/internal/money"
)

func newScheduleTable() table.Model {
	columns := []table.Column{
		{Title: "Period", Width: 25},
		{Title: "Name", Width: 30},
		{Title: "Type", Width: 14},
		{Title: "Amount", Width: 16},
		{Title: "Status", Width: 11},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())

	return t
}

// memoItem is one entry of the memo list. The body is rendered up front so
// opening a memo is instant.
type memoItem struct {
	card memo.Card
	body string
}

func (i memoItem) Title() string       { return i.card.Title() }
func (i memoItem) Description() string { return i.card.Description() }
func (i memoItem) FilterValue() string { return i.card.Customer }

func (m DashboardModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.session.ClearSelection()
		m.state = dashStateList
		m.contracts.Focus()

		return m, nil
	case "left", "h":
		m.session.PrevPage()
		m.syncSchedule()
	case "right", "l":
		m.session.NextPage()
		m.syncSchedule()
	case "g":
		if m.session.Loading() || m.session.Page().Pages < 2 {
			return m, nil
		}

		m.form = m.buildGoToForm()
		m.state = dashStateGoTo

		return m, m.form.Init()
	case "m":
		if len(m.memos.Items()) == 0 {
			return m, nil
		}

		m.state = dashStateMemos
	case "r":
		if c, ok := m.session.Selected(); ok {
			return m.load(c)
		}
	}

	return m, nil
}

func (m DashboardModel) buildGoToForm() *huh.Form {
	pages := m.session.Page().Pages

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("page").
				Title("Go to page").
				Description(fmt.Sprintf("1 to %d", pages)).
				Placeholder(strconv.Itoa(m.session.Page().Number)).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > pages {
						return fmt.Errorf("enter a page between 1 and %d", pages)
					}

					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m DashboardModel) updateGoTo(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = dashStateDetail
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	n, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("page")))
	m.session.SetPage(n)
	m.syncSchedule()
	m.state = dashStateDetail
	m.form = nil

	return m, nil
}

func (m DashboardModel) updateMemos(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = dashStateDetail
			return m, nil
		case tea.KeyEnter:
			item, ok := m.memos.SelectedItem().(memoItem)
			if !ok {
				return m, nil
			}

			m.memoView.SetContent(item.body)
			m.memoView.GotoTop()
			m.state = dashStateMemo

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.memos, cmd = m.memos.Update(msg)

	return m, cmd
}

func (m DashboardModel) updateMemo(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = dashStateMemos
		return m, nil
	}

	var cmd tea.Cmd
	m.memoView, cmd = m.memoView.Update(msg)

	return m, cmd
}

func (m DashboardModel) currency() string {
	c, _ := m.session.Selected()
	return currencyOr(c.Currency, m.opts.Currency)
}

// syncSchedule mirrors the session's current page into the schedule table
// and the paginator.
func (m *DashboardModel) syncSchedule() {
	p := m.session.Page()
	cur := m.currency()

	m.paginator.PerPage = m.session.PageSize()
	m.paginator.SetTotalPages(p.Total)
	m.paginator.Page = max(p.Number-1, 0)

	entries := m.session.PageEntries()
	rows := make([]table.Row, 0, len(entries))

	for _, e := range entries {
		status := "Pending"
		if e.Recognized {
			status = "Recognized"
		}

		rows = append(rows, table.Row{
			e.PeriodStart.String() + " to " + e.PeriodEnd.String(),
			e.ObligationName(),
			e.ObligationType(),
			FormatAmount(e.Amount, cur),
			status,
		})
	}

	m.schedule.SetRows(rows)
	m.schedule.SetHeight(max(len(rows), 1))
}

// syncMemos rebuilds the memo list. Structured memos win; plain memos are
// listed only when no structured memo could be loaded.
func (m *DashboardModel) syncMemos() {
	c, _ := m.session.Selected()
	cur := m.currency()

	var items []list.Item

	if structured := m.session.StructuredMemos(); len(structured) > 0 {
		for _, sm := range structured {
			items = append(items, memoItem{
				card: memo.StructuredCard(sm),
				body: memo.Render(sm, memo.Options{MaxPeriods: m.opts.MemoMaxPeriods, Currency: cur}),
			})
		}
	} else {
		for _, am := range m.session.Memos() {
			items = append(items, memoItem{
				card: memo.PlainCard(am, c),
				body: memo.RenderPlain(am, c),
			})
		}
	}

	m.memos.SetItems(items)
	m.memos.ResetSelected()
}

func (m DashboardModel) viewDetail() string {
	c, ok := m.session.Selected()
	if !ok {
		return lipgloss.NewStyle().Padding(2).Render(
			"No contract selected\n\n" + faintStyle.Render("Select a contract from the list to view details"),
		)
	}

	sections := []string{m.viewContract(c), ""}

	switch {
	case m.session.Loading():
		sections = append(sections, m.spinner.View()+" Loading revenue schedule...")
	case m.session.Err() != nil:
		sections = append(sections,
			errorStyle.Render("Failed to load contract details"),
			faintStyle.Render(m.session.Err().Error()),
			"",
			"(r to try again)",
		)
	default:
		sections = append(sections, m.viewSchedule(), "", m.viewMemoSummary())
	}

	if m.notice != "" {
		sections = append([]string{errorStyle.Render(m.notice)}, sections...)
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m DashboardModel) viewContract(c contract.Contract) string {
	badge := StatusBadge(c.Status)
	if c.Status == contract.StatusProcessed {
		badge += " " + successStyle.Render("Ready")
	}

	lines := []string{
		headingStyle.Render("Contract Details") + "  " + badge,
		"",
		"Customer:        " + c.DisplayName(),
		"Total Value:     " + FormatAmount(c.TotalValue, m.currency()) + faintStyle.Render(" (Excluding discounts)"),
		"Contract Period: " + c.StartDate.String() + " to " + c.EndDate.String(),
		"File:            " + orNA(c.FileName),
	}

	if c.TimeSavedHours != nil && *c.TimeSavedHours > 0 {
		lines = append(lines, "Time Saved:      "+contract.TimeSavedIcon(*c.TimeSavedHours)+" "+contract.FormatTimeSaved(*c.TimeSavedHours))
	}

	return strings.Join(lines, "\n")
}

func (m DashboardModel) viewSchedule() string {
	title := headingStyle.Render("Revenue Schedule")

	if len(m.session.Schedules()) == 0 {
		return title + "\n\n" + "No revenue schedule available\n" +
			faintStyle.Render("Revenue schedule will appear after contract processing")
	}

	cur := m.currency()
	totals := fmt.Sprintf("Total: %s   Recognized: %s",
		formatDecimal(m.session.TotalAmount(), cur),
		formatDecimal(m.session.RecognizedAmount(), cur),
	)

	out := []string{
		title + "   " + faintStyle.Render(totals),
		"",
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.schedule.View()),
	}

	p := m.session.Page()
	if p.Pages > 1 {
		out = append(out, faintStyle.Render(p.Summary())+"   Page "+m.paginator.View())
	}

	return strings.Join(out, "\n")
}

func (m DashboardModel) viewMemoSummary() string {
	n := len(m.memos.Items())
	if n == 0 {
		return headingStyle.Render("Audit Memos") + "\n\n" + faintStyle.Render("No audit memos available")
	}

	label := "memo"
	if n > 1 {
		label = "memos"
	}

	return headingStyle.Render("Audit Memos") + "\n\n" + fmt.Sprintf("%d %s available (m to browse)", n, label)
}

func formatDecimal(d decimal.Decimal, code string) string {
	return money.Format(d, code)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}

	return s
}
