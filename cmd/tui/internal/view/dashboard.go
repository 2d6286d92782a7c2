package view

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/revrec/internal/contract"
	"github.com/MrJamesThe3rd/revrec/internal/dashboard"
	"github.com/MrJamesThe3rd/revrec/internal/money"
)

type dashState int

const (
	dashStateLoading dashState = iota
	dashStateLoadError
	dashStateList
	dashStateDetail
	dashStateGoTo
	dashStateMemos
	dashStateMemo
)

// Poll generations are shared by every dashboard instance so a tick from a
// dashboard that was left can never be mistaken for one of the current one.
var pollGenerations atomic.Uint64

func nextGeneration() uint64 {
	return pollGenerations.Add(1)
}

type DashboardOptions struct {
	PollInterval   time.Duration
	PageSize       int
	Timeout        time.Duration
	Currency       string
	MemoMaxPeriods int
}

type DashboardModel struct {
	CommonModel
	loader  *dashboard.Loader
	session *dashboard.Session
	opts    DashboardOptions

	state   dashState
	gen     uint64
	ticking bool
	notice  string
	loadErr error

	contracts table.Model
	schedule  table.Model
	paginator paginator.Model
	memos     list.Model
	memoView  viewport.Model
	form      *huh.Form
	spinner   spinner.Model
}

func NewDashboardModel(loader *dashboard.Loader, opts DashboardOptions) DashboardModel {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 3 * time.Second
	}

	if opts.Currency == "" {
		opts.Currency = money.DefaultCurrency
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	p := paginator.New()
	p.Type = paginator.Arabic

	memos := list.New(nil, list.NewDefaultDelegate(), 80, 16)
	memos.Title = "Audit Memos"
	memos.SetShowStatusBar(false)
	memos.SetFilteringEnabled(false)
	memos.SetShowHelp(false)

	return DashboardModel{
		loader:    loader,
		session:   dashboard.NewSession(opts.PageSize),
		opts:      opts,
		state:     dashStateLoading,
		gen:       nextGeneration(),
		contracts: newContractsTable(),
		schedule:  newScheduleTable(),
		paginator: p,
		memos:     memos,
		memoView:  viewport.New(100, 30),
		spinner:   s,
	}
}

func newContractsTable() table.Model {
	columns := []table.Column{
		{Title: "Customer", Width: 26},
		{Title: "File", Width: 34},
		{Title: "Value", Width: 16},
		{Title: "Start", Width: 11},
		{Title: "End", Width: 11},
		{Title: "Status", Width: 11},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	return t
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return s
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	switch m.state {
	case dashStateLoadError:
		return "r: retry | Esc: back"
	case dashStateList:
		return "Enter: view contract | r: refresh | Esc: back"
	case dashStateDetail:
		return "←/→: page | g: go to page | m: memos | r: reload | Esc: contracts"
	case dashStateGoTo:
		return "Enter: go | Esc: cancel"
	case dashStateMemos:
		return "Enter: open memo | Esc: contract"
	case dashStateMemo:
		return "↑/↓: scroll | Esc: memos"
	}

	return "Esc: back"
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadContractsCmd(true))
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case contractsMsg:
		return m.handleContracts(msg)

	case pollTickMsg:
		if msg.gen != m.gen {
			return m, nil
		}

		m.ticking = false

		return m, m.loadContractsCmd(false)

	case detailMsg:
		if msg.gen != m.gen {
			return m, nil
		}

		if !m.session.Apply(msg.detail) {
			slog.Debug("discarded stale contract detail", "token", msg.detail.Token)
			return m, nil
		}

		m.syncSchedule()
		m.syncMemos()

		return m, nil

	case spinner.TickMsg:
		if m.state != dashStateLoading && !m.session.Loading() {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.contracts.SetHeight(max(msg.Height-14, 5))
		m.memos.SetSize(msg.Width-4, max(msg.Height-8, 6))
		m.memoView.Width = msg.Width - 4
		m.memoView.Height = max(msg.Height-6, 6)

		return m, nil
	}

	switch m.state {
	case dashStateLoading:
		return m.updateLoading(msg)
	case dashStateLoadError:
		return m.updateLoadError(msg)
	case dashStateList:
		return m.updateList(msg)
	case dashStateDetail:
		return m.updateDetail(msg)
	case dashStateGoTo:
		return m.updateGoTo(msg)
	case dashStateMemos:
		return m.updateMemos(msg)
	case dashStateMemo:
		return m.updateMemo(msg)
	}

	return m, nil
}

func (m DashboardModel) handleContracts(msg contractsMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}

	if msg.err != nil {
		if msg.initial {
			m.state = dashStateLoadError
			m.loadErr = msg.err

			return m, nil
		}

		m.notice = "Failed to refresh contracts"
		cmd := m.schedulePoll()

		return m, cmd
	}

	m.notice = ""
	m.loadErr = nil
	m.session.SetContracts(msg.contracts)
	m.refreshContractsTable()

	if m.state == dashStateLoading || m.state == dashStateLoadError {
		m.state = dashStateList
	}

	cmd := m.schedulePoll()

	return m, cmd
}

// leave stops polling for good and hands control back to the menu.
func (m DashboardModel) leave() (tea.Model, tea.Cmd) {
	m.gen = nextGeneration()
	m.ticking = false

	return m, Back
}

func (m DashboardModel) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.leave()
	}

	return m, nil
}

func (m DashboardModel) updateLoadError(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m.leave()
	case "r":
		m.state = dashStateLoading
		return m, tea.Batch(m.spinner.Tick, m.loadContractsCmd(true))
	}

	return m, nil
}

func (m DashboardModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m.leave()
		case "r":
			return m, m.loadContractsCmd(false)
		case "enter":
			return m.selectContract()
		}
	}

	var cmd tea.Cmd
	m.contracts, cmd = m.contracts.Update(msg)

	return m, cmd
}

func (m DashboardModel) selectContract() (tea.Model, tea.Cmd) {
	cs := m.session.Contracts()

	idx := m.contracts.Cursor()
	if idx < 0 || idx >= len(cs) {
		return m, nil
	}

	return m.load(cs[idx])
}

// load selects c and starts fetching its detail. Anything still in flight
// for an earlier selection is discarded when it lands.
func (m DashboardModel) load(c contract.Contract) (tea.Model, tea.Cmd) {
	token := m.session.Select(c)
	m.state = dashStateDetail
	m.contracts.Blur()
	m.syncSchedule()
	m.syncMemos()

	return m, tea.Batch(m.spinner.Tick, m.loadDetailCmd(token, c))
}

func (m *DashboardModel) refreshContractsTable() {
	rows := make([]table.Row, 0, len(m.session.Contracts()))

	for _, c := range m.session.Contracts() {
		rows = append(rows, table.Row{
			c.DisplayName(),
			c.FileName,
			FormatAmount(c.TotalValue, currencyOr(c.Currency, m.opts.Currency)),
			c.StartDate.String(),
			c.EndDate.String(),
			c.Status.Label(),
		})
	}

	m.contracts.SetRows(rows)
}

// schedulePoll arms the next refresh tick. Only one tick is outstanding at a
// time, and none while the list is empty.
func (m *DashboardModel) schedulePoll() tea.Cmd {
	if m.ticking || !m.session.HasContracts() {
		return nil
	}

	m.ticking = true
	gen := m.gen

	return tea.Tick(m.opts.PollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

func (m DashboardModel) View() string {
	switch m.state {
	case dashStateLoading:
		return lipgloss.NewStyle().Padding(2).Render(m.spinner.View() + " Loading contracts...")
	case dashStateLoadError:
		return lipgloss.NewStyle().Padding(2).Render(
			errorStyle.Render("Failed to load contracts") + "\n\n" +
				faintStyle.Render(m.loadErr.Error()) + "\n\n(r to try again, Esc to go back)",
		)
	case dashStateList:
		return m.viewList()
	case dashStateDetail:
		return m.viewDetail()
	case dashStateGoTo:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.viewDetail(),
			lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Render(m.form.View()),
		)
	case dashStateMemos:
		return lipgloss.NewStyle().Padding(1).Render(m.memos.View())
	case dashStateMemo:
		return lipgloss.NewStyle().Padding(1).Render(m.memoView.View())
	}

	return ""
}

func (m DashboardModel) viewList() string {
	header := headingStyle.Render("Contracts")

	if saved := m.session.TotalTimeSaved(); saved > 0 {
		header += "  " + contract.TimeSavedCaption(saved)
	}

	var body string
	if !m.session.HasContracts() {
		body = faintStyle.Render("No contracts yet. Upload one from the menu to get started.")
	} else {
		body = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.contracts.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		body,
	)

	if m.notice != "" {
		content = errorStyle.Render(m.notice) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type contractsMsg struct {
	gen       uint64
	initial   bool
	contracts []contract.Contract
	err       error
}

type pollTickMsg struct {
	gen uint64
}

type detailMsg struct {
	gen    uint64
	detail dashboard.Detail
}

func (m DashboardModel) loadContractsCmd(initial bool) tea.Cmd {
	loader := m.loader
	gen := m.gen
	timeout := m.opts.Timeout

	return func() tea.Msg {
		ctx, cancel := RequestCtx(timeout)
		defer cancel()

		cs, err := loader.Contracts(ctx, initial)

		return contractsMsg{gen: gen, initial: initial, contracts: cs, err: err}
	}
}

func (m DashboardModel) loadDetailCmd(token dashboard.Token, c contract.Contract) tea.Cmd {
	loader := m.loader
	gen := m.gen
	timeout := m.opts.Timeout

	return func() tea.Msg {
		ctx, cancel := RequestCtx(timeout)
		defer cancel()

		return detailMsg{gen: gen, detail: loader.Load(ctx, token, c)}
	}
}
