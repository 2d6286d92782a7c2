package view

import (
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/revrec/internal/api"
	"github.com/MrJamesThe3rd/revrec/internal/api/apitest"
	"github.com/MrJamesThe3rd/revrec/internal/contract"
	"github.com/MrJamesThe3rd/revrec/internal/dashboard"
)

func newTestDashboard(b *apitest.Backend) DashboardModel {
	loader := dashboard.NewLoader(api.New(b.URL(), 0))

	return NewDashboardModel(loader, DashboardOptions{PollInterval: time.Hour, PageSize: 2})
}

func step(t *testing.T, m DashboardModel, msg tea.Msg) (DashboardModel, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	dm, ok := next.(DashboardModel)
	require.True(t, ok)

	return dm, cmd
}

func TestDashboard_PollsOnlyWithContracts(t *testing.T) {
	b := apitest.New(t)
	m := newTestDashboard(b)

	m, cmd := step(t, m, m.loadContractsCmd(true)())
	assert.Equal(t, dashStateList, m.state)
	assert.Nil(t, cmd)
	assert.False(t, m.ticking)

	b.SetContracts(contract.Contract{ID: 1, ExternalID: "a", Status: contract.StatusProcessing})

	m, cmd = step(t, m, m.loadContractsCmd(false)())
	assert.NotNil(t, cmd)
	assert.True(t, m.ticking)
	assert.Len(t, m.session.Contracts(), 1)

	// A manual refresh while a tick is armed must not start a second chain.
	m, cmd = step(t, m, m.loadContractsCmd(false)())
	assert.Nil(t, cmd)

	m, cmd = step(t, m, pollTickMsg{gen: m.gen})
	assert.False(t, m.ticking)
	require.NotNil(t, cmd)

	refresh, ok := cmd().(contractsMsg)
	require.True(t, ok)
	assert.False(t, refresh.initial)
	assert.NoError(t, refresh.err)
}

func TestDashboard_LeaveStopsPolling(t *testing.T) {
	b := apitest.New(t)
	b.SetContracts(contract.Contract{ID: 1, ExternalID: "a"})

	m := newTestDashboard(b)
	m, _ = step(t, m, m.loadContractsCmd(true)())

	old := m.gen
	stale := m.loadContractsCmd(false)()

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, BackMsg{}, cmd())
	assert.NotEqual(t, old, m.gen)

	hits := b.Hits("/contracts")

	_, cmd = step(t, m, pollTickMsg{gen: old})
	assert.Nil(t, cmd)

	_, cmd = step(t, m, stale)
	assert.Nil(t, cmd)
	assert.Equal(t, hits, b.Hits("/contracts"))

	// A fresh dashboard never accepts ticks addressed to an earlier one.
	next := newTestDashboard(b)
	assert.NotEqual(t, old, next.gen)
}

func TestDashboard_FailedRefreshKeepsList(t *testing.T) {
	b := apitest.New(t)
	b.SetContracts(contract.Contract{ID: 1, ExternalID: "a"}, contract.Contract{ID: 2, ExternalID: "b"})

	m := newTestDashboard(b)
	m, _ = step(t, m, m.loadContractsCmd(true)())
	require.Len(t, m.session.Contracts(), 2)

	b.Fail("/contracts", http.StatusServiceUnavailable)

	m, _ = step(t, m, m.loadContractsCmd(false)())
	assert.Equal(t, dashStateList, m.state)
	assert.Equal(t, "Failed to refresh contracts", m.notice)
	assert.Len(t, m.session.Contracts(), 2)
	assert.Contains(t, m.View(), "Failed to refresh contracts")
}

func TestDashboard_FailedInitialLoadOffersRetry(t *testing.T) {
	b := apitest.New(t)
	b.Fail("/contracts", http.StatusInternalServerError)

	m := newTestDashboard(b)
	m, _ = step(t, m, m.loadContractsCmd(true)())
	assert.Equal(t, dashStateLoadError, m.state)
	assert.ErrorIs(t, m.loadErr, dashboard.ErrListLoad)
	assert.Contains(t, m.View(), "Failed to load contracts")

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, dashStateLoading, m.state)
	assert.NotNil(t, cmd)
}

func TestDashboard_DiscardsStaleDetail(t *testing.T) {
	a := contract.Contract{ID: 1, ExternalID: "a", CustomerName: "ACME Global Inc."}
	c := contract.Contract{ID: 2, ExternalID: "b", CustomerName: "Omega Biopharma Ltd."}

	b := apitest.New(t)
	b.SetContracts(a, c)
	b.SetMemos("a", contract.AuditMemo{ID: 10, MemoText: "memo for a"})
	b.SetMemos("b", contract.AuditMemo{ID: 20, MemoText: "memo for b"})

	m := newTestDashboard(b)
	m, _ = step(t, m, m.loadContractsCmd(true)())

	next, _ := m.load(a)
	m = next.(DashboardModel)
	lateA := m.loadDetailCmd(m.session.Token(), a)()

	next, _ = m.load(c)
	m = next.(DashboardModel)
	forB := m.loadDetailCmd(m.session.Token(), c)()

	m, _ = step(t, m, lateA)
	assert.True(t, m.session.Loading())
	assert.Empty(t, m.session.Memos())

	m, _ = step(t, m, forB)
	assert.False(t, m.session.Loading())
	require.Len(t, m.memos.Items(), 1)
	assert.Equal(t, "Audit memo: Omega Biopharma Ltd.", m.memos.Items()[0].(memoItem).Title())
}

func TestDashboard_SchedulePaging(t *testing.T) {
	a := contract.Contract{ID: 1, ExternalID: "a"}

	b := apitest.New(t)
	b.SetContracts(a)
	b.SetSchedules("a",
		contract.RevenueScheduleEntry{Recognized: true},
		contract.RevenueScheduleEntry{},
		contract.RevenueScheduleEntry{},
	)

	m := newTestDashboard(b)
	m, _ = step(t, m, m.loadContractsCmd(true)())

	next, _ := m.load(a)
	m = next.(DashboardModel)
	m, _ = step(t, m, m.loadDetailCmd(m.session.Token(), a)())

	assert.Len(t, m.schedule.Rows(), 2)
	assert.Contains(t, m.View(), "Showing 1 to 2 of 3 entries")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.session.Page().Number)
	assert.Equal(t, 1, m.paginator.Page)
	assert.Len(t, m.schedule.Rows(), 1)

	// Paging past the end stays on the last page.
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.session.Page().Number)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, dashStateList, m.state)
	_, ok := m.session.Selected()
	assert.False(t, ok)
}
