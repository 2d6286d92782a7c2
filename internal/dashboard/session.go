package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/revrec/internal/contract"
	"github.com/MrJamesThe3rd/revrec/internal/pagination"
)

// Token identifies one selection. Every Select issues a larger token than the last.
type Token uint64

// Detail is everything loaded for one selected contract.
type Detail struct {
	Token      Token
	Schedules  []contract.RevenueScheduleEntry
	Memos      []contract.AuditMemo
	Structured []contract.StructuredAuditMemo
	Err        error
}

// Session is the client-side view of the contract list and the current
// selection. It is not safe for concurrent use; drive it from the UI loop.
type Session struct {
	contracts []contract.Contract

	selected *contract.Contract
	token    Token
	loading  bool
	detail   Detail

	page     int
	pageSize int
}

func NewSession(pageSize int) *Session {
	if pageSize < 1 {
		pageSize = 10
	}

	return &Session{page: 1, pageSize: pageSize}
}

// SetContracts replaces the list. The selected contract's record is refreshed
// in place when it is still present; its detail state is kept.
func (s *Session) SetContracts(cs []contract.Contract) {
	s.contracts = cs

	if s.selected == nil {
		return
	}

	for _, c := range cs {
		if c.ID == s.selected.ID {
			s.selected = &c
			return
		}
	}
}

func (s *Session) Contracts() []contract.Contract {
	return s.contracts
}

// HasContracts gates the refresh poll.
func (s *Session) HasContracts() bool {
	return len(s.contracts) > 0
}

// Select makes c the current selection. Detail state from the previous
// selection is dropped, the schedule page returns to 1 and a fresh token is
// issued for the loads that follow.
func (s *Session) Select(c contract.Contract) Token {
	s.token++
	s.selected = &c
	s.loading = true
	s.detail = Detail{Token: s.token}
	s.page = 1

	return s.token
}

// ClearSelection drops the selection and invalidates in-flight loads.
func (s *Session) ClearSelection() {
	s.token++
	s.selected = nil
	s.loading = false
	s.detail = Detail{Token: s.token}
	s.page = 1
}

func (s *Session) Selected() (contract.Contract, bool) {
	if s.selected == nil {
		return contract.Contract{}, false
	}

	return *s.selected, true
}

func (s *Session) Token() Token {
	return s.token
}

func (s *Session) Loading() bool {
	return s.loading
}

// Apply stores d if it belongs to the current selection. Results for an
// abandoned selection are discarded and Apply returns false.
func (s *Session) Apply(d Detail) bool {
	if s.selected == nil || d.Token != s.token {
		return false
	}

	s.detail = d
	s.loading = false
	s.page = 1

	return true
}

func (s *Session) Schedules() []contract.RevenueScheduleEntry {
	return s.detail.Schedules
}

func (s *Session) Memos() []contract.AuditMemo {
	return s.detail.Memos
}

func (s *Session) StructuredMemos() []contract.StructuredAuditMemo {
	return s.detail.Structured
}

// Err is the detail load failure for the current selection, if any.
func (s *Session) Err() error {
	return s.detail.Err
}

func (s *Session) PageSize() int {
	return s.pageSize
}

// Page is the current schedule page, clamped to the loaded schedule.
func (s *Session) Page() pagination.Page {
	return pagination.At(len(s.detail.Schedules), s.page, s.pageSize)
}

// SetPage jumps to page n, clamped into range, and returns the page chosen.
func (s *Session) SetPage(n int) int {
	s.page = pagination.Clamp(n, len(s.detail.Schedules), s.pageSize)
	return s.page
}

func (s *Session) NextPage() int {
	return s.SetPage(s.Page().Number + 1)
}

func (s *Session) PrevPage() int {
	return s.SetPage(s.Page().Number - 1)
}

// PageEntries is the slice of the schedule on the current page.
func (s *Session) PageEntries() []contract.RevenueScheduleEntry {
	p := s.Page()
	return s.detail.Schedules[p.Start:p.End]
}

func (s *Session) TotalAmount() decimal.Decimal {
	return contract.TotalAmount(s.detail.Schedules)
}

func (s *Session) RecognizedAmount() decimal.Decimal {
	return contract.RecognizedAmount(s.detail.Schedules)
}

func (s *Session) TotalTimeSaved() float64 {
	return contract.TotalTimeSaved(s.contracts)
}
