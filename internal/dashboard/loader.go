package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/revrec/internal/contract"
)

//go:generate mockgen -source=loader.go -destination=backend_mock.go -package=dashboard

var (
	ErrDetailLoad  = errors.New("failed to load contract details")
	ErrListLoad    = errors.New("failed to load contracts")
	ErrListRefresh = errors.New("failed to refresh contracts")
	ErrNoContracts = errors.New("no contracts uploaded yet")
)

// Backend is the part of the API the dashboard reads from.
type Backend interface {
	ListContracts(ctx context.Context) ([]contract.Contract, error)
	ListRevenueSchedules(ctx context.Context, ref string) ([]contract.RevenueScheduleEntry, error)
	ListAuditMemos(ctx context.Context, ref string) ([]contract.AuditMemo, error)
	GetStructuredMemo(ctx context.Context, ref string) (*contract.StructuredAuditMemo, error)
}

type Loader struct {
	backend Backend
}

func NewLoader(backend Backend) *Loader {
	return &Loader{backend: backend}
}

// Contracts fetches the full list. initial selects which error the caller
// sees: a failed first load and a failed refresh are reported differently.
func (l *Loader) Contracts(ctx context.Context, initial bool) ([]contract.Contract, error) {
	cs, err := l.backend.ListContracts(ctx)
	if err != nil {
		if initial {
			slog.Error("failed to load contracts", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrListLoad, err)
		}

		slog.Error("failed to refresh contracts", "error", err)

		return nil, fmt.Errorf("%w: %w", ErrListRefresh, err)
	}

	return cs, nil
}

// Load fetches the detail for c under token. Schedules and memos are fetched
// together and either both land or the whole load fails. The structured memo
// is optional: its failure is logged and leaves Structured empty.
func (l *Loader) Load(ctx context.Context, token Token, c contract.Contract) Detail {
	ref := c.Ref()
	d := Detail{Token: token}

	var (
		schedules []contract.RevenueScheduleEntry
		memos     []contract.AuditMemo
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		schedules, err = l.backend.ListRevenueSchedules(gctx, ref)
		if err != nil {
			return fmt.Errorf("listing revenue schedules: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error
		memos, err = l.backend.ListAuditMemos(gctx, ref)
		if err != nil {
			return fmt.Errorf("listing audit memos: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("failed to load contract details", "contract", ref, "error", err)
		d.Err = fmt.Errorf("%w: %w", ErrDetailLoad, err)

		return d
	}

	d.Schedules = schedules
	d.Memos = memos

	if len(memos) == 0 {
		return d
	}

	structured, err := l.backend.GetStructuredMemo(ctx, ref)
	if err != nil {
		slog.Warn("structured memo unavailable", "contract", ref, "error", err)
		return d
	}

	if structured != nil {
		d.Structured = []contract.StructuredAuditMemo{*structured}
	}

	return d
}
