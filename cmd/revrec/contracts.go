package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/revrec/internal/contract"
	"github.com/MrJamesThe3rd/revrec/internal/dashboard"
	"github.com/MrJamesThe3rd/revrec/internal/memo"
	"github.com/MrJamesThe3rd/revrec/internal/money"
	"github.com/MrJamesThe3rd/revrec/internal/poll"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uploaded contracts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cs, err := a.loader.Contracts(cmd.Context(), true)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if len(cs) == 0 {
				fmt.Fprintln(out, "No contracts uploaded yet.")
				return nil
			}

			a.printContracts(out, cs)

			return nil
		},
	}
}

func (a *app) printContracts(w io.Writer, cs []contract.Contract) {
	t := newTable("Ref", "Customer", "File", "Value", "Period", "Status")

	for _, c := range cs {
		t.Row(
			c.Ref(),
			c.DisplayName(),
			orNA(c.FileName),
			formatValue(c.TotalValue, c.Currency, a.cfg.Dashboard.DefaultCurrency),
			c.StartDate.String()+" to "+c.EndDate.String(),
			statusLabel(c.Status),
		)
	}

	fmt.Fprintln(w, t.Render())

	if caption := contract.TimeSavedCaption(contract.TotalTimeSaved(cs)); caption != "" {
		fmt.Fprintln(w, caption)
	}
}

// loadDetail fetches ref and its detail through a one-shot session, the same
// path the dashboard takes when a contract is selected.
func (a *app) loadDetail(ctx context.Context, ref string, pageSize int) (*dashboard.Session, error) {
	c, err := a.client.GetContract(ctx, ref)
	if err != nil {
		return nil, err
	}

	s := dashboard.NewSession(pageSize)
	s.SetContracts([]contract.Contract{*c})

	token := s.Select(*c)
	s.Apply(a.loader.Load(ctx, token, *c))

	if err := s.Err(); err != nil {
		return nil, err
	}

	return s, nil
}

func (a *app) showCmd() *cobra.Command {
	var (
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "show [ref]",
		Short: "Show a contract and its revenue schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadDetail(cmd.Context(), args[0], pageSize)
			if err != nil {
				return err
			}

			s.SetPage(page)
			a.printDetail(cmd.OutOrStdout(), s)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "schedule page to show")
	cmd.Flags().IntVar(&pageSize, "page-size", a.cfg.Dashboard.PageSize, "schedule entries per page")

	return cmd
}

func (a *app) printDetail(w io.Writer, s *dashboard.Session) {
	c, _ := s.Selected()
	cur := c.Currency
	if cur == "" {
		cur = a.cfg.Dashboard.DefaultCurrency
	}

	fmt.Fprintln(w, headingStyle.Render("Contract Details")+"  "+statusLabel(c.Status))
	fmt.Fprintf(w, "Customer:        %s\n", c.DisplayName())
	fmt.Fprintf(w, "Total Value:     %s %s\n", formatValue(c.TotalValue, cur, cur), faintStyle.Render("(Excluding discounts)"))
	fmt.Fprintf(w, "Contract Period: %s to %s\n", c.StartDate, c.EndDate)
	fmt.Fprintf(w, "File:            %s\n", orNA(c.FileName))

	if c.TimeSavedHours != nil && *c.TimeSavedHours > 0 {
		fmt.Fprintf(w, "Time Saved:      %s %s\n", contract.TimeSavedIcon(*c.TimeSavedHours), contract.FormatTimeSaved(*c.TimeSavedHours))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("Revenue Schedule"))

	if len(s.Schedules()) == 0 {
		fmt.Fprintln(w, "No revenue schedule available")
		fmt.Fprintln(w, faintStyle.Render("Revenue schedule will appear after contract processing"))
	} else {
		fmt.Fprintf(w, "Total: %s   Recognized: %s\n",
			money.Format(s.TotalAmount(), cur), money.Format(s.RecognizedAmount(), cur))

		t := newTable("Period", "Name", "Type", "Amount", "Status")

		for _, e := range s.PageEntries() {
			status := "Pending"
			if e.Recognized {
				status = "Recognized"
			}

			t.Row(
				e.PeriodStart.String()+" to "+e.PeriodEnd.String(),
				e.ObligationName(),
				e.ObligationType(),
				money.FormatNull(e.Amount, cur),
				status,
			)
		}

		fmt.Fprintln(w, t.Render())

		if p := s.Page(); p.Pages > 1 {
			fmt.Fprintf(w, "%s (page %d of %d)\n", p.Summary(), p.Number, p.Pages)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Audit memos: %d (revrec memo %s)\n", len(s.Memos()), c.Ref())
}

func (a *app) memoCmd() *cobra.Command {
	var maxPeriods int

	cmd := &cobra.Command{
		Use:   "memo [ref]",
		Short: "Print the audit memo for a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadDetail(cmd.Context(), args[0], a.cfg.Dashboard.PageSize)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			c, _ := s.Selected()

			cur := c.Currency
			if cur == "" {
				cur = a.cfg.Dashboard.DefaultCurrency
			}

			if structured := s.StructuredMemos(); len(structured) > 0 {
				for _, m := range structured {
					fmt.Fprintln(out, memo.Render(m, memo.Options{MaxPeriods: maxPeriods, Currency: cur}))
				}

				return nil
			}

			if len(s.Memos()) == 0 {
				fmt.Fprintln(out, "No audit memos available")
				return nil
			}

			for _, m := range s.Memos() {
				fmt.Fprintln(out, memo.RenderPlain(m, c))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&maxPeriods, "max-periods", a.cfg.Dashboard.MemoMaxPeriods, "revenue periods to show in the memo rollup")

	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh the contract list until interrupted, printing status changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}

			err := a.watch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), interval)
			if errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", a.cfg.Dashboard.PollInterval, "refresh interval")

	return cmd
}

// watch prints the list once and then reports status changes on every
// refresh. Polling only runs while there is at least one contract.
func (a *app) watch(ctx context.Context, out, errOut io.Writer, interval time.Duration) error {
	cs, err := a.loader.Contracts(ctx, true)
	if err != nil {
		return err
	}

	if len(cs) == 0 {
		return dashboard.ErrNoContracts
	}

	a.printContracts(out, cs)

	seen := make(map[string]contract.Status, len(cs))
	for _, c := range cs {
		seen[c.Ref()] = c.Status
	}

	return poll.Run(ctx, interval, func(ctx context.Context) bool {
		cs, err := a.loader.Contracts(ctx, false)
		if err != nil {
			fmt.Fprintln(errOut, "Failed to refresh contracts")
			return true
		}

		for _, c := range cs {
			prev, ok := seen[c.Ref()]

			switch {
			case !ok:
				fmt.Fprintf(out, "%s  new      %s %s\n", time.Now().Format(time.TimeOnly), c.DisplayName(), statusLabel(c.Status))
			case prev != c.Status:
				fmt.Fprintf(out, "%s  changed  %s %s -> %s\n", time.Now().Format(time.TimeOnly), c.DisplayName(), statusLabel(prev), statusLabel(c.Status))
			}

			seen[c.Ref()] = c.Status
		}

		return len(cs) > 0
	})
}
