package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/revrec/internal/api"
	"github.com/MrJamesThe3rd/revrec/internal/contract"
	"github.com/MrJamesThe3rd/revrec/internal/poll"
	"github.com/MrJamesThe3rd/revrec/internal/sample"
	"github.com/MrJamesThe3rd/revrec/internal/upload"
)

var errNoContractID = errors.New("backend did not return a contract id")

func (a *app) uploadCmd() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload a contract document (PDF, Word, Markdown or text)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, f, err := upload.OpenFile(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			return a.submit(cmd, file, wait)
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the backend finishes processing")

	return cmd
}

func (a *app) samplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "List the built-in sample contracts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := sample.Open(a.cfg.Upload.SamplesDir)
			if err != nil {
				return err
			}

			t := newTable("ID", "Customer", "Description", "Value", "Duration", "Type")
			for _, s := range catalog.Contracts() {
				t.Row(s.ID, s.Name, s.Summary, s.Value, s.Duration, s.Type)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())

			return nil
		},
	}

	cmd.AddCommand(a.sampleUploadCmd())

	return cmd
}

func (a *app) sampleUploadCmd() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "upload [id]",
		Short: "Upload one of the sample contracts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := sample.Open(a.cfg.Upload.SamplesDir)
			if err != nil {
				return err
			}

			file, err := catalog.File(args[0])
			if err != nil {
				return err
			}

			return a.submit(cmd, file, wait)
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the backend finishes processing")

	return cmd
}

// submit runs file through the same upload flow the TUI uses.
func (a *app) submit(cmd *cobra.Command, file api.File, wait bool) error {
	out := cmd.OutOrStdout()

	flow := upload.NewFlow(a.client, a.cfg.Upload.MaxBytes, func(*api.UploadResult) {
		fmt.Fprintf(out, "Uploaded %s\n", file.Name)
	})

	if err := flow.Submit(cmd.Context(), file); err != nil {
		return err
	}

	res := flow.Result()
	if res == nil {
		return nil
	}

	if res.Message != "" {
		fmt.Fprintln(out, res.Message)
	}

	if res.ContractID != "" {
		fmt.Fprintf(out, "Contract ID: %s\n", res.ContractID)
	}

	if res.TaskID != "" {
		fmt.Fprintf(out, "Task ID:     %s\n", res.TaskID)
	}

	if !wait {
		return nil
	}

	if res.ContractID == "" {
		return errNoContractID
	}

	return a.waitForStatus(cmd.Context(), out, res.ContractID, a.cfg.Dashboard.PollInterval)
}

func (a *app) statusCmd() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "status [ref]",
		Short: "Show the processing status of a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if wait {
				return a.waitForStatus(cmd.Context(), out, args[0], a.cfg.Dashboard.PollInterval)
			}

			st, err := a.client.GetContractStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printStatus(out, st, a.cfg.Dashboard.DefaultCurrency)

			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the status is final")

	return cmd
}

func printStatus(w io.Writer, st *contract.ContractStatus, fallbackCurrency string) {
	fmt.Fprintf(w, "Contract:  %s\n", st.ContractID)
	fmt.Fprintf(w, "Status:    %s\n", statusLabel(st.Status))
	fmt.Fprintf(w, "Customer:  %s\n", orNA(st.CustomerName))
	fmt.Fprintf(w, "File:      %s\n", orNA(st.FileName))
	fmt.Fprintf(w, "Value:     %s\n", formatValue(st.TotalValue, st.Currency, fallbackCurrency))
	fmt.Fprintf(w, "Updated:   %s\n", st.UpdatedAt)
}

// waitForStatus checks ref right away and then once per interval, printing
// every status change, until the status is final or ctx ends. A contract that
// ends in error is reported as a failure.
func (a *app) waitForStatus(ctx context.Context, w io.Writer, ref string, interval time.Duration) error {
	var (
		last   contract.Status
		failed error
	)

	check := func(ctx context.Context) bool {
		st, err := a.client.GetContractStatus(ctx, ref)
		if err != nil {
			failed = err
			return false
		}

		if st.Status != last {
			fmt.Fprintf(w, "%s  %s\n", time.Now().Format(time.TimeOnly), statusLabel(st.Status))
			last = st.Status
		}

		return !st.Status.Terminal()
	}

	if check(ctx) {
		if err := poll.Run(ctx, interval, check); err != nil {
			return err
		}
	}

	if failed != nil {
		return failed
	}

	if last == contract.StatusError {
		return fmt.Errorf("contract %s failed processing", ref)
	}

	return nil
}
