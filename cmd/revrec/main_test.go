package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/revrec/internal/api/apitest"
	"github.com/MrJamesThe3rd/revrec/internal/config"
	"github.com/MrJamesThe3rd/revrec/internal/contract"
	"github.com/MrJamesThe3rd/revrec/internal/dashboard"
)

func testConfig(apiURL string) *config.Config {
	var cfg config.Config
	cfg.API.URL = apiURL
	cfg.Dashboard.PollInterval = 10 * time.Millisecond
	cfg.Dashboard.PageSize = 2
	cfg.Dashboard.MemoMaxPeriods = 10
	cfg.Dashboard.DefaultCurrency = "USD"

	return &cfg
}

func run(t *testing.T, b *apitest.Backend, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd(&app{cfg: testConfig(b.URL())})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestList(t *testing.T) {
	type testCase struct {
		name      string
		contracts []contract.Contract
		want      []string
	}

	tests := []testCase{
		{
			name: "empty",
			want: []string{"No contracts uploaded yet."},
		},
		{
			name: "contracts with time saved",
			contracts: []contract.Contract{
				{
					ID:             1,
					ExternalID:     "acme-1",
					CustomerName:   "ACME Global Inc.",
					TotalValue:     decimal.NewNullDecimal(decimal.NewFromInt(330000)),
					Status:         contract.StatusProcessed,
					TimeSavedHours: new(5.0),
				},
				{ID: 2, FileName: "draft.pdf", Status: "queued"},
			},
			want: []string{
				"acme-1",
				"ACME Global Inc.",
				"$330,000.00",
				"Processed",
				"draft.pdf",
				"Uploaded",
				"⚡ Estimated 5 hours of manual review saved",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := apitest.New(t)
			b.SetContracts(tt.contracts...)

			out, err := run(t, b, "list")
			require.NoError(t, err)

			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestShow_PaginatesSchedule(t *testing.T) {
	b := apitest.New(t)
	b.SetContracts(contract.Contract{ID: 7, ExternalID: "omega", CustomerName: "Omega Biopharma Ltd.", Currency: "USD"})

	var entries []contract.RevenueScheduleEntry
	for i := range 5 {
		start, err := contract.ParseDate(fmt.Sprintf("2024-%02d-01", i+1))
		require.NoError(t, err)

		entries = append(entries, contract.RevenueScheduleEntry{
			PeriodStart: start,
			Amount:      decimal.NewNullDecimal(decimal.NewFromInt(1000)),
			Recognized:  i < 2,
		})
	}

	b.SetSchedules("omega", entries...)

	out, err := run(t, b, "show", "omega", "--page", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "Omega Biopharma Ltd.")
	assert.Contains(t, out, "Total: $5,000.00   Recognized: $2,000.00")
	assert.Contains(t, out, "2024-05-01")
	assert.NotContains(t, out, "2024-04-01")
	assert.Contains(t, out, "Showing 5 to 5 of 5 entries (page 3 of 3)")
	assert.Contains(t, out, "Unknown Obligation")
}

func TestShow_DetailFailure(t *testing.T) {
	b := apitest.New(t)
	b.SetContracts(contract.Contract{ID: 7, ExternalID: "omega"})
	b.Fail("/contracts/omega/audit-memos", 500)

	_, err := run(t, b, "show", "omega")
	assert.ErrorIs(t, err, dashboard.ErrDetailLoad)
}

func TestMemo_FallsBackToPlain(t *testing.T) {
	b := apitest.New(t)
	b.SetContracts(contract.Contract{ID: 3, ExternalID: "neuraxis", CustomerName: "Neuraxis Therapeutics"})
	b.SetMemos("neuraxis", contract.AuditMemo{ID: 1, ContractID: 3, MemoText: "Recognise the suite ratably."})

	out, err := run(t, b, "memo", "neuraxis")
	require.NoError(t, err)
	assert.Contains(t, out, "Recognise the suite ratably.")
	assert.Contains(t, out, "Customer: Neuraxis Therapeutics")

	b.SetStructuredMemo("neuraxis", &contract.StructuredAuditMemo{
		Metadata:   contract.MemoMetadata{Standard: "ASC 606", ContractID: "neuraxis"},
		Conclusion: contract.Conclusion{Summary: "Structured conclusion."},
	})

	out, err = run(t, b, "memo", "neuraxis")
	require.NoError(t, err)
	assert.Contains(t, out, "Structured conclusion.")
	assert.NotContains(t, out, "Recognise the suite ratably.")
}

func TestSamplesUpload_Wait(t *testing.T) {
	b := apitest.New(t)
	b.SetUploadStatus(contract.StatusProcessed)

	out, err := run(t, b, "samples", "upload", "acme", "--wait")
	require.NoError(t, err)

	uploads := b.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "acme_master_services_agreement.md", uploads[0].FileName)
	assert.Equal(t, "text/markdown", uploads[0].ContentType)

	assert.Contains(t, out, "Uploaded acme_master_services_agreement.md")
	assert.Contains(t, out, "Contract ID: ")
	assert.Contains(t, out, "Processed")
}

func TestUpload_RejectsBeforeNetwork(t *testing.T) {
	b := apitest.New(t)

	path := t.TempDir() + "/payload.exe"
	require.NoError(t, os.WriteFile(path, []byte{0x4D, 0x5A, 0x90, 0x00}, 0o600))

	_, err := run(t, b, "upload", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please upload a PDF, Word document, Markdown, or text file.")
	assert.Empty(t, b.Uploads())
}

func TestStatus_WaitReportsProcessingError(t *testing.T) {
	b := apitest.New(t)
	b.SetStatus("x1", &contract.ContractStatus{ContractID: "x1", Status: contract.StatusError})

	out, err := run(t, b, "status", "x1", "--wait")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contract x1 failed processing")
	assert.Contains(t, out, "Error")
}

func TestWatch_NoContracts(t *testing.T) {
	b := apitest.New(t)

	_, err := run(t, b, "watch")
	assert.ErrorIs(t, err, dashboard.ErrNoContracts)
}

func TestWatch_RejectsNonPositiveInterval(t *testing.T) {
	for _, interval := range []string{"0", "-1s"} {
		t.Run(interval, func(t *testing.T) {
			b := apitest.New(t)
			b.SetContracts(contract.Contract{ID: 1, ExternalID: "acme-1", Status: contract.StatusProcessing})

			var err error

			assert.NotPanics(t, func() {
				_, err = run(t, b, "watch", "--interval", interval)
			})
			assert.ErrorContains(t, err, "--interval must be positive")
			assert.Zero(t, b.Hits("/contracts"))
		})
	}
}

func TestWatch_ReportsChangesUntilCancelled(t *testing.T) {
	b := apitest.New(t)
	b.SetContracts(contract.Contract{ID: 1, ExternalID: "a", CustomerName: "ACME Global Inc.", Status: contract.StatusProcessing})

	a := &app{cfg: testConfig(b.URL())}
	a.connect()

	ctx, cancel := context.WithCancel(context.Background())

	var out bytes.Buffer

	done := make(chan error, 1)
	go func() {
		done <- a.watch(ctx, &out, &out, time.Millisecond)
	}()

	require.Eventually(t, func() bool { return b.Hits("/contracts") >= 2 }, time.Second, time.Millisecond)
	b.SetContracts(contract.Contract{ID: 1, ExternalID: "a", CustomerName: "ACME Global Inc.", Status: contract.StatusProcessed})

	// Every request counted from here on sees the new status; waiting for
	// two of them means the first one's changes have been printed.
	after := b.Hits("/contracts")
	require.Eventually(t, func() bool { return b.Hits("/contracts") >= after+2 }, time.Second, time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	assert.Contains(t, out.String(), "changed  ACME Global Inc. Processing -> Processed")
}

func TestHealth(t *testing.T) {
	b := apitest.New(t)

	out, err := run(t, b, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "healthy")
	assert.Contains(t, out, "GET /contracts/{id}/revenue-schedules")

	b.Fail("/health", 503)

	_, err = run(t, b, "health")
	assert.ErrorContains(t, err, "503")
}
