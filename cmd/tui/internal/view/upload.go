package view

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/revrec/internal/api"
	"github.com/MrJamesThe3rd/revrec/internal/upload"
)

// uploadRunner drives an upload.Flow from the update loop. The request itself
// runs in a tea.Cmd; Begin and Finish only ever run in Update.
type uploadRunner struct {
	flow    *upload.Flow
	notice  *uploadNotice
	spinner spinner.Model
	timeout time.Duration
}

// uploadNotice carries the flow's success callback out to the update loop.
type uploadNotice struct {
	fired  bool
	result *api.UploadResult
}

func (n *uploadNotice) take() (*api.UploadResult, bool) {
	fired, result := n.fired, n.result
	n.fired, n.result = false, nil

	return result, fired
}

type uploadDoneMsg struct {
	result *api.UploadResult
	err    error
}

func newUploadRunner(uploader upload.Uploader, maxBytes int64, timeout time.Duration) uploadRunner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	notice := &uploadNotice{}
	flow := upload.NewFlow(uploader, maxBytes, func(r *api.UploadResult) {
		notice.fired = true
		notice.result = r
	})

	return uploadRunner{
		flow:    flow,
		notice:  notice,
		spinner: s,
		timeout: timeout,
	}
}

// start validates file and returns the command that uploads it. A file that
// fails validation never reaches the network and start returns nil. closer,
// if set, is closed once the file is no longer needed.
func (r uploadRunner) start(file api.File, closer io.Closer) tea.Cmd {
	if !r.flow.Begin(file) {
		if closer != nil {
			_ = closer.Close()
		}

		return nil
	}

	uploader := r.flow.Uploader()
	timeout := r.timeout

	return tea.Batch(r.spinner.Tick, func() tea.Msg {
		if closer != nil {
			defer closer.Close()
		}

		ctx, cancel := RequestCtx(timeout)
		defer cancel()

		result, err := uploader.UploadContract(ctx, file)

		return uploadDoneMsg{result: result, err: err}
	})
}

// finish records the outcome. On success it returns the command announcing
// the new contract to the rest of the app.
func (r uploadRunner) finish(msg uploadDoneMsg) tea.Cmd {
	r.flow.Finish(msg.result, msg.err)

	if msg.err != nil {
		slog.Error("failed to upload contract", "error", msg.err)
		return nil
	}

	result, fired := r.notice.take()
	if !fired {
		return nil
	}

	return func() tea.Msg {
		return ContractUploadedMsg{Result: result}
	}
}

func (r uploadRunner) busy() bool {
	return r.flow.Status() == upload.StatusUploading
}

func (r uploadRunner) view(what string) string {
	switch r.flow.Status() {
	case upload.StatusUploading:
		return fmt.Sprintf("%s Uploading %s...\n\nPlease wait while we process your contract", r.spinner.View(), what)
	case upload.StatusSuccess:
		s := successStyle.Render("Contract uploaded successfully!") +
			"\n\nYour contract is being processed for revenue recognition"

		if res := r.flow.Result(); res != nil && res.ContractID != "" {
			s += faintStyle.Render("\nContract ID: " + res.ContractID)
		}

		return s
	case upload.StatusError:
		return errorStyle.Render("Upload failed") + "\n\n" + r.flow.Message()
	}

	return ""
}

type uploadState int

const (
	uploadStatePick uploadState = iota
	uploadStateResult
)

type UploadModel struct {
	CommonModel

	state      uploadState
	runner     uploadRunner
	filePicker filepicker.Model
	maxBytes   int64
	path       string
	openErr    error
}

func NewUploadModel(uploader upload.Uploader, maxBytes int64, timeout time.Duration) UploadModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return UploadModel{
		runner:     newUploadRunner(uploader, maxBytes, timeout),
		filePicker: fp,
		maxBytes:   maxBytes,
	}
}

func (m UploadModel) Title() string { return "Upload Contract" }

func (m UploadModel) ShortHelp() string {
	switch {
	case m.runner.busy():
		return "Uploading..."
	case m.state == uploadStateResult:
		return "Enter: upload another | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m UploadModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m UploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.runner.busy() {
			return m, nil
		}

		if m.state == uploadStateResult {
			switch msg.Type {
			case tea.KeyEsc:
				return m, Back
			case tea.KeyEnter:
				m.runner.flow.Reset()
				m.openErr = nil
				m.state = uploadStatePick

				return m, m.filePicker.Init()
			}

			return m, nil
		}

		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case uploadDoneMsg:
		return m, m.runner.finish(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.runner.spinner, cmd = m.runner.spinner.Update(msg)

		return m, cmd
	}

	if m.state != uploadStatePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.path = path
		m.state = uploadStateResult

		file, f, err := upload.OpenFile(path)
		if err != nil {
			slog.Error("failed to open contract file", "path", path, "error", err)
			m.openErr = err

			return m, nil
		}

		return m, m.runner.start(file, f)
	}

	return m, cmd
}

func (m UploadModel) View() string {
	if m.state == uploadStateResult {
		if m.openErr != nil {
			return lipgloss.NewStyle().Padding(2).Render(
				errorStyle.Render("Upload failed") + "\n\n" + m.openErr.Error(),
			)
		}

		return lipgloss.NewStyle().Padding(2).Render(m.runner.view(m.path))
	}

	limit := m.maxBytes
	if limit <= 0 {
		limit = upload.MaxFileSize
	}

	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("Select a contract to upload (PDF, Word, Markdown or text, up to %dMB):\n\n%s",
			limit/(1024*1024), m.filePicker.View()),
	)
}
