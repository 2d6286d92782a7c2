package view

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/revrec/internal/sample"
	"github.com/MrJamesThe3rd/revrec/internal/upload"
)

type SamplesModel struct {
	CommonModel

	catalog *sample.Catalog
	runner  uploadRunner
	list    list.Model
	picked  string
	err     error
}

func NewSamplesModel(catalog *sample.Catalog, uploader upload.Uploader, maxBytes int64, timeout time.Duration) SamplesModel {
	items := make([]list.Item, 0, len(catalog.Contracts()))
	for _, c := range catalog.Contracts() {
		items = append(items, c)
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 14)
	l.Title = "Try Sample Contracts"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return SamplesModel{
		catalog: catalog,
		runner:  newUploadRunner(uploader, maxBytes, timeout),
		list:    l,
	}
}

func (m SamplesModel) Title() string { return "Sample Contracts" }

func (m SamplesModel) ShortHelp() string {
	if m.runner.busy() {
		return "Uploading sample contract..."
	}

	return "Enter: upload sample | Esc: back"
}

func (m SamplesModel) Init() tea.Cmd {
	return nil
}

func (m SamplesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.runner.busy() {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			return m.uploadSelected()
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case uploadDoneMsg:
		return m, m.runner.finish(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.runner.spinner, cmd = m.runner.spinner.Update(msg)

		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m SamplesModel) uploadSelected() (tea.Model, tea.Cmd) {
	selected, ok := m.list.SelectedItem().(sample.Contract)
	if !ok {
		return m, nil
	}

	m.picked = selected.Name
	m.err = nil
	m.runner.flow.Reset()

	file, err := m.catalog.File(selected.ID)
	if err != nil {
		slog.Error("failed to load sample contract", "sample", selected.ID, "error", err)
		m.err = err

		return m, nil
	}

	return m, m.runner.start(file, nil)
}

func (m SamplesModel) View() string {
	status := ""

	switch {
	case m.err != nil:
		status = errorStyle.Render("Upload failed") + "\n\n" + m.err.Error()
	case m.picked != "":
		status = m.runner.view(m.picked)
	default:
		status = faintStyle.Render("Pick a sample contract to see how it is processed")
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, m.list.View(), "", status),
	)
}
