package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/revrec/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/revrec/internal/api"
	"github.com/MrJamesThe3rd/revrec/internal/config"
	"github.com/MrJamesThe3rd/revrec/internal/dashboard"
	"github.com/MrJamesThe3rd/revrec/internal/logging"
	"github.com/MrJamesThe3rd/revrec/internal/sample"
)

type model struct {
	cfg     *config.Config
	client  *api.Client
	loader  *dashboard.Loader
	catalog *sample.Catalog

	currentView View
	size        tea.WindowSizeMsg

	uploadView    view.UploadModel
	samplesView   view.SamplesModel
	dashboardView view.DashboardModel
}

type View int

const (
	ViewMenu      View = 0
	ViewUpload    View = 1
	ViewSamples   View = 2
	ViewDashboard View = 3
)

func initialModel(cfg *config.Config) model {
	client := api.New(cfg.API.URL, cfg.API.Timeout)

	catalog, err := sample.Open(cfg.Upload.SamplesDir)
	if err != nil {
		slog.Error("failed to load sample contracts", "error", err)
		os.Exit(1)
	}

	m := model{
		cfg:         cfg,
		client:      client,
		loader:      dashboard.NewLoader(client),
		catalog:     catalog,
		currentView: ViewMenu,
	}

	m.uploadView = m.newUploadView()
	m.samplesView = m.newSamplesView()
	m.dashboardView = m.newDashboardView()

	return m
}

func (m model) newUploadView() view.UploadModel {
	return view.NewUploadModel(m.client, m.cfg.Upload.MaxBytes, m.cfg.API.Timeout)
}

func (m model) newSamplesView() view.SamplesModel {
	return view.NewSamplesModel(m.catalog, m.client, m.cfg.Upload.MaxBytes, m.cfg.API.Timeout)
}

func (m model) newDashboardView() view.DashboardModel {
	return view.NewDashboardModel(m.loader, view.DashboardOptions{
		PollInterval:   m.cfg.Dashboard.PollInterval,
		PageSize:       m.cfg.Dashboard.PageSize,
		Timeout:        m.cfg.API.Timeout,
		Currency:       m.cfg.Dashboard.DefaultCurrency,
		MemoMaxPeriods: m.cfg.Dashboard.MemoMaxPeriods,
	})
}

func (m model) Init() tea.Cmd {
	return nil
}

// enter switches to v and replays the last known window size to it.
func (m model) enter(v View, init tea.Cmd) (tea.Model, tea.Cmd) {
	m.currentView = v

	if m.size.Width == 0 {
		return m, init
	}

	size := m.size

	return m, tea.Batch(init, func() tea.Msg { return size })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.uploadView = m.newUploadView()
				return m.enter(ViewUpload, m.uploadView.Init())
			case "2":
				m.samplesView = m.newSamplesView()
				return m.enter(ViewSamples, m.samplesView.Init())
			case "3":
				m.dashboardView = m.newDashboardView()
				return m.enter(ViewDashboard, m.dashboardView.Init())
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.ContractUploadedMsg:
		if msg.Result != nil {
			slog.Info("contract uploaded", "contract_id", msg.Result.ContractID, "task_id", msg.Result.TaskID)
		}

		// The next visit to the dashboard starts from a fresh list.
		m.dashboardView = m.newDashboardView()

		return m, nil
	}

	switch m.currentView {
	case ViewUpload:
		var newModel tea.Model
		newModel, cmd = m.uploadView.Update(msg)
		m.uploadView = newModel.(view.UploadModel)
	case ViewSamples:
		var newModel tea.Model
		newModel, cmd = m.samplesView.Update(msg)
		m.samplesView = newModel.(view.SamplesModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	}

	return m, cmd
}

func (m model) current() view.View {
	switch m.currentView {
	case ViewUpload:
		return m.uploadView
	case ViewSamples:
		return m.samplesView
	case ViewDashboard:
		return m.dashboardView
	}

	return nil
}

func (m model) View() string {
	if m.currentView == ViewMenu {
		return lipgloss.NewStyle().Padding(2).Render(
			"Revenue Automation\n\n" +
				"1. Upload Contract\n" +
				"2. Sample Contracts\n" +
				"3. Dashboard\n\n" +
				"q. Quit\n\n" +
				lipgloss.NewStyle().Faint(true).Render("Backend: "+m.client.BaseURL()),
		)
	}

	v := m.current()
	if v == nil {
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(v.Title() + " | " + v.ShortHelp())

	return v.View() + "\n" + help
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logCfg := cfg.Logging()
	if logCfg.File == "" {
		logCfg.File, err = logging.StateFile()
		if err != nil {
			slog.Error("failed to resolve log file", "error", err)
			os.Exit(1)
		}
	}

	closeLog, err := logging.Init(logCfg)
	if err != nil {
		slog.Error("failed to initialise logging", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	p := tea.NewProgram(initialModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
