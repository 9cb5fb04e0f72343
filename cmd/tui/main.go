package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/billy/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/billy/internal/config"
	"github.com/MrJamesThe3rd/billy/internal/persist"
	"github.com/MrJamesThe3rd/billy/internal/store"
)

type model struct {
	billStore *store.Store
	local     *persist.Local

	currentView View

	billsView     view.BillsModel
	analyticsView view.AnalyticsModel
}

type View int

const (
	ViewMenu      View = 0
	ViewBills     View = 1
	ViewAnalytics View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	local, err := persist.NewLocal(cfg.Persist.LocalDB)
	if err != nil {
		slog.Error("failed to open local storage", "error", err)
		os.Exit(1)
	}

	var remote persist.Backend
	if cfg.Persist.APIBaseURL != "" {
		remote = persist.NewRemote(cfg.Persist.APIBaseURL)
	}

	cascade := persist.NewCascade(remote, local, persist.NewSeed())
	billStore := store.New(cascade)

	return model{
		billStore:     billStore,
		local:         local,
		currentView:   ViewMenu,
		billsView:     view.NewBillsModel(billStore),
		analyticsView: view.NewAnalyticsModel(billStore),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		m.billStore.Load(ctx)

		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				// Let outstanding saves finish before exiting.
				m.billStore.Wait()

				if err := m.local.Close(); err != nil {
					slog.Error("failed to close local storage", "error", err)
				}

				return m, tea.Quit
			case "1":
				m.currentView = ViewBills
				m.billsView = view.NewBillsModel(m.billStore)

				return m, m.billsView.Init()
			case "2":
				m.currentView = ViewAnalytics
				m.analyticsView = view.NewAnalyticsModel(m.billStore)

				return m, m.analyticsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewBills:
		var newModel tea.Model
		newModel, cmd = m.billsView.Update(msg)
		m.billsView = newModel.(view.BillsModel)
	case ViewAnalytics:
		var newModel tea.Model
		newModel, cmd = m.analyticsView.Update(msg)
		m.analyticsView = newModel.(view.AnalyticsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Billy\n\n" +
				"1. Bills\n" +
				"2. Analytics\n\n" +
				"q. Quit",
		)
	case ViewBills:
		return m.billsView.View()
	case ViewAnalytics:
		return m.analyticsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
