package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/store"
)

const maxBarWidth = 30

type AnalyticsModel struct {
	store *store.Store
	now   func() time.Time
}

func NewAnalyticsModel(s *store.Store) AnalyticsModel {
	return AnalyticsModel{store: s, now: time.Now}
}

func (m AnalyticsModel) Title() string     { return "Analytics" }
func (m AnalyticsModel) ShortHelp() string { return "Esc: back" }

func (m AnalyticsModel) Init() tea.Cmd {
	return nil
}

func (m AnalyticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" {
			return m, Back
		}
	}

	return m, nil
}

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).PaddingTop(1)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("57"))
	labelStyle   = lipgloss.NewStyle().Width(18)
)

func (m AnalyticsModel) View() string {
	bills := m.store.Bills()

	var b strings.Builder

	total := bill.TotalAmount(bills)
	current := bill.CurrentMonth(bills, m.now())

	b.WriteString(fmt.Sprintf("Total: %s across %d bills\n", bill.FormatCurrency(total), len(bills)))
	b.WriteString(fmt.Sprintf("Unpaid: %s\n", bill.FormatCurrency(bill.UnpaidAmount(bills))))
	b.WriteString(fmt.Sprintf("This month: %s across %d bills\n",
		bill.FormatCurrency(bill.TotalAmount(current)), len(current)))

	b.WriteString(sectionStyle.Render("Spending by category") + "\n")
	writeBars(&b, categoryRows(bills), total)

	b.WriteString(sectionStyle.Render("Monthly summary") + "\n")
	writeBars(&b, monthRows(bills), total)

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

type row struct {
	label  string
	amount float64
}

func categoryRows(bills []bill.Bill) []row {
	spending := bill.SpendingByCategory(bills)

	rows := make([]row, len(spending))
	for i, s := range spending {
		rows[i] = row{label: s.Category, amount: s.Amount}
	}

	return rows
}

func monthRows(bills []bill.Bill) []row {
	summary := bill.MonthlySummary(bills)

	rows := make([]row, len(summary))
	for i, s := range summary {
		rows[i] = row{label: s.Month, amount: s.Amount}
	}

	return rows
}

// writeBars renders a horizontal bar per row, scaled against total.
func writeBars(b *strings.Builder, rows []row, total float64) {
	for _, r := range rows {
		width := 0
		if total > 0 {
			width = int(r.amount / total * maxBarWidth)
		}

		fmt.Fprintf(b, "%s %s %s\n",
			labelStyle.Render(r.label),
			barStyle.Render(strings.Repeat("█", width)),
			bill.FormatCurrency(r.amount),
		)
	}
}
