package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/store"
)

const loadTimeout = 15 * time.Second

type billsState int

const (
	billsStateBrowse billsState = iota
	billsStateForm
)

type BillsModel struct {
	store *store.Store

	state billsState
	table table.Model
	bills []bill.Bill
	form  *huh.Form

	loading bool
	status  string

	// Form bindings; editingID is empty while adding.
	editingID    string
	formName     string
	formAmount   string
	formDate     string
	formCategory string
	formPaid     bool
	formNotes    string
}

func NewBillsModel(s *store.Store) BillsModel {
	columns := []table.Column{
		{Title: "Due", Width: 13},
		{Title: "Name", Width: 24},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 12},
		{Title: "Paid", Width: 6},
		{Title: "Notes", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s2 := table.DefaultStyles()
	s2.Header = s2.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s2.Selected = s2.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s2)

	return BillsModel{store: s, table: t, loading: true}
}

func (m BillsModel) Title() string { return "Bills" }

func (m BillsModel) ShortHelp() string {
	if m.state == billsStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | d: delete | p: toggle paid | r: reload"
}

func (m BillsModel) Init() tea.Cmd {
	return m.loadCmd()
}

type billsLoadedMsg struct{}

func (m BillsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		m.store.Load(ctx)

		return billsLoadedMsg{}
	}
}

func (m BillsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case billsLoadedMsg:
		m.loading = false
		m.status = ""
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case billsStateBrowse:
		return m.updateBrowse(msg)
	case billsStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m BillsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterForm(nil)
		case "e":
			if b, ok := m.selected(); ok {
				return m.enterForm(&b)
			}

			return m, nil
		case "d":
			if b, ok := m.selected(); ok {
				m.store.Delete(b.ID)
				m.status = fmt.Sprintf("Deleted %q", b.Name)
				m.refreshTable()
			}

			return m, nil
		case "p", " ":
			if b, ok := m.selected(); ok {
				m.store.TogglePaid(b.ID)
				m.refreshTable()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BillsModel) selected() (bill.Bill, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.bills) {
		return bill.Bill{}, false
	}

	return m.bills[idx], true
}

// enterForm opens the add/edit form; b == nil means a new bill.
func (m BillsModel) enterForm(b *bill.Bill) (tea.Model, tea.Cmd) {
	if b != nil {
		m.editingID = b.ID
		m.formName = b.Name
		m.formAmount = strconv.FormatFloat(b.Amount, 'f', -1, 64)
		m.formDate = b.Date
		m.formCategory = b.Category
		m.formPaid = b.IsPaid
		m.formNotes = b.Notes
	} else {
		m.editingID = ""
		m.formName = ""
		m.formAmount = ""
		m.formDate = time.Now().Format(bill.DateLayout)
		m.formCategory = "Other"
		m.formPaid = false
		m.formNotes = ""
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return fmt.Errorf("amount must be a number")
					}
					if v < 0 {
						return fmt.Errorf("amount cannot be negative")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Due date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := bill.ParseDate(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(huh.NewOptions(bill.Categories...)...).
				Value(&m.formCategory),

			huh.NewConfirm().
				Key("paid").
				Title("Paid?").
				Value(&m.formPaid),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = billsStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m BillsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = billsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("amount")), 64)

	data := bill.FormData{
		Name:     strings.TrimSpace(m.form.GetString("name")),
		Amount:   amount,
		Date:     strings.TrimSpace(m.form.GetString("date")),
		Category: m.form.GetString("category"),
		IsPaid:   m.form.GetBool("paid"),
		Notes:    strings.TrimSpace(m.form.GetString("notes")),
	}

	if m.editingID == "" {
		created := m.store.Add(data)
		m.status = fmt.Sprintf("Added %q", created.Name)
	} else {
		m.store.Update(m.editingID, data)
		m.status = fmt.Sprintf("Updated %q", data.Name)
	}

	m.state = billsStateBrowse
	m.form = nil
	m.table.Focus()
	m.refreshTable()

	return m, nil
}

func (m BillsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading bills...")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	unpaid := bill.UnpaidAmount(m.bills)
	header := fmt.Sprintf(
		"%d bills | total %s | unpaid %s",
		len(m.bills),
		bill.FormatCurrency(bill.TotalAmount(m.bills)),
		bill.FormatCurrency(unpaid),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == billsStateForm && m.form != nil {
		title := "Add Bill"
		if m.editingID != "" {
			title = "Edit Bill"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if err := m.store.Err(); err != nil {
		content = errStyle.Render(fmt.Sprintf("Error: %v", err)) + "\n" + content
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

func (m *BillsModel) refreshTable() {
	m.bills = m.store.Bills()

	rows := make([]table.Row, 0, len(m.bills))

	for _, b := range m.bills {
		paid := ""
		if b.IsPaid {
			paid = "✓"
		}

		rows = append(rows, table.Row{
			bill.FormatDate(b.Date),
			b.Name,
			b.Category,
			bill.FormatCurrency(b.Amount),
			paid,
			b.Notes,
		})
	}

	m.table.SetRows(rows)
}
