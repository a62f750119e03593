package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alekseinovikov/tui-money/internal/core"
)

const inputDateLayout = "2006-01-02"

type dashFocus int

const (
	dashFocusList dashFocus = iota
	dashFocusKind
	dashFocusAmount
	dashFocusCategory
	dashFocusNote
	dashFocusDate
	dashFocusAddButton
	dashFocusFilterFrom
	dashFocusFilterTo
	dashFocusFilterCategory
	dashFocusCount
)

type dashboardModel struct {
	repo core.EntryRepository
	user core.User

	focus   dashFocus
	entries []core.Entry
	cursor  int
	filter  core.EntryFilter
	status  string

	kind     core.EntryKind
	amount   textinput.Model
	category textinput.Model
	note     textinput.Model
	date     textinput.Model

	filterFrom textinput.Model
	filterTo   textinput.Model
	filterCat  textinput.Model
}

func newDashboardModel(repo core.EntryRepository) dashboardModel {
	newInput := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		return ti
	}

	return dashboardModel{
		repo:       repo,
		kind:       core.Expense,
		amount:     newInput("12.34", 20),
		category:   newInput("category", 64),
		note:       newInput("note (optional)", 200),
		date:       newInput(inputDateLayout, 10),
		filterFrom: newInput("from "+inputDateLayout, 10),
		filterTo:   newInput("to "+inputDateLayout, 10),
		filterCat:  newInput("category", 64),
	}
}

// open prepares the dashboard for a freshly logged-in user.
func (m dashboardModel) open(user core.User) dashboardModel {
	m.user = user
	m.focus = dashFocusList
	m.filter = core.EntryFilter{}
	m.status = ""
	return m.refresh()
}

func (m dashboardModel) refresh() dashboardModel {
	entries, err := m.repo.List(context.Background(), m.filter)
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.entries = entries
	if m.cursor >= len(entries) {
		m.cursor = 0
	}
	return m
}

func (m dashboardModel) focusNext() dashboardModel {
	m.focus = (m.focus + 1) % dashFocusCount
	return m.syncFocus()
}

func (m dashboardModel) focusPrev() dashboardModel {
	m.focus = (m.focus + dashFocusCount - 1) % dashFocusCount
	return m.syncFocus()
}

func (m dashboardModel) syncFocus() dashboardModel {
	inputs := []*textinput.Model{&m.amount, &m.category, &m.note, &m.date, &m.filterFrom, &m.filterTo, &m.filterCat}
	for _, ti := range inputs {
		ti.Blur()
	}
	switch m.focus {
	case dashFocusAmount:
		m.amount.Focus()
	case dashFocusCategory:
		m.category.Focus()
	case dashFocusNote:
		m.note.Focus()
	case dashFocusDate:
		m.date.Focus()
	case dashFocusFilterFrom:
		m.filterFrom.Focus()
	case dashFocusFilterTo:
		m.filterTo.Focus()
	case dashFocusFilterCategory:
		m.filterCat.Focus()
	}
	return m
}

func parseInputDate(value string) (core.Date, error) {
	t, err := time.ParseInLocation(inputDateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return core.Date{}, fmt.Errorf("%w: date must be %s", core.ErrInvalidData, inputDateLayout)
	}
	return core.Date{Time: t}, nil
}

// submit assembles and validates a NewEntry from the form, then adds it.
// All validation happens here in the domain model; a failure never
// reaches storage.
func (m dashboardModel) submit() dashboardModel {
	cents, err := core.ParseDecimalToCents(m.amount.Value())
	if err != nil {
		m.status = err.Error()
		return m
	}
	category, err := core.NewCategory(m.category.Value())
	if err != nil {
		m.status = err.Error()
		return m
	}

	occurredOn := core.Date{Time: time.Now().UTC().Truncate(24 * time.Hour)}
	if strings.TrimSpace(m.date.Value()) != "" {
		occurredOn, err = parseInputDate(m.date.Value())
		if err != nil {
			m.status = err.Error()
			return m
		}
	}

	entry := core.NewEntry{
		Kind:       m.kind,
		Amount:     core.Cents(cents),
		Category:   category,
		Note:       strings.TrimSpace(m.note.Value()),
		OccurredOn: occurredOn,
	}
	if err := entry.Validate(); err != nil {
		m.status = err.Error()
		return m
	}

	saved, err := m.repo.Add(context.Background(), entry)
	if err != nil {
		m.status = err.Error()
		return m
	}

	m.status = fmt.Sprintf("added entry #%s", saved.ID)
	m.amount.SetValue("")
	m.category.SetValue("")
	m.note.SetValue("")
	m.date.SetValue("")
	return m.refresh()
}

func (m dashboardModel) applyFilter() dashboardModel {
	var filter core.EntryFilter

	if v := strings.TrimSpace(m.filterFrom.Value()); v != "" {
		from, err := parseInputDate(v)
		if err != nil {
			m.status = err.Error()
			return m
		}
		filter.From = from
	}
	if v := strings.TrimSpace(m.filterTo.Value()); v != "" {
		to, err := parseInputDate(v)
		if err != nil {
			m.status = err.Error()
			return m
		}
		filter.To = to
	}
	if v := m.filterCat.Value(); strings.TrimSpace(v) != "" {
		category, err := core.NewCategory(v)
		if err != nil {
			m.status = err.Error()
			return m
		}
		filter.Category = category
	}

	m.filter = filter
	m.status = ""
	m.cursor = 0
	return m.refresh()
}

func (m dashboardModel) toggleKind() dashboardModel {
	if m.kind == core.Expense {
		m.kind = core.Income
	} else {
		m.kind = core.Expense
	}
	return m
}

func (m dashboardModel) update(msg tea.Msg) (dashboardModel, navigate, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, navNone, nil
	}

	switch key.String() {
	case "esc":
		return m, navLogin, nil
	case "tab":
		return m.focusNext(), navNone, nil
	case "shift+tab":
		return m.focusPrev(), navNone, nil
	case "up":
		if m.focus == dashFocusList && m.cursor > 0 {
			m.cursor--
		}
		return m, navNone, nil
	case "down":
		if m.focus == dashFocusList && m.cursor+1 < len(m.entries) {
			m.cursor++
		}
		return m, navNone, nil
	case "left", "right":
		if m.focus == dashFocusKind {
			return m.toggleKind(), navNone, nil
		}
	case "enter":
		switch m.focus {
		case dashFocusKind:
			return m.toggleKind(), navNone, nil
		case dashFocusAddButton:
			return m.submit(), navNone, nil
		case dashFocusFilterFrom, dashFocusFilterTo, dashFocusFilterCategory:
			return m.applyFilter(), navNone, nil
		case dashFocusList:
			return m, navNone, nil
		default:
			return m.focusNext(), navNone, nil
		}
	case "r":
		if m.focus == dashFocusList {
			m.status = ""
			return m.refresh(), navNone, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case dashFocusAmount:
		m.amount, cmd = m.amount.Update(msg)
	case dashFocusCategory:
		m.category, cmd = m.category.Update(msg)
	case dashFocusNote:
		m.note, cmd = m.note.Update(msg)
	case dashFocusDate:
		m.date, cmd = m.date.Update(msg)
	case dashFocusFilterFrom:
		m.filterFrom, cmd = m.filterFrom.Update(msg)
	case dashFocusFilterTo:
		m.filterTo, cmd = m.filterTo.Update(msg)
	case dashFocusFilterCategory:
		m.filterCat, cmd = m.filterCat.Update(msg)
	}
	return m, navNone, cmd
}

func (m dashboardModel) renderEntries() string {
	if len(m.entries) == 0 {
		return helpStyle.Render("no entries found - press 'r' to reload")
	}

	var b strings.Builder
	for i, entry := range m.entries {
		amount := entry.Amount.String()
		if entry.Kind == core.Expense {
			amount = expenseStyle.Render("-" + amount)
		} else {
			amount = incomeStyle.Render("+" + amount)
		}

		line := fmt.Sprintf("%-12s %-15s %s", entry.OccurredOn.Format(inputDateLayout), entry.Category, amount)
		if entry.Note != "" {
			line += helpStyle.Render("  " + entry.Note)
		}
		if m.focus == dashFocusList && i == m.cursor {
			line = selectedRowStyle.Render(">> ") + line
		} else {
			line = "   " + line
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m dashboardModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tui-money - " + m.user.Username))
	b.WriteString("\n\n")
	b.WriteString(m.renderEntries())
	b.WriteString("\n\n")

	kindLabel := string(m.kind)
	if m.focus == dashFocusKind {
		kindLabel = focusedStyle.Render("< " + kindLabel + " >")
	} else {
		kindLabel = blurredStyle.Render(kindLabel)
	}
	b.WriteString("New entry:  kind: " + kindLabel)
	b.WriteString("  amount: " + m.amount.View())
	b.WriteString("  category: " + m.category.View() + "\n")
	b.WriteString("  note: " + m.note.View())
	b.WriteString("  date: " + m.date.View())
	b.WriteString("  " + button("Add", m.focus == dashFocusAddButton) + "\n\n")

	b.WriteString("Filter:  " + m.filterFrom.View())
	b.WriteString("  " + m.filterTo.View())
	b.WriteString("  " + m.filterCat.View() + "\n")

	if m.status != "" {
		b.WriteString("\n" + errorStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab: next - enter: submit/apply - r: reload - esc: logout - ctrl+c: quit"))

	return boxStyle.Render(b.String())
}
