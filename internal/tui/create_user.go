package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alekseinovikov/tui-money/internal/core"
)

type createFocus int

const (
	createFocusUsername createFocus = iota
	createFocusPassword
	createFocusRepeat
	createFocusCreateButton
	createFocusBackButton
)

type createUserModel struct {
	repo core.UserRepository

	focus    createFocus
	username textinput.Model
	password textinput.Model
	repeat   textinput.Model
	status   string
}

func newCreateUserModel(repo core.UserRepository) createUserModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	repeat := textinput.New()
	repeat.Placeholder = "repeat password"
	repeat.EchoMode = textinput.EchoPassword
	repeat.CharLimit = 128

	m := createUserModel{repo: repo, username: username, password: password, repeat: repeat}
	return m.reset()
}

func (m createUserModel) reset() createUserModel {
	m.focus = createFocusUsername
	m.status = ""
	m.username.SetValue("")
	m.password.SetValue("")
	m.repeat.SetValue("")
	return m.syncFocus()
}

func (m createUserModel) syncFocus() createUserModel {
	m.username.Blur()
	m.password.Blur()
	m.repeat.Blur()
	switch m.focus {
	case createFocusUsername:
		m.username.Focus()
	case createFocusPassword:
		m.password.Focus()
	case createFocusRepeat:
		m.repeat.Focus()
	}
	return m
}

func (m createUserModel) focusNext() createUserModel {
	m.focus = (m.focus + 1) % 5
	return m.syncFocus()
}

func (m createUserModel) focusPrev() createUserModel {
	m.focus = (m.focus + 4) % 5
	return m.syncFocus()
}

func (m createUserModel) submit() (createUserModel, navigate) {
	username := strings.TrimSpace(m.username.Value())
	if username == "" {
		m.status = "username cannot be empty"
		return m, navNone
	}
	if m.password.Value() == "" {
		m.status = "password cannot be empty"
		return m, navNone
	}
	if m.password.Value() != m.repeat.Value() {
		m.status = "passwords do not match"
		return m, navNone
	}

	_, err := m.repo.CreateUser(context.Background(), username, m.password.Value())
	if err != nil {
		m.status = err.Error()
		return m, navNone
	}
	return m, navLogin
}

func (m createUserModel) update(msg tea.Msg) (createUserModel, navigate, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, navNone, nil
	}

	switch key.String() {
	case "esc":
		return m, navLogin, nil
	case "tab", "down":
		return m.focusNext(), navNone, nil
	case "shift+tab", "up":
		return m.focusPrev(), navNone, nil
	case "enter":
		switch m.focus {
		case createFocusBackButton:
			return m, navLogin, nil
		case createFocusCreateButton, createFocusRepeat:
			var nav navigate
			m, nav = m.submit()
			return m, nav, nil
		default:
			return m.focusNext(), navNone, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case createFocusUsername:
		m.username, cmd = m.username.Update(msg)
	case createFocusPassword:
		m.password, cmd = m.password.Update(msg)
	case createFocusRepeat:
		m.repeat, cmd = m.repeat.Update(msg)
	}
	return m, navNone, cmd
}

func (m createUserModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tui-money - create user"))
	b.WriteString("\n\n")
	b.WriteString("Username: " + m.username.View() + "\n")
	b.WriteString("Password: " + m.password.View() + "\n")
	b.WriteString("Repeat:   " + m.repeat.View() + "\n\n")
	b.WriteString(button("Create", m.focus == createFocusCreateButton))
	b.WriteString("   ")
	b.WriteString(button("Back", m.focus == createFocusBackButton))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n" + errorStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab: next field - enter: submit - esc: back"))

	return boxStyle.Render(b.String())
}
