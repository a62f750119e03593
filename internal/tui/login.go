package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alekseinovikov/tui-money/internal/core"
)

type loginFocus int

const (
	loginFocusUser loginFocus = iota
	loginFocusPassword
	loginFocusLoginButton
	loginFocusCreateButton
)

type loginModel struct {
	repo core.UserRepository

	focus        loginFocus
	users        []string
	selected     int
	dropdownOpen bool
	password     textinput.Model
	status       string
	verified     *core.User
}

func newLoginModel(repo core.UserRepository) loginModel {
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	m := loginModel{repo: repo, password: password}
	return m.reset()
}

// reset reloads the user list and clears transient input, keeping the
// screen fresh whenever it becomes active again.
func (m loginModel) reset() loginModel {
	m.focus = loginFocusUser
	m.dropdownOpen = false
	m.selected = 0
	m.password.SetValue("")
	m.password.Blur()
	m.verified = nil
	m.status = ""

	users, err := m.repo.ListUsers(context.Background())
	if err != nil {
		m.status = err.Error()
		m.users = nil
		return m
	}
	m.users = users
	if len(users) == 0 {
		m.status = "no users yet - create one first"
	}
	return m
}

func (m loginModel) verifiedUser() core.User {
	if m.verified == nil {
		return core.User{}
	}
	return *m.verified
}

func (m loginModel) selectedUser() string {
	if m.selected >= 0 && m.selected < len(m.users) {
		return m.users[m.selected]
	}
	return ""
}

func (m loginModel) focusNext() loginModel {
	if m.dropdownOpen {
		return m
	}
	m.focus = (m.focus + 1) % 4
	return m.syncFocus()
}

func (m loginModel) focusPrev() loginModel {
	if m.dropdownOpen {
		return m
	}
	m.focus = (m.focus + 3) % 4
	return m.syncFocus()
}

func (m loginModel) syncFocus() loginModel {
	if m.focus == loginFocusPassword {
		m.password.Focus()
	} else {
		m.password.Blur()
	}
	return m
}

func (m loginModel) attemptLogin() (loginModel, navigate) {
	username := m.selectedUser()
	if username == "" {
		m.status = "select a user first"
		return m, navNone
	}
	user, err := m.repo.VerifyUser(context.Background(), username, m.password.Value())
	if err != nil {
		m.status = err.Error()
		return m, navNone
	}
	if user == nil {
		// Unknown user and wrong password are deliberately the same message.
		m.status = "invalid username or password"
		m.password.SetValue("")
		return m, navNone
	}
	m.verified = user
	return m, navDashboard
}

func (m loginModel) activate() (loginModel, navigate) {
	switch m.focus {
	case loginFocusUser:
		m.dropdownOpen = !m.dropdownOpen
		return m, navNone
	case loginFocusCreateButton:
		return m, navCreateUser
	default:
		return m.attemptLogin()
	}
}

func (m loginModel) update(msg tea.Msg) (loginModel, navigate, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, navNone, nil
	}

	switch key.String() {
	case "ctrl+q":
		return m, navQuit, nil
	case "esc":
		m.dropdownOpen = false
		return m, navNone, nil
	case "tab":
		return m.focusNext(), navNone, nil
	case "shift+tab":
		return m.focusPrev(), navNone, nil
	case "up":
		if m.dropdownOpen && m.selected > 0 {
			m.selected--
		}
		return m, navNone, nil
	case "down":
		if m.dropdownOpen && m.selected+1 < len(m.users) {
			m.selected++
		}
		return m, navNone, nil
	case "enter":
		var nav navigate
		m, nav = m.activate()
		return m, nav, nil
	}

	if m.focus == loginFocusPassword {
		var cmd tea.Cmd
		m.password, cmd = m.password.Update(msg)
		return m, navNone, cmd
	}
	return m, navNone, nil
}

func (m loginModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tui-money - login"))
	b.WriteString("\n\n")

	arrow := "v"
	if m.dropdownOpen {
		arrow = "^"
	}
	userLabel := m.selectedUser()
	if userLabel == "" {
		userLabel = "select user"
	}
	userField := fmt.Sprintf("%s %s", userLabel, arrow)
	if m.focus == loginFocusUser {
		userField = focusedStyle.Render(userField)
	} else {
		userField = blurredStyle.Render(userField)
	}
	b.WriteString("Username: " + userField + "\n")

	if m.dropdownOpen {
		for i, name := range m.users {
			line := "  " + name
			if i == m.selected {
				line = selectedRowStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("Password: " + m.password.View() + "\n\n")
	b.WriteString(button("Login", m.focus == loginFocusLoginButton))
	b.WriteString("   ")
	b.WriteString(button("Create User", m.focus == loginFocusCreateButton))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n" + errorStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab: next field - enter: select/submit - ctrl+c: quit"))

	return boxStyle.Render(b.String())
}
