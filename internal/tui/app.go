// Package tui is the terminal front end. It holds no persistent state of
// its own: every screen calls the repository capabilities synchronously
// and renders their results or errors.
package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alekseinovikov/tui-money/internal/core"
)

type screenID int

const (
	screenLogin screenID = iota
	screenCreateUser
	screenDashboard
)

// navigate is the cross-screen outcome of handling one message.
type navigate int

const (
	navNone navigate = iota
	navLogin
	navCreateUser
	navDashboard
	navQuit
)

type App struct {
	repo   core.Repository
	logger *slog.Logger

	active    screenID
	login     loginModel
	create    createUserModel
	dashboard dashboardModel
}

func New(repo core.Repository, logger *slog.Logger) App {
	return App{
		repo:      repo,
		logger:    logger,
		active:    screenLogin,
		login:     newLoginModel(repo),
		create:    newCreateUserModel(repo),
		dashboard: newDashboardModel(repo),
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return a, tea.Quit
	}

	var (
		nav navigate
		cmd tea.Cmd
	)
	switch a.active {
	case screenLogin:
		a.login, nav, cmd = a.login.update(msg)
	case screenCreateUser:
		a.create, nav, cmd = a.create.update(msg)
	case screenDashboard:
		a.dashboard, nav, cmd = a.dashboard.update(msg)
	}

	switch nav {
	case navQuit:
		return a, tea.Quit
	case navLogin:
		a.active = screenLogin
		a.login = a.login.reset()
	case navCreateUser:
		a.active = screenCreateUser
		a.create = a.create.reset()
	case navDashboard:
		a.active = screenDashboard
		a.dashboard = a.dashboard.open(a.login.verifiedUser())
		a.logger.Info("user logged in", "username", a.dashboard.user.Username)
	}
	return a, cmd
}

func (a App) View() string {
	switch a.active {
	case screenCreateUser:
		return a.create.view()
	case screenDashboard:
		return a.dashboard.view()
	default:
		return a.login.view()
	}
}
