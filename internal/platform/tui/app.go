package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
)

// AppModel manages the full flow: menu -> game -> menu, with the results
// screen one key away. It is the top-level model for local and SSH runs.
type AppModel struct {
	host     *Host
	screen   screen
	menu     MenuModel
	game     GameModel
	board    ScoreboardModel
	direct   bool // started on a game; leaving it ends the program
	quitting bool
}

// NewAppModel starts at the menu.
func NewAppModel(host *Host) AppModel {
	m := AppModel{host: host}
	m.menu = m.newMenu()
	return m
}

// NewDirectAppModel starts straight into gameID. Leaving the game ends
// the program instead of showing the menu.
func NewDirectAppModel(host *Host, gameID string) AppModel {
	m := AppModel{
		host:   host,
		screen: screenGame,
		direct: true,
	}
	m.game = NewGameModel(host, gameID, host.Tier)
	return m
}

func (m AppModel) newMenu() MenuModel {
	menu := NewMenuModel(m.host.Tier, m.host.Width, m.host.Height)
	if p := m.host.Manager.Policy(); p.Downgraded() {
		menu.notice = "Simplified rendering: " + p.Reason()
	}
	return menu
}

// Init initializes the current screen.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the current screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.host.Width = wsm.Width
		m.host.Height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		gameID := ""
		if len(m.menu.items) > 0 {
			gameID = m.menu.items[m.menu.cursor].GameID
		}
		m.board = NewScoreboardModel(m.host.Store, m.host.Width, m.host.Height, gameID)
		m.screen = screenScores
		m.menu.openScoreboard = false
		return m, m.board.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.host.Tier = m.menu.Tier()
		m.game = NewGameModel(m.host, selected.GameID, m.menu.Tier())
		m.screen = screenGame
		m.menu.selected = nil
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		if m.direct {
			m.quitting = true
			return m, tea.Quit
		}
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the results screen is open.
func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.board = board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.IsGoingBack() {
		m.screen = screenMenu
		return m, nil
	}

	return m, cmd
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// Close destroys any live session. Hosts call it once the program exits.
func (m AppModel) Close() {
	m.host.Manager.DestroySession(context.Background())
}

// ProgramOptions are the Bubble Tea options every host uses: alternate
// screen, mouse with drag motion and focus reports for visibility.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	}
}

// Run runs the menu-driven program on the local terminal.
func Run(host *Host) error {
	return run(NewAppModel(host))
}

// RunGame runs a single game on the local terminal.
func RunGame(host *Host, gameID string) error {
	return run(NewDirectAppModel(host, gameID))
}

func run(model AppModel) error {
	defer model.Close()

	p := tea.NewProgram(model, ProgramOptions()...)
	_, err := p.Run()
	return err
}
