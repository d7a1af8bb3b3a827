package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/session"
)

// sessionReadyMsg carries the outcome of an asynchronous CreateSession.
type sessionReadyMsg struct {
	session *session.Session
	err     error
}

// sessionDestroyedMsg reports that teardown, including the stabilization
// delay, has finished.
type sessionDestroyedMsg struct{}

type exitKind int

const (
	exitNone exitKind = iota
	exitMenu
	exitQuit
)

// GameModel hosts one session: it forwards input, drives ticks and
// handles retry and exit intents.
type GameModel struct {
	host       *Host
	mount      *session.Slot
	req        session.Request
	sess       *session.Session
	keyMapper  *KeyMapper
	err        error
	width      int
	height     int
	held       bool // left mouse button is down
	leaving    exitKind
	quitting   bool
	backToMenu bool
}

// NewGameModel prepares a model for gameID at tier. The session is created
// by Init.
func NewGameModel(host *Host, gameID string, tier config.Tier) GameModel {
	mount := &session.Slot{}
	return GameModel{
		host:  host,
		mount: mount,
		req: session.Request{
			GameID: gameID,
			Tier:   tier,
			Seed:   host.Seed,
			Width:  host.Width,
			Height: host.Height,
			Mount:  mount,
		},
		keyMapper: NewKeyMapper(),
		width:     host.Width,
		height:    host.Height,
	}
}

// Init starts creating the session.
func (m GameModel) Init() tea.Cmd {
	return m.create()
}

func (m GameModel) create() tea.Cmd {
	manager, req := m.host.Manager, m.req
	req.Width, req.Height = m.width, m.height
	return func() tea.Msg {
		s, err := manager.CreateSession(context.Background(), req)
		return sessionReadyMsg{session: s, err: err}
	}
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			m.host.logger().Error("create session", "game", m.req.GameID, "err", msg.err)
			return m, nil
		}
		m.err = nil
		m.sess = msg.session
		if w, h := m.sess.Surface().Size(); w != m.width || h != m.height {
			m.sess.Resize(m.width, m.height)
		}
		return m, tickCmd(m.host.tickRate(), m.sess.ID())

	case TickMsg:
		return m.handleTick(msg)

	case sessionDestroyedMsg:
		leaving := m.leaving
		m.leaving = exitNone
		if leaving == exitQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.sess == nil {
			return m, nil
		}
		ev, ok := m.keyMapper.MapMouse(msg, m.held)
		if !ok {
			return m, nil
		}
		m.held = ev.Kind != core.EventDragEnd
		m.sess.Send(ev)
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.sess != nil {
			m.sess.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.FocusMsg:
		if m.sess != nil {
			m.sess.SetVisible(true)
		}
		return m, nil

	case tea.BlurMsg:
		if m.sess != nil {
			m.sess.SetVisible(false)
		}
		return m, nil

	case tea.ResumeMsg:
		// The terminal is ours again; the session restores on its own
		// schedule unless this succeeds first.
		if m.sess != nil {
			if err := m.sess.NotifyContextRestored(); err != nil {
				m.host.logger().Warn("restore after resume", "err", err)
			}
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ev, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		if m.sess == nil {
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.leave(exitQuit)
	}

	if m.sess == nil {
		// Creation failed: offer retry or a way back.
		if m.err == nil {
			return m, nil
		}
		switch ev.Action {
		case core.ActionRestart, core.ActionConfirm:
			m.err = nil
			return m, m.create()
		case core.ActionBack:
			m.backToMenu = true
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "ctrl+z":
		// Suspending takes the terminal away from the renderer.
		m.sess.NotifyContextLost()
		return m, tea.Suspend
	}

	m.sess.Send(ev)
	return m, nil
}

// handleTick runs one session tick and acts on the intent it raised.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if m.sess == nil || msg.Session != m.sess.ID() {
		return m, nil
	}

	res := m.sess.Tick()
	if res.Closed {
		return m, nil
	}

	switch res.Intent {
	case core.IntentRetry:
		m.sess.Retry()
	case core.IntentExit:
		return m, m.leave(exitMenu)
	}

	return m, tickCmd(m.host.tickRate(), m.sess.ID())
}

// leave detaches the session and tears it down off the update loop.
// The model finishes leaving when sessionDestroyedMsg arrives.
func (m *GameModel) leave(kind exitKind) tea.Cmd {
	m.leaving = kind
	m.sess = nil
	m.held = false
	manager := m.host.Manager
	return func() tea.Msg {
		manager.DestroySession(context.Background())
		return sessionDestroyedMsg{}
	}
}

// saveScreenshot writes the current frame under ~/.minilab/screenshots.
func (m *GameModel) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".minilab", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.host.logger().Warn("screenshot dir", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.ans", m.sess.GameID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.sess.View()), 0o600); err != nil {
		m.host.logger().Warn("screenshot", "err", err)
		return
	}
	m.host.logger().Info("screenshot saved", "path", path)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.err != nil {
		return m.errorView()
	}
	if m.leaving != exitNone {
		return centerBlock("Closing...", m.width, m.height)
	}
	if m.sess == nil {
		return centerBlock("Loading...", m.width, m.height)
	}

	return m.sess.View()
}

func (m GameModel) errorView() string {
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	lines := []string{
		errStyle.Render("Could not start the game"),
		"",
		m.err.Error(),
		"",
		"R: Retry  |  B: Back  |  Q: Quit",
	}
	return centerBlock(strings.Join(lines, "\n"), m.width, m.height)
}

// centerBlock places text in the middle of a width x height area.
func centerBlock(text string, width, height int) string {
	if width <= 0 || height <= 0 {
		return text
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

// Session returns the live session, or nil while creating or after exit.
func (m GameModel) Session() *session.Session {
	return m.sess
}

// Err returns the last creation error.
func (m GameModel) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
