package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-jigsaw/internal/core"
	"github.com/vovakirdan/tui-jigsaw/internal/game"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

// Model is the Bubble Tea model for an interactive puzzle session.
type Model struct {
	session    *game.Jigsaw
	screen     *core.Screen
	store      *storage.Store
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	quitting   bool
	solveSaved bool // Whether the current completion was recorded
}

// NewModel creates a new Bubble Tea model for the given session.
func NewModel(session *game.Jigsaw, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		session:    session,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the tick loop.
func (m Model) Init() tea.Cmd {
	//nolint:errcheck // First Reset runs again on the first resize event
	m.session.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize regenerates the puzzle scaled to the new terminal size.
// Assembly progress does not survive a resize; scatter positions and the
// snap projection both depend on the board dimensions.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	//nolint:errcheck // A failed reset leaves the previous board in place
	m.session.Reset(m.config)
	m.solveSaved = false

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		//nolint:errcheck // A failed reset leaves the previous board in place
		m.session.Reset(m.config)
		m.solveSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	m.session.Step(m.inputFrame)

	// Record the solve time once per completion
	if m.session.Completed() && !m.solveSaved {
		if m.store != nil {
			st := m.session.State()
			//nolint:errcheck // Best-effort save, session continues regardless
			m.store.SaveSolve(st.Strategy, st.Pieces, st.Elapsed)
		}
		m.solveSaved = true
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)

	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given session.
func Run(session *game.Jigsaw, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(session, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
