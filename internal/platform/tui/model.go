package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/metrics"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Game is the contract between the platform and a running game.
type Game interface {
	ID() string
	Reset(cfg core.RuntimeConfig)
	Resize(screenW, screenH int)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	Cause() core.EventKind
	TickInterval() time.Duration
	SetBest(score int)
}

// Deps are the collaborators shared by every model in a session.
// Store may be nil when no database is available.
type Deps struct {
	Store    storage.ScoreStore
	Logger   *log.Logger
	Recorder metrics.Recorder
	Player   string
	NewGame  func() Game
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.Recorder == nil {
		d.Recorder = metrics.Nop{}
	}
	if d.Player == "" {
		d.Player = defaultPlayer()
	}
	return d
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// tickGen hands out tick generations so ticks from a finished game model
// never drive a new one.
var tickGen atomic.Int64

// GameModel is the Bubble Tea model that runs one game.
type GameModel struct {
	game       Game
	deps       Deps
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	gen        int
	runID      uuid.UUID
	started    time.Time
	best       int
	quitting   bool
	backToMenu bool
	scoreSaved bool
	standalone bool // No menu to return to: Back quits
}

// NewGameModel creates a model for a fresh game.
func NewGameModel(deps Deps, cfg core.RuntimeConfig) GameModel {
	deps = deps.withDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:       deps.NewGame(),
		deps:       deps,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		gen:        int(tickGen.Add(1)),
	}

	m.game.Reset(cfg)
	m.gameState = m.game.State()
	m.loadBest()
	m.newRun()
	return m
}

func (m *GameModel) loadBest() {
	if m.deps.Store == nil {
		return
	}
	best, err := m.deps.Store.HighScore()
	if err != nil {
		m.deps.Logger.Warn("could not load high score", "err", err)
		return
	}
	m.best = best
	m.game.SetBest(best)
}

func (m *GameModel) newRun() {
	m.runID = uuid.New()
	m.started = time.Now()
	m.scoreSaved = false
	m.deps.Logger.Info("game started", "run", m.runID, "player", m.deps.Player, "seed", m.config.Seed)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.gen, m.game.TickInterval())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.abandonRun()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu is only offered while the game is not running
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.abandonRun()
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleTick runs one simulation step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	for _, ev := range result.Events {
		switch ev.Kind {
		case core.EventAte:
			m.deps.Recorder.FoodEaten()
		case core.EventRestarted:
			m.game.SetBest(m.best)
			m.newRun()
		}
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.finishRun(m.game.Cause().String())
	}

	return m, tickCmd(m.gen, m.game.TickInterval())
}

// abandonRun records a game left before it ended.
func (m *GameModel) abandonRun() {
	if !m.scoreSaved && m.gameState.Score > 0 {
		m.finishRun("quit")
	}
}

// finishRun records a finished game exactly once.
func (m *GameModel) finishRun(cause string) {
	m.scoreSaved = true
	elapsed := time.Since(m.started)

	m.deps.Recorder.GameFinished(m.gameState.Score, m.gameState.Level, cause)
	m.deps.Logger.Info("game over",
		"run", m.runID,
		"score", m.gameState.Score,
		"level", m.gameState.Level,
		"cause", cause,
		"duration", elapsed.Round(time.Millisecond),
	)

	if m.gameState.Score > m.best {
		m.best = m.gameState.Score
	}

	if m.deps.Store == nil || m.gameState.Score == 0 {
		return
	}
	_, err := m.deps.Store.SaveScore(storage.Result{
		RunID:    m.runID,
		Player:   m.deps.Player,
		Score:    m.gameState.Score,
		Level:    m.gameState.Level,
		Length:   m.gameState.Length,
		Cause:    cause,
		Duration: elapsed,
	})
	if err != nil {
		m.deps.Logger.Error("could not save score", "run", m.runID, "err", err)
	}
}

// saveScreenshot writes the current screen to ~/.snake/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.deps.Logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.deps.Logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.deps.Logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.deps.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the state after the most recent tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the terminal until the user quits.
func Run(deps Deps, cfg core.RuntimeConfig) error {
	model := NewGameModel(deps, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
