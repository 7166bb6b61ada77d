// Package snake implements the classic snake game as pure, deterministic logic.
// The platform feeds it input frames at the rate returned by TickRate and
// renders it into a core.Screen.
package snake

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	// PointsPerFood is added to the score for every food eaten.
	PointsPerFood = 100

	hudHeight        = 1 // Status line above the board
	maxBufferedTurns = 2
	maxSpawnAttempts = 100
)

// Game implements the snake game.
type Game struct {
	cfg  config.SnakeConfig
	rng  *rand.Rand
	tick uint64

	score int
	level int
	best  int

	// Board size in cells
	width  int
	height int

	// Snake state
	snake     []core.Point // Head at index 0
	direction Direction    // Direction of the last completed move
	turns     []Direction  // Accepted turns waiting for the next moves

	food    core.Point
	hasFood bool

	// Layout
	screenW int
	screenH int
	frame   core.Rect // Board including its border, in screen cells

	gameOver bool
	won      bool
	paused   bool
	tooSmall bool
	cause    core.EventKind
}

// New creates a game using the given configuration.
func New(cfg config.SnakeConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the game identifier used for score storage.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.score = 0
	g.level = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.turns = g.turns[:0]
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH

	g.width, g.height = g.cfg.Board.Width, g.cfg.Board.Height
	if g.width == 0 {
		g.width = (rc.ScreenW - 2) / 2
	}
	if g.height == 0 {
		g.height = rc.ScreenH - hudHeight - 2
	}
	g.width = max(g.width, config.MinBoardSide)
	g.height = max(g.height, config.MinBoardSide)

	g.layout()
	g.initSnake()
	g.spawnFood()
}

// Resize repositions the board for a new terminal size.
// The board keeps its dimensions; if it no longer fits the game pauses
// until the terminal grows again.
func (g *Game) Resize(screenW, screenH int) {
	g.screenW = screenW
	g.screenH = screenH
	g.layout()
}

func (g *Game) layout() {
	w := g.width*2 + 2
	h := g.height + 2
	g.frame = core.NewRect((g.screenW-w)/2, hudHeight, w, h)
	g.tooSmall = !g.frame.Fits(g.screenW, g.screenH)
}

// initSnake places a two-segment snake on a random cell away from the walls,
// heading away from the nearest side walls.
func (g *Game) initSnake() {
	head := core.Pt(1+g.rng.Intn(g.width-2), 1+g.rng.Intn(g.height-2))
	g.direction = initialDirection(head, g.width, g.height)

	tail := head.Add(g.direction.Opposite().Delta())
	g.snake = []core.Point{head, tail}
}

// initialDirection heads left from the right half of the board, otherwise
// down from the top half and up from the rest. Halves are exact, so the
// middle row of an odd-height board counts as the top half.
func initialDirection(head core.Point, width, height int) Direction {
	switch {
	case 2*head.X > width:
		return DirLeft
	case 2*head.Y < height:
		return DirDown
	default:
		return DirUp
	}
}

// spawnFood moves the food to a random empty cell.
// Returns false when the snake fills the whole board.
func (g *Game) spawnFood() bool {
	for range maxSpawnAttempts {
		p := core.Pt(g.rng.Intn(g.width), g.rng.Intn(g.height))
		if !g.isSnakeAt(p) {
			g.food = p
			g.hasFood = true
			return true
		}
	}

	// Crowded board: pick from what is left
	var empty []core.Point
	for y := range g.height {
		for x := range g.width {
			p := core.Pt(x, y)
			if !g.isSnakeAt(p) {
				empty = append(empty, p)
			}
		}
	}
	if len(empty) == 0 {
		g.hasFood = false
		return false
	}
	g.food = empty[g.rng.Intn(len(empty))]
	g.hasFood = true
	return true
}

func (g *Game) isSnakeAt(p core.Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Steer requests a turn. The turn is rejected if it would reverse the snake
// onto itself or does not change course, measured against the last queued
// turn (or the current heading when nothing is queued).
func (g *Game) Steer(d Direction) bool {
	last := g.direction
	if n := len(g.turns); n > 0 {
		last = g.turns[n-1]
	}
	if d == last || d == last.Opposite() {
		return false
	}
	if len(g.turns) >= maxBufferedTurns {
		return false
	}
	g.turns = append(g.turns, d)
	return true
}

// Step advances the game by one tick: exactly one head move while playing.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return g.result([]core.Event{{Kind: core.EventRestarted, At: g.head()}})
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return g.result(nil)
	}

	var events []core.Event
	for _, a := range in.Turns {
		if d, ok := directionFor(a); ok && g.Steer(d) {
			events = append(events, core.Event{Kind: core.EventTurned, At: g.head()})
		}
	}

	return g.result(g.advance(events))
}

// advance performs one move: wall check, self check, then food.
func (g *Game) advance(events []core.Event) []core.Event {
	if len(g.turns) > 0 {
		g.direction = g.turns[0]
		g.turns = g.turns[1:]
	}

	next := g.head().Add(g.direction.Delta())

	if !next.In(g.width, g.height) {
		return g.end(events, core.EventCrashedWall, next)
	}

	growing := g.hasFood && next == g.food
	body := g.snake
	if !growing {
		// The tail tip moves out of the way this tick
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == next {
			return g.end(events, core.EventCrashedSelf, next)
		}
	}

	moved := make([]core.Point, 0, len(body)+1)
	moved = append(moved, next)
	g.snake = append(moved, body...)

	if growing {
		g.score += PointsPerFood
		g.level++
		events = append(events, core.Event{Kind: core.EventAte, At: next})
		if !g.spawnFood() {
			g.won = true
			return g.end(events, core.EventBoardFull, next)
		}
	}

	return events
}

func (g *Game) end(events []core.Event, cause core.EventKind, at core.Point) []core.Event {
	g.gameOver = true
	g.cause = cause
	g.turns = g.turns[:0]
	return append(events, core.Event{Kind: cause, At: at})
}

func (g *Game) head() core.Point {
	if len(g.snake) == 0 {
		return core.Point{}
	}
	return g.snake[0]
}

func (g *Game) result(events []core.Event) core.StepResult {
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		Length:   len(g.snake),
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Cause reports why the last game ended (wall, self or board_full).
// Only meaningful once State().GameOver is true.
func (g *Game) Cause() core.EventKind {
	return g.cause
}

// TickRate returns the moves per second for the current level.
func (g *Game) TickRate() int {
	return g.cfg.Speed.Rate(g.level)
}

// TickInterval returns the time between moves for the current level.
func (g *Game) TickInterval() time.Duration {
	return time.Second / time.Duration(g.TickRate())
}

// SetBest sets the best recorded score shown in the HUD.
func (g *Game) SetBest(score int) {
	g.best = score
}

// Board returns the board size in cells.
func (g *Game) Board() (width, height int) {
	return g.width, g.height
}

// Body returns a copy of the snake segments, head first.
func (g *Game) Body() []core.Point {
	return append([]core.Point(nil), g.snake...)
}

// Food returns the food position and whether food is on the board.
func (g *Game) Food() (core.Point, bool) {
	return g.food, g.hasFood
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Score: %d, Level: %d\n", g.tick, g.score, g.level)
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s\n", len(g.snake), g.direction)
	h := g.head()
	fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d)\n", h.X, h.Y, g.food.X, g.food.Y)
	fmt.Fprintf(&b, "GameOver: %v, Won: %v, Paused: %v\n", g.gameOver, g.won, g.paused)
	return b.String()
}
