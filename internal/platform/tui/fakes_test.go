package tui

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// fakeGame plays back scripted step results.
type fakeGame struct {
	state    core.GameState
	cause    core.EventKind
	script   []core.StepResult
	inputs   []core.InputFrame
	resets   int
	resizedW int
	resizedH int
	best     int
}

func (g *fakeGame) ID() string                  { return "fake" }
func (g *fakeGame) Reset(core.RuntimeConfig)    { g.resets++; g.state = core.GameState{} }
func (g *fakeGame) Resize(w, h int)             { g.resizedW, g.resizedH = w, h }
func (g *fakeGame) State() core.GameState       { return g.state }
func (g *fakeGame) Cause() core.EventKind       { return g.cause }
func (g *fakeGame) TickInterval() time.Duration { return 100 * time.Millisecond }
func (g *fakeGame) SetBest(score int)           { g.best = score }

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	if len(g.script) == 0 {
		return core.StepResult{State: g.state}
	}
	res := g.script[0]
	g.script = g.script[1:]
	g.state = res.State
	return res
}

// memStore is an in-memory score store.
type memStore struct {
	saved   []storage.Result
	best    int
	saveErr error
}

func (s *memStore) SaveScore(r storage.Result) (int64, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	s.saved = append(s.saved, r)
	s.best = max(s.best, r.Score)
	return int64(len(s.saved)), nil
}

func (s *memStore) TopScores(limit int) ([]storage.ScoreEntry, error) {
	entries := make([]storage.ScoreEntry, 0, len(s.saved))
	for i, r := range s.saved {
		if i == limit {
			break
		}
		entries = append(entries, storage.ScoreEntry{
			ID:     int64(i + 1),
			RunID:  r.RunID.String(),
			Player: r.Player,
			Score:  r.Score,
			Level:  r.Level,
			Length: r.Length,
			Cause:  r.Cause,
		})
	}
	return entries, nil
}

func (s *memStore) HighScore() (int, error) { return s.best, nil }

func (s *memStore) Stats() (*storage.Stats, error) {
	return &storage.Stats{GamesCount: len(s.saved), HighScore: s.best}, nil
}

func (s *memStore) Close() error { return nil }

var errDiskFull = errors.New("disk full")

// countingRecorder counts recorder calls.
type countingRecorder struct {
	started, ended, food int
	finished             []string
}

func (r *countingRecorder) SessionStarted() { r.started++ }
func (r *countingRecorder) SessionEnded()   { r.ended++ }
func (r *countingRecorder) FoodEaten()      { r.food++ }

func (r *countingRecorder) GameFinished(_, _ int, cause string) {
	r.finished = append(r.finished, cause)
}
