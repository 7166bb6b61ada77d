package metrics

import (
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

func TestGameFinished(t *testing.T) {
	p := NewPrometheus()

	p.GameFinished(300, 3, "wall")
	p.GameFinished(500, 5, "wall")
	p.GameFinished(100, 1, "self")

	require.Equal(t, 2.0, testutil.ToFloat64(p.games.WithLabelValues("wall")))
	require.Equal(t, 1.0, testutil.ToFloat64(p.games.WithLabelValues("self")))
	require.Equal(t, 1, testutil.CollectAndCount(p.scores))
}

func TestSessionsGauge(t *testing.T) {
	p := NewPrometheus()

	p.SessionStarted()
	p.SessionStarted()
	p.SessionEnded()

	require.Equal(t, 1.0, testutil.ToFloat64(p.sessions))
}

func TestFoodCounter(t *testing.T) {
	p := NewPrometheus()
	p.FoodEaten()
	p.FoodEaten()
	require.Equal(t, 2.0, testutil.ToFloat64(p.food))
}

func TestHandlerServesMetrics(t *testing.T) {
	p := NewPrometheus()
	p.GameFinished(100, 1, "board_full")

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	require.Contains(t, rec.Body.String(), `snake_game_finished_total{cause="board_full"} 1`)
}

func TestInstrumentStore(t *testing.T) {
	p := NewPrometheus()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)

	s := p.InstrumentStore(store)
	defer s.Close()

	_, err = s.SaveScore(storage.Result{Score: 400})
	require.NoError(t, err)
	best, err := s.HighScore()
	require.NoError(t, err)
	require.Equal(t, 400, best)

	require.Equal(t, 2, testutil.CollectAndCount(p.storeCalls))
	require.Equal(t, 0, testutil.CollectAndCount(p.storeErrors))
}

type failingStore struct{ storage.ScoreStore }

func (failingStore) HighScore() (int, error) { return 0, errors.New("boom") }

func TestInstrumentStoreCountsErrors(t *testing.T) {
	p := NewPrometheus()
	s := p.InstrumentStore(failingStore{})

	_, err := s.HighScore()
	require.Error(t, err)
	require.Equal(t, 1.0, testutil.ToFloat64(p.storeErrors.WithLabelValues("HighScore")))
}
