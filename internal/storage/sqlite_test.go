package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file should be created along with parent directories")
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.snake/scores.db")
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(home, ".snake", "scores.db"))
	require.NoError(t, err)
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	_, err = store.SaveScore(Result{Score: 700})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	best, err := store.HighScore()
	require.NoError(t, err)
	require.Equal(t, 700, best)
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		_, err := store.SaveScore(Result{Player: "ana", Score: score, Level: score / 100, Length: 2 + score/100})
		require.NoError(t, err)
	}

	scores, err := store.TopScores(10)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	require.Equal(t, 200, scores[0].Score)
	require.Equal(t, 100, scores[1].Score)
	require.Equal(t, 50, scores[2].Score)

	require.Equal(t, "ana", scores[0].Player)
	require.Equal(t, 2, scores[0].Level)
	require.Equal(t, 4, scores[0].Length)
	require.False(t, scores[0].CreatedAt.IsZero(), "created_at should be parsed")
}

func TestStoreSaveScoreFields(t *testing.T) {
	store := openTestStore(t)
	runID := uuid.New()

	id, err := store.SaveScore(Result{
		RunID:    runID,
		Player:   "bo",
		Score:    1200,
		Level:    12,
		Length:   14,
		Cause:    "self",
		Duration: 95 * time.Second,
	})
	require.NoError(t, err)
	require.Positive(t, id)

	scores, err := store.TopScores(1)
	require.NoError(t, err)
	require.Len(t, scores, 1)

	e := scores[0]
	require.Equal(t, id, e.ID)
	require.Equal(t, runID.String(), e.RunID)
	require.Equal(t, "self", e.Cause)
	require.Equal(t, 95*time.Second, e.Duration)
}

func TestStoreGeneratesRunID(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveScore(Result{Score: 1})
	require.NoError(t, err)
	_, err = store.SaveScore(Result{Score: 2})
	require.NoError(t, err, "each zero RunID gets a fresh value")

	scores, err := store.TopScores(10)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	require.NotEqual(t, scores[0].RunID, scores[1].RunID)
	_, err = uuid.Parse(scores[0].RunID)
	require.NoError(t, err)
}

func TestStoreDuplicateRunID(t *testing.T) {
	store := openTestStore(t)
	runID := uuid.New()

	_, err := store.SaveScore(Result{RunID: runID, Score: 1})
	require.NoError(t, err)
	_, err = store.SaveScore(Result{RunID: runID, Score: 1})
	require.Error(t, err, "a run is recorded once")
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 20; i++ {
		_, err := store.SaveScore(Result{Score: i * 100})
		require.NoError(t, err)
	}

	scores, err := store.TopScores(5)
	require.NoError(t, err)
	require.Len(t, scores, 5)
	require.Equal(t, 2000, scores[0].Score)
	require.Equal(t, 1600, scores[4].Score)

	// Non-positive limit falls back to 10
	scores, err = store.TopScores(0)
	require.NoError(t, err)
	require.Len(t, scores, 10)
}

func TestStoreTopScoresTieOrder(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveScore(Result{Player: "first", Score: 300})
	require.NoError(t, err)
	_, err = store.SaveScore(Result{Player: "second", Score: 300})
	require.NoError(t, err)

	scores, err := store.TopScores(2)
	require.NoError(t, err)
	require.Equal(t, "first", scores[0].Player)
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.HighScore()
	require.NoError(t, err)
	require.Equal(t, 0, best, "empty store has no high score")

	for _, score := range []int{300, 900, 400} {
		_, err := store.SaveScore(Result{Score: score})
		require.NoError(t, err)
	}

	best, err = store.HighScore()
	require.NoError(t, err)
	require.Equal(t, 900, best)
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	require.NoError(t, err)
	require.Equal(t, 0, stats.GamesCount)
	require.True(t, stats.LastPlayed.IsZero())

	for _, r := range []Result{{Score: 100, Level: 1}, {Score: 300, Level: 3}} {
		_, err := store.SaveScore(r)
		require.NoError(t, err)
	}

	stats, err = store.Stats()
	require.NoError(t, err)
	require.Equal(t, 2, stats.GamesCount)
	require.Equal(t, 300, stats.HighScore)
	require.InDelta(t, 200.0, stats.AvgScore, 0.001)
	require.Equal(t, 4, stats.TotalFood)
	require.False(t, stats.LastPlayed.IsZero())
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveScore(Result{Score: 100})
	require.NoError(t, err)
	require.NoError(t, store.ClearScores())

	scores, err := store.TopScores(10)
	require.NoError(t, err)
	require.Empty(t, scores)
}

func TestParseTime(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.Equal(t, now, parseTime(now))
	require.Equal(t, now, parseTime("2026-01-02 03:04:05"))
	require.Equal(t, now, parseTime("2026-01-02T03:04:05Z"))
	require.True(t, parseTime(42).IsZero())
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	const workers, perWorker = 40, 10
	errs := make(chan error, workers*perWorker*2)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker {
				if _, err := store.SaveScore(Result{Player: "p", Score: w*perWorker + i + 1}); err != nil {
					errs <- err
				}
				if _, err := store.HighScore(); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stats, err := store.Stats()
	require.NoError(t, err)
	require.Equal(t, workers*perWorker, stats.GamesCount)
	require.Equal(t, workers*perWorker, stats.HighScore)
}
