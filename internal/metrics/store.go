package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

// InstrumentStore wraps all store methods to instrument the underlying calls.
func (p *Prometheus) InstrumentStore(s storage.ScoreStore) storage.ScoreStore {
	return &instrumented{s: s, p: p}
}

type instrumented struct {
	s storage.ScoreStore
	p *Prometheus
}

func (m *instrumented) instrument(method string) func(error) {
	t := prometheus.NewTimer(m.p.storeCalls.WithLabelValues(method))
	return func(err error) {
		t.ObserveDuration()
		if err != nil {
			m.p.storeErrors.WithLabelValues(method).Inc()
		}
	}
}

func (m *instrumented) SaveScore(r storage.Result) (id int64, err error) {
	done := m.instrument("SaveScore")
	defer func() { done(err) }()
	return m.s.SaveScore(r)
}

func (m *instrumented) TopScores(limit int) (entries []storage.ScoreEntry, err error) {
	done := m.instrument("TopScores")
	defer func() { done(err) }()
	return m.s.TopScores(limit)
}

func (m *instrumented) HighScore() (score int, err error) {
	done := m.instrument("HighScore")
	defer func() { done(err) }()
	return m.s.HighScore()
}

func (m *instrumented) Stats() (stats *storage.Stats, err error) {
	done := m.instrument("Stats")
	defer func() { done(err) }()
	return m.s.Stats()
}

func (m *instrumented) Close() error {
	return m.s.Close()
}
