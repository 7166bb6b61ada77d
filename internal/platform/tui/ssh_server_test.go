package tui

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-snake/internal/metrics"
)

// fakeSession implements the parts of ssh.Session the tea handler touches.
type fakeSession struct {
	ssh.Session
	user   string
	pty    *ssh.Pty
	stderr bytes.Buffer
	exit   int
	closed bool
}

func (s *fakeSession) User() string          { return s.user }
func (s *fakeSession) Stderr() io.ReadWriter { return &s.stderr }
func (s *fakeSession) RemoteAddr() net.Addr  { return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)} }

func (s *fakeSession) Exit(code int) error {
	s.exit = code
	return nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func (s *fakeSession) Pty() (ssh.Pty, <-chan ssh.Window, bool) {
	if s.pty == nil {
		return ssh.Pty{}, nil, false
	}
	return *s.pty, nil, true
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func newTestServer(t *testing.T, cfg SSHServerConfig, prom *metrics.Prometheus) *SSHServer {
	t.Helper()
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")
	srv, err := NewSSHServer(cfg, Deps{Store: &memStore{best: 300}}, prom)
	require.NoError(t, err)
	return srv
}

func TestNewSSHServerUsesPrometheusRecorder(t *testing.T) {
	prom := metrics.NewPrometheus()
	srv := newTestServer(t, SSHServerConfig{Address: "127.0.0.1:0"}, prom)

	require.Same(t, prom, srv.deps.Recorder)
	require.Nil(t, srv.metrics, "no metrics listener without an address")
	require.Equal(t, "127.0.0.1:0", srv.Addr())
}

func TestTeaHandlerStartsSessionForUser(t *testing.T) {
	srv := newTestServer(t, DefaultSSHServerConfig(), nil)
	sess := &fakeSession{
		user: "alice",
		pty:  &ssh.Pty{Term: "xterm", Window: ssh.Window{Width: 100, Height: 30}},
	}

	model, opts := srv.teaHandler(sess)

	sm, ok := model.(SessionModel)
	require.True(t, ok)
	require.Equal(t, "alice", sm.deps.Player)
	require.Equal(t, 100, sm.config.ScreenW)
	require.Equal(t, 30, sm.config.ScreenH)
	require.NotEmpty(t, opts)
	require.Contains(t, sm.View(), "Best: 300")
}

func TestTeaHandlerRejectsSessionWithoutPty(t *testing.T) {
	srv := newTestServer(t, DefaultSSHServerConfig(), nil)
	sess := &fakeSession{user: "bob"}

	model, opts := srv.teaHandler(sess)

	require.Nil(t, model)
	require.Nil(t, opts)
	require.Contains(t, sess.stderr.String(), "interactive terminal")
	require.Equal(t, 1, sess.exit)
	require.True(t, sess.closed)
}

func TestLoggingMiddlewareTracksSessions(t *testing.T) {
	srv := newTestServer(t, DefaultSSHServerConfig(), nil)
	rec := &countingRecorder{}
	srv.deps.Recorder = rec

	var live int
	handler := srv.loggingMiddleware(func(ssh.Session) { live = rec.started - rec.ended })
	handler(&fakeSession{user: "carol"})

	require.Equal(t, 1, live)
	require.Equal(t, 1, rec.started)
	require.Equal(t, 1, rec.ended)
}

func TestListenAndServeShutsDownOnCancel(t *testing.T) {
	sshAddr := freeAddr(t)
	metricsAddr := freeAddr(t)
	prom := metrics.NewPrometheus()
	srv := newTestServer(t, SSHServerConfig{
		Address:        sshAddr,
		IdleTimeout:    time.Minute,
		MetricsAddress: metricsAddr,
	}, prom)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + metricsAddr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", sshAddr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err := net.Dial("tcp", metricsAddr)
	require.Error(t, err, "metrics listener is closed after shutdown")
}
