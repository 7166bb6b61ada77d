package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/metrics"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the title menu.
Scores are stored per-server (all users share the same leaderboard)
and are recorded under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

Examples:
  snake serve                           # Listen on :23235 with auto-generated key
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --metrics :9100           # Also expose Prometheus metrics
  snake serve --idle-timeout 10m

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle time before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Serve Prometheus metrics on this address (e.g. :9100)")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake-ssh",
	})

	if err := serve(cmd, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, logger *log.Logger) error {
	prom := metrics.NewPrometheus()
	deps := tui.Deps{
		Logger:   logger,
		Recorder: prom,
		NewGame:  loadGameConfig(logger),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "db", flagDBPath, "err", err)
	} else {
		defer closeStore(store, logger)
		deps.Store = prom.InstrumentStore(store)
	}

	cfg := tui.SSHServerConfig{
		Address:        flagSSHAddr,
		HostKeyPath:    flagHostKey,
		IdleTimeout:    flagIdleTimeout,
		MetricsAddress: flagMetricsAddr,
	}

	server, err := tui.NewSSHServer(cfg, deps, prom)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connect := "ssh localhost"
	if _, port, err := net.SplitHostPort(server.Addr()); err == nil && port != "22" {
		connect += " -p " + port
	}
	logger.Info("press Ctrl+C to stop", "connect", connect)

	return server.ListenAndServe(ctx)
}
