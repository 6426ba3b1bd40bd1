// tickws - standalone echo host for the tickws server core.
//
// The serve command is a complete example of embedding: a fixed-rate ticker
// stands in for the host's scheduling cycle, Poll runs once per tick, and
// the drained events are echoed straight back to their peers.
package main

import (
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickws/tickws/pkg/config"
	"github.com/tickws/tickws/pkg/logging"
	"github.com/tickws/tickws/pkg/server"
)

// Build-time variables set via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

var (
	serveConfig    string
	serveListen    string
	serveTick      time.Duration
	serveLogLevel  string
	serveLogFormat string
	serveLogFile   string
)

var rootCmd = &cobra.Command{
	Use:           "tickws",
	Short:         "Tick-driven WebSocket server",
	Version:       Version + " (" + Commit + ")",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the echo host loop",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "YAML config file")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (overrides config)")
	serveCmd.Flags().DurationVar(&serveTick, "tick", 16*time.Millisecond, "tick interval")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "log level: debug, info, warn, error")
	serveCmd.Flags().StringVar(&serveLogFormat, "log-format", "", "log format: text, json")
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "duplicate log output into this file")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("tickws: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if serveConfig != "" {
		loaded, err := config.Load(serveConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if serveListen != "" {
		cfg.Listen = serveListen
	}
	if serveLogLevel != "" {
		cfg.Log.Level = serveLogLevel
	}
	if serveLogFormat != "" {
		cfg.Log.Format = serveLogFormat
	}
	if serveLogFile != "" {
		cfg.Log.File = serveLogFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := buildLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	srv := server.New(cfg, server.WithLogger(logger))
	if err := srv.Start(); err != nil {
		return err
	}
	defer srv.Close()
	logger.Info("echo host running", "addr", srv.Addr(), "tick", serveTick)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(serveTick)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			logger.Info("shutting down")
			return srv.Close()
		case <-ticker.C:
			for _, ev := range srv.Poll() {
				echo(logger, srv, ev)
			}
		}
	}
}

// echo implements the demo host logic: everything a peer sends comes back.
func echo(logger *slog.Logger, srv *server.Server, ev server.Event) {
	switch ev := ev.(type) {
	case server.OpenEvent:
		logger.Info("peer connected", "peer", ev.Peer, "mode", ev.Mode)
	case server.MessageEvent:
		if err := srv.SendText(ev.Peer, ev.Data); err != nil {
			logger.Warn("echo failed", "peer", ev.Peer, "error", err)
		}
	case server.BinaryEvent:
		if err := srv.SendBinary(ev.Peer, ev.Data); err != nil {
			logger.Warn("echo failed", "peer", ev.Peer, "error", err)
		}
	case server.RawFrameEvent:
		if err := srv.SendFrame(ev.Peer, ev.Frame); err != nil {
			logger.Warn("raw echo failed", "peer", ev.Peer, "error", err)
		}
	case server.PongEvent:
		logger.Debug("pong", "peer", ev.Peer, "len", len(ev.Data))
	case server.CloseEvent:
		logger.Info("peer disconnected", "peer", ev.Peer)
	}
}

func buildLogger(lc config.LogConfig) (*slog.Logger, func(), error) {
	level := logging.ParseLevel(lc.Level)
	format := logging.ParseFormat(lc.Format)

	if lc.File == "" {
		logger := logging.New(logging.Config{Level: level, Format: format})
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	mk := func(w io.Writer) slog.Handler {
		if format == logging.FormatJSON {
			return slog.NewJSONHandler(w, opts)
		}
		return slog.NewTextHandler(w, opts)
	}
	logger := slog.New(logging.NewMultiHandler(mk(os.Stderr), mk(f)))
	return logger, func() { f.Close() }, nil
}
