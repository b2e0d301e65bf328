// wraithsink — local debugging sink for the Wraith telemetry client.
// Listens on the client socket, decodes newline-delimited event records,
// and logs them as structured JSON. Stands in for the real daemon during
// development; it is deliberately tolerant of malformed records.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/infraiq/wraith-go/internal/dirs"
	"github.com/infraiq/wraith-go/internal/wire"
)

func main() {
	var socket string
	flag.StringVar(&socket, "socket", "", "socket path (default ~/.infraiq/wraith.sock)")
	flag.Parse()

	if socket == "" {
		layout, err := dirs.Default()
		if err != nil {
			fmt.Fprintf(os.Stderr, "wraithsink: %v\n", err)
			os.Exit(1)
		}
		if err := layout.Ensure(); err != nil {
			fmt.Fprintf(os.Stderr, "wraithsink: %v\n", err)
			os.Exit(1)
		}
		socket = layout.Socket()
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, socket, log); err != nil {
		fmt.Fprintf(os.Stderr, "wraithsink: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, socket string, log *slog.Logger) error {
	// Replace a stale socket from a previous run.
	_ = os.Remove(socket)

	ln, err := net.Listen("unix", socket)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", socket, err)
	}
	defer func() {
		_ = ln.Close()
		_ = os.Remove(socket)
	}()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	log.Info("listening", "socket", socket)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go serve(conn, log)
	}
}

// serve reads events from one client connection until it closes.
func serve(conn net.Conn, log *slog.Logger) {
	defer func() { _ = conn.Close() }()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		ev, err := wire.Decode(scanner.Bytes())
		if err != nil {
			log.Warn("malformed record", "error", err)
			continue
		}
		log.Info("event",
			"level", string(ev.Level),
			"event_type", string(ev.Type),
			"tool", ev.Tool,
			"command", ev.Command,
			"duration_ms", ev.DurationMS,
			"error_type", ev.ErrorType,
			"tool_version", ev.Context.ToolVersion,
		)
	}
}
