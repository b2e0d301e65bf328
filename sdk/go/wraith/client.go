package wraith

import (
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/infraiq/wraith-go/internal/consent"
	"github.com/infraiq/wraith-go/internal/daemon"
	"github.com/infraiq/wraith-go/internal/diag"
	"github.com/infraiq/wraith-go/internal/dirs"
	"github.com/infraiq/wraith-go/internal/settings"
	"github.com/infraiq/wraith-go/internal/transport"
	"github.com/infraiq/wraith-go/internal/wire"
)

// Client sends telemetry events to the Wraith daemon. Every method is
// fire-and-forget: failures are swallowed, delivery is never confirmed.
// Thread-safe.
type Client struct {
	enabled   bool
	ctx       wire.Context
	locator   *daemon.Locator
	transport *transport.Transport
	log       *slog.Logger
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
)

// Default returns the process-wide client, created with default options
// on first use. Clients built with New are fully independent of it.
func Default() *Client {
	defaultOnce.Do(func() {
		defaultClient = New()
	})
	return defaultClient
}

// New creates an independent client. It never fails: configuration
// problems degrade to a client that silently drops events.
func New(opts ...Option) *Client {
	cfg := clientConfig{
		autoSpawn:   true,
		toolVersion: "unknown",
	}
	for _, o := range opts {
		o(&cfg)
	}

	layout, layoutErr := dirs.Default()

	var st settings.Settings
	if layoutErr == nil {
		st = settings.Load(layout.SettingsFile())
	}

	socketPath := cfg.socketPath
	if socketPath == "" {
		socketPath = st.SocketPath
	}
	if socketPath == "" && layoutErr == nil {
		socketPath = layout.Socket()
	}

	autoSpawn := cfg.autoSpawn
	if !cfg.autoSpawnSet && st.AutoSpawn != nil {
		autoSpawn = *st.AutoSpawn
	}

	daemonBin := cfg.daemonBin
	if daemonBin == "" {
		daemonBin = st.DaemonBin
	}

	var logPath string
	if layoutErr == nil {
		logPath = layout.LogFile()
	}
	log := diag.New(logPath, st.Debug)

	var enabled bool
	switch {
	case cfg.enabledSet:
		enabled = cfg.enabled
	case layoutErr == nil:
		enabled = consent.Resolve(layout.ConsentFile())
	default:
		enabled = consent.Resolve("")
	}
	if socketPath == "" {
		// Nowhere to send; behave as disabled.
		enabled = false
	}

	ctx := wire.Context{
		ToolVersion: cfg.toolVersion,
		Runtime:     runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
	}
	if enabled && layoutErr == nil {
		ctx.InstallationID = dirs.InstallationID(layout)
	}

	return &Client{
		enabled: enabled,
		ctx:     ctx,
		locator: &daemon.Locator{
			SocketPath: socketPath,
			AutoSpawn:  autoSpawn,
			Binary:     daemonBin,
			Spawn:      cfg.spawn,
			Log:        log,
		},
		transport: transport.New(socketPath, log),
		log:       log,
	}
}

// Enabled reports whether this client will attempt delivery at all.
func (c *Client) Enabled() bool {
	return c != nil && c.enabled
}

// ToolInvoked records that a tool command started.
func (c *Client) ToolInvoked(tool, command string) {
	c.emit(wire.ToolInvoked, tool, command, nil)
}

// ToolSucceeded records that a tool command completed.
func (c *Client) ToolSucceeded(tool, command string, duration time.Duration) {
	c.emit(wire.ToolSucceeded, tool, command, func(ev *wire.Event) {
		ev.DurationMS = duration.Milliseconds()
	})
}

// ToolFailed records that a tool command failed. errorType is the error's
// type name, never its message.
func (c *Client) ToolFailed(tool, command, errorType string, duration time.Duration) {
	c.emit(wire.ToolFailed, tool, command, func(ev *wire.Event) {
		ev.ErrorType = errorType
		ev.DurationMS = duration.Milliseconds()
	})
}

// ExceptionUnhandled records a crash that escaped the tool. traceback
// should be sanitized by the caller; pass "" to omit it.
func (c *Client) ExceptionUnhandled(tool, errorType, traceback string) {
	c.emit(wire.ExceptionUnhandled, tool, "", func(ev *wire.Event) {
		ev.ErrorType = errorType
		ev.Traceback = traceback
	})
}

// ValidationFailed records that a command's output failed validation.
func (c *Client) ValidationFailed(tool, command, details string) {
	c.emit(wire.ValidationFailed, tool, command, func(ev *wire.Event) {
		ev.Details = details
	})
}

// emit builds and delivers one event. Consent short-circuits before any
// IPC; everything past it is best-effort.
func (c *Client) emit(t wire.EventType, tool, command string, fill func(*wire.Event)) {
	if !c.Enabled() {
		return
	}

	ev := wire.Event{
		Level:     wire.DefaultLevel(t),
		Type:      t,
		Tool:      tool,
		Command:   command,
		Timestamp: time.Now().UTC(),
		Context:   c.ctx,
	}
	if fill != nil {
		fill(&ev)
	}

	if !c.locator.EnsureRunning() {
		c.log.Debug("daemon unavailable, dropping event", "event_type", string(t))
		return
	}
	if !c.transport.Send(ev) {
		c.log.Debug("send failed, event dropped", "event_type", string(t))
	}
}
