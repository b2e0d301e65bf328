package wraith

import (
	"fmt"
	"strings"
	"time"
)

// Track runs fn under command tracking: tool_invoked on entry, then
// tool_succeeded or tool_failed (with the error's type name and elapsed
// duration) on exit. fn's error is returned unchanged, and a panic in fn
// still records a failure before propagating. Telemetry never alters
// control flow.
func (c *Client) Track(tool, command string, fn func() error) error {
	span := c.StartCommand(tool, command)
	defer func() {
		if r := recover(); r != nil {
			span.fail(panicTypeName(r))
			panic(r)
		}
	}()
	err := fn()
	span.End(err)
	return err
}

// CommandSpan tracks one command invocation for callers that cannot use
// a closure. Obtain one with StartCommand and finish it with End.
type CommandSpan struct {
	c       *Client
	tool    string
	command string
	start   time.Time
	done    bool
}

// StartCommand records tool_invoked and returns a span measuring the
// command from now.
func (c *Client) StartCommand(tool, command string) *CommandSpan {
	c.ToolInvoked(tool, command)
	return &CommandSpan{
		c:       c,
		tool:    tool,
		command: command,
		start:   time.Now(),
	}
}

// End records the outcome: tool_failed when err is non-nil, otherwise
// tool_succeeded. Calls after the first are no-ops.
func (s *CommandSpan) End(err error) {
	if err != nil {
		s.fail(errorTypeName(err))
		return
	}
	if s.done {
		return
	}
	s.done = true
	s.c.ToolSucceeded(s.tool, s.command, time.Since(s.start))
}

func (s *CommandSpan) fail(errorType string) {
	if s.done {
		return
	}
	s.done = true
	s.c.ToolFailed(s.tool, s.command, errorType, time.Since(s.start))
}

// errorTypeName returns the concrete type of err ("fs.PathError",
// "errors.errorString"), never its message.
func errorTypeName(err error) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}

// panicTypeName names a recovered panic value; errors by type, anything
// else by its Go type.
func panicTypeName(r any) string {
	if err, ok := r.(error); ok {
		return errorTypeName(err)
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", r), "*")
}
