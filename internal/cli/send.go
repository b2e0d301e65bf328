package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/infraiq/wraith-go/internal/diag"
	"github.com/infraiq/wraith-go/internal/dirs"
	"github.com/infraiq/wraith-go/internal/transport"
	"github.com/infraiq/wraith-go/internal/wire"
)

var (
	sendSocket  string
	sendTool    string
	sendCommand string
	sendType    string
)

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVar(&sendSocket, "socket", "", "Daemon socket path (default ~/.infraiq/wraith.sock)")
	sendCmd.Flags().StringVar(&sendTool, "tool", "wraithctl", "Tool name for the event")
	sendCmd.Flags().StringVar(&sendCommand, "command", "send", "Command name for the event")
	sendCmd.Flags().StringVar(&sendType, "type", string(wire.ToolInvoked), "Event type")
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a test event to the daemon",
	Long: "Builds one event and writes it to the daemon socket, bypassing\n" +
		"consent resolution. Use to verify the daemon end to end.",
	RunE: runSend,
}

func runSend(cmd *cobra.Command, args []string) error {
	socket := sendSocket
	if socket == "" {
		layout, err := dirs.Default()
		if err != nil {
			return fmt.Errorf("resolve socket path: %w", err)
		}
		socket = layout.Socket()
	}

	t := wire.EventType(sendType)
	ev := wire.Event{
		Level:     wire.DefaultLevel(t),
		Type:      t,
		Tool:      sendTool,
		Command:   sendCommand,
		Timestamp: time.Now().UTC(),
		Context:   wire.Context{ToolVersion: version},
	}
	if t == wire.ExceptionUnhandled {
		ev.Command = ""
		ev.ErrorType = "wraithctl.TestError"
	}
	if err := ev.Validate(); err != nil {
		return err
	}

	tr := transport.New(socket, diag.Discard())
	defer tr.Close()
	if !tr.Send(ev) {
		return fmt.Errorf("event not delivered; is the daemon listening on %s?", socket)
	}
	fmt.Printf("delivered %s event to %s\n", t, socket)
	return nil
}
