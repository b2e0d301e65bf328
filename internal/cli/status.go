package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/infraiq/wraith-go/internal/consent"
	"github.com/infraiq/wraith-go/internal/daemon"
	"github.com/infraiq/wraith-go/internal/dirs"
)

var statusSocket string

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusSocket, "socket", "", "Daemon socket path (default ~/.infraiq/wraith.sock)")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the Wraith daemon is reachable",
	Long: "Probes the daemon socket with a connect-and-close and reports the\n" +
		"result together with the resolved consent state.\n\n" +
		"Exit code 0 if the daemon is reachable, 1 otherwise.",
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	socket := statusSocket
	consentFile := ""
	if layout, err := dirs.Default(); err == nil {
		if socket == "" {
			socket = layout.Socket()
		}
		consentFile = layout.ConsentFile()
	}
	if socket == "" {
		return fmt.Errorf("no socket path available; pass --socket")
	}

	enabled := consent.Resolve(consentFile)
	fmt.Printf("socket:    %s\n", socket)
	fmt.Printf("telemetry: %s\n", onOff(enabled))

	if daemon.Probe(socket, 250*time.Millisecond) {
		fmt.Println("daemon:    reachable")
		return nil
	}
	fmt.Println("daemon:    unreachable")
	return fmt.Errorf("daemon is not reachable at %s", socket)
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
