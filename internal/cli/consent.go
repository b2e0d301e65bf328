package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/infraiq/wraith-go/internal/consent"
	"github.com/infraiq/wraith-go/internal/dirs"
)

func init() {
	consentCmd.AddCommand(consentShowCmd, consentEnableCmd, consentDisableCmd)
	rootCmd.AddCommand(consentCmd)
}

var consentCmd = &cobra.Command{
	Use:   "consent",
	Short: "Show or change the telemetry consent preference",
}

var consentShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved consent state and its source",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefsPath, err := prefsFile()
		if err != nil {
			return err
		}
		if consent.EnvOptOut() {
			fmt.Printf("telemetry: disabled (%s environment override)\n", consent.EnvVar)
			return nil
		}
		if consent.Resolve(prefsPath) {
			fmt.Println("telemetry: enabled")
		} else {
			fmt.Printf("telemetry: disabled (%s)\n", prefsPath)
		}
		return nil
	},
}

var consentEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Record consent to telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPreference(true)
	},
}

var consentDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Opt out of telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPreference(false)
	},
}

func setPreference(enabled bool) error {
	prefsPath, err := prefsFile()
	if err != nil {
		return err
	}
	if err := consent.SetPreference(prefsPath, enabled); err != nil {
		return err
	}
	fmt.Printf("telemetry %s (%s)\n", onOff(enabled), prefsPath)
	if consent.EnvOptOut() {
		fmt.Fprintf(os.Stderr, "note: %s is set and overrides the preference file\n", consent.EnvVar)
	}
	return nil
}

func prefsFile() (string, error) {
	layout, err := dirs.Default()
	if err != nil {
		return "", fmt.Errorf("resolve preference file: %w", err)
	}
	return layout.ConsentFile(), nil
}
