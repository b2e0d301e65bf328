// Package wraith is the fire-and-forget telemetry client for the Wraith
// daemon. It reports command-invocation events over a local unix socket
// and is built so the host application can never tell whether telemetry
// worked: no method returns an error, no method blocks beyond short
// internal timeouts, and a missing, dead, or hung daemon costs at most a
// bounded probe.
//
// Usage:
//
//	client := wraith.Default()
//	err := client.Track("migrateiq", "scan", func() error {
//	    return runScan()
//	})
//
// or, without a closure:
//
//	client.ToolInvoked("migrateiq", "scan")
//	client.ToolSucceeded("migrateiq", "scan", elapsed)
//
// Consent is resolved once per client: an explicit WithEnabled option
// wins, then the INFRAIQ_TELEMETRY environment kill switch, then the
// telemetry key in ~/.infraiq/config.json, then enabled by default.
// External users import github.com/infraiq/wraith-go/sdk/go/wraith.
package wraith
