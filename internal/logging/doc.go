// Package logging provides structured logging for stationup.
//
// This package wraps zap with convenience functions for the logging
// patterns used during bring-up. Logging is silent unless a level is
// supplied, either explicitly or through the STATIONUP_LOG_LEVEL
// environment variable, so plain CLI runs only print what the commands
// themselves print.
//
// # Log Levels
//
//   - Debug: wpa_supplicant event lines, dropped events, socket traffic
//   - Info: bring-up milestones (configured, connecting, got ip, outcome)
//   - Warn: retries, failed connect requests
//   - Error: startup failures
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("got ip",
//	    zap.String("interface", "wlan0"),
//	    zap.Stringer("addr", addr),
//	)
//
// Domain helpers cover the recurring cases:
//
//	logging.LogStationEvent("wlan0", "disconnected", "reason=3")
//	logging.LogRetry("wlan0", attempt, budget)
//	logging.LogOutcome(ssid, "succeeded")
//
// # Configuration
//
// Initialize once at command startup:
//
//	if err := logging.Initialize(logLevel); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
