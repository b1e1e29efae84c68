// Package config provides user configuration management for stationup.
//
// This package manages a YAML-based configuration file holding the
// station settings (interface, SSID, retry budget) and the HTTP probe
// target. The configuration follows OS-specific conventions for storage
// location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/stationup/config.yaml or $HOME/.config/stationup/config.yaml
//   - macOS: $HOME/.config/stationup/config.yaml
//   - Windows: %LOCALAPPDATA%\stationup\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores the Wi-Fi passphrase. It comes
// from the STATIONUP_PASSPHRASE environment variable or an interactive
// prompt.
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	settings.Station.SSID = "homenet"
//	if err := settings.Save(); err != nil {
//	    return err
//	}
//
// Loading a missing file yields the defaults; keys present in the file
// override them. Saves are atomic (temp file + rename).
package config
