package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/muurk/stationup/internal/config"
	"github.com/muurk/stationup/internal/logging"
	"github.com/muurk/stationup/internal/netwatch"
	"github.com/muurk/stationup/internal/probe"
	"github.com/muurk/stationup/internal/tui"
	"github.com/muurk/stationup/internal/wifi"
	"github.com/muurk/stationup/internal/wpa"
)

// PassphraseEnvVar supplies the Wi-Fi passphrase non-interactively.
// The passphrase is never read from the config file.
const PassphraseEnvVar = "STATIONUP_PASSPHRASE"

// Command flags
var (
	configPath string
	logLevel   string

	ifaceName string
	ssid      string
	retries   int
	ctrlDir   string
	watchMode bool
	skipProbe bool

	probeHost    string
	probePort    int
	probePath    string
	probeTimeout int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error; default: silent)")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(probeCmd)

	// up flags are registered on root too so the default invocation
	// accepts them
	for _, cmd := range []*cobra.Command{rootCmd, upCmd} {
		cmd.Flags().StringVarP(&ifaceName, "interface", "i", "", "Wireless interface (default: wlan0)")
		cmd.Flags().StringVar(&ssid, "ssid", "", "Access point SSID")
		cmd.Flags().IntVar(&retries, "retries", -1, "Reconnect budget (default: 3)")
		cmd.Flags().StringVar(&ctrlDir, "ctrl-dir", "", "wpa_supplicant control socket directory")
		cmd.Flags().BoolVar(&watchMode, "watch", false, "Show a live bring-up view")
		cmd.Flags().BoolVar(&skipProbe, "skip-probe", false, "Skip the HTTP probe after connecting")
	}
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Bring the Wi-Fi station online",
	Long: `Bring the Wi-Fi station online.

Configures the network on wpa_supplicant, attaches to its event stream,
and retries failed connection attempts up to the configured budget. The
command blocks until the interface holds an IP lease (success) or the
budget is exhausted (failure), then runs the HTTP probe.

The passphrase comes from the STATIONUP_PASSPHRASE environment variable
or an interactive prompt. It is never stored.`,
	Example: `  # Join using settings from the config file
  stationup up

  # Join an explicit network with a bigger budget
  STATIONUP_PASSPHRASE=secret stationup up --ssid homenet --retries 5

  # Watch the attempt live
  stationup up --ssid homenet --watch`,
	RunE: runUp,
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run the HTTP connectivity probe",
	Long: `Run the HTTP connectivity probe without touching the station.

Sends a single HTTP/1.0 GET over a raw TCP socket and prints the
response. Hosts under .local are resolved via mDNS.`,
	Example: `  # Probe the default target (httpbin.org)
  stationup probe

  # Probe a device on the local network
  stationup probe --host evalve315260240.local --path /status`,
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().StringVar(&probeHost, "host", "", "Probe target host (default: httpbin.org)")
	probeCmd.Flags().IntVar(&probePort, "port", 0, "Probe target port (default: 80)")
	probeCmd.Flags().StringVar(&probePath, "path", "", "Probe request path (default: /)")
	probeCmd.Flags().IntVar(&probeTimeout, "timeout", 0, "Receive timeout in seconds (default: 5)")
}

// loadSettings reads the config file and overlays command-line flags.
func loadSettings() (*config.Settings, error) {
	var settings *config.Settings
	var err error
	if configPath != "" {
		settings, err = config.LoadFrom(configPath)
	} else {
		settings, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if ifaceName != "" {
		settings.Station.Interface = ifaceName
	}
	if ssid != "" {
		settings.Station.SSID = ssid
	}
	if retries >= 0 {
		settings.Station.MaxRetries = retries
	}
	if ctrlDir != "" {
		settings.Station.CtrlDir = ctrlDir
	}
	if probeHost != "" {
		settings.Probe.Host = probeHost
	}
	if probePort != 0 {
		settings.Probe.Port = probePort
	}
	if probePath != "" {
		settings.Probe.Path = probePath
	}
	if probeTimeout != 0 {
		settings.Probe.RecvTimeout = probeTimeout
	}
	return settings, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	station := settings.Station
	if station.SSID == "" {
		return errors.New("no SSID configured (use --ssid or the config file)")
	}

	passphrase, err := readPassphrase(station.SSID)
	if err != nil {
		return err
	}

	st := wpa.NewStation(station.Interface, station.CtrlDir, logging.GetLogger())
	if err := st.Configure(wifi.Credentials{SSID: station.SSID, Passphrase: passphrase}); err != nil {
		return err
	}
	defer st.Stop()

	latch := wifi.NewLatch()
	sup := wifi.NewSupervisor(st, station.MaxRetries, latch, logging.GetLogger())
	st.Subscribe(sup)

	watcher := netwatch.New(station.Interface, logging.GetLogger())
	if err := watcher.Start(sup); err != nil {
		return err
	}
	defer watcher.Stop()

	var set wifi.OutcomeSet
	if watchMode {
		set, err = watchBringUp(st, sup, station)
		if err != nil {
			return err
		}
	} else {
		fmt.Printf("Connecting %s to %q (retry budget %d)...\n",
			station.Interface, station.SSID, station.MaxRetries)
		if err := st.Start(); err != nil {
			return err
		}
		set = sup.WaitForOutcome()
	}

	switch {
	case set.Has(wifi.OutcomeSucceeded):
		logging.LogOutcome(station.SSID, wifi.OutcomeSucceeded.String())
		fmt.Printf("Connected to %q.\n", station.SSID)
	case set.Has(wifi.OutcomeExhausted):
		logging.LogOutcome(station.SSID, wifi.OutcomeExhausted.String())
		return fmt.Errorf("failed to connect to %q after %d retries",
			station.SSID, station.MaxRetries)
	default:
		// Unreachable as long as the latch holds its contract; if it
		// ever trips, the synchronization primitive is broken.
		return errors.New("bring-up finished with no outcome")
	}

	if skipProbe {
		return nil
	}
	return runProbeWith(settings.Probe)
}

// watchBringUp runs the live TUI around the bring-up. The station is
// started only once the program pumps messages, since event delivery
// feeds Program.Send.
func watchBringUp(st *wpa.Station, sup *wifi.Supervisor, station config.StationSettings) (wifi.OutcomeSet, error) {
	p := tea.NewProgram(tui.NewModel(station.Interface, station.SSID, station.MaxRetries))

	sup.Forward(func(ev wifi.Event) {
		p.Send(tui.EventMsg(ev))
	})
	go func() {
		p.Send(tui.OutcomeMsg(sup.WaitForOutcome()))
	}()

	startErr := make(chan error, 1)
	go func() {
		err := st.Start()
		if err != nil {
			// unblock the program so the error surfaces
			p.Send(tui.OutcomeMsg(0))
		}
		startErr <- err
	}()

	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	if err := <-startErr; err != nil {
		return 0, err
	}

	m := final.(tui.Model)
	if m.Aborted() {
		return 0, errors.New("aborted")
	}
	return m.Outcome(), nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	return runProbeWith(settings.Probe)
}

func runProbeWith(ps config.ProbeSettings) error {
	cfg := probe.Config{
		Host:        ps.Host,
		Port:        ps.Port,
		Path:        ps.Path,
		RecvTimeout: time.Duration(ps.RecvTimeout) * time.Second,
	}

	n, err := probe.Run(context.Background(), cfg, os.Stdout)
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	fmt.Printf("\nProbe done: %d bytes from %s.\n", n, cfg.Host)
	return nil
}

// readPassphrase resolves the Wi-Fi passphrase: environment variable
// first, then an interactive no-echo prompt. A non-interactive run
// without the variable set means an open network.
func readPassphrase(ssid string) (string, error) {
	if v := os.Getenv(PassphraseEnvVar); v != "" {
		return v, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}

	fmt.Fprintf(os.Stderr, "Passphrase for %q (empty for open network): ", ssid)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(secret), nil
}
