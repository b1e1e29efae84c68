package config

// Settings represents the stationup configuration file.
type Settings struct {
	Version int             `yaml:"version"`
	Station StationSettings `yaml:"station"`
	Probe   ProbeSettings   `yaml:"probe"`
}

// StationSettings configures the Wi-Fi bring-up run.
type StationSettings struct {
	// Interface is the wireless interface managed by wpa_supplicant
	Interface string `yaml:"interface"`

	// SSID is the access point to join
	SSID string `yaml:"ssid,omitempty"`

	// MaxRetries is the reconnect budget: how many times a disconnect
	// triggers another attempt before the run is given up
	MaxRetries int `yaml:"max_retries"`

	// CtrlDir overrides the wpa_supplicant control socket directory
	// (empty = /var/run/wpa_supplicant)
	CtrlDir string `yaml:"ctrl_dir,omitempty"`
}

// ProbeSettings configures the post-connect HTTP probe.
type ProbeSettings struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Path string `yaml:"path"`

	// RecvTimeout is the per-read receive timeout in seconds
	RecvTimeout int `yaml:"recv_timeout"`
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Station: StationSettings{
			Interface:  "wlan0",
			MaxRetries: 3,
		},
		Probe: ProbeSettings{
			Host:        "httpbin.org",
			Port:        80,
			Path:        "/",
			RecvTimeout: 5,
		},
	}
}
