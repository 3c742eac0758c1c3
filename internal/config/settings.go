package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings holds runtime options loaded from a YAML file. Build-time
// constants such as buffer capacity and filter parameters are not part of
// it.
type Settings struct {
	Sensor   SensorSettings  `yaml:"sensor"`
	Motion   MotionSettings  `yaml:"motion"`
	Display  DisplaySettings `yaml:"display"`
	BLE      BLESettings     `yaml:"ble"`
	LogFile  string          `yaml:"log_file"`
	LogLevel string          `yaml:"log_level"`
}

// SensorSettings selects where samples come from.
type SensorSettings struct {
	Source   string `yaml:"source"` // "mock" or "serial"
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	StopBits int    `yaml:"stop_bits"`
	Parity   string `yaml:"parity"`
	Seed     int64  `yaml:"seed"` // mock source seed, 0 = time based
}

// MotionSettings tunes tap and shake detection.
type MotionSettings struct {
	TapThreshold   float64 `yaml:"tap_threshold"`
	TapRefractory  int     `yaml:"tap_refractory"`
	ShakeOnStdDev  float64 `yaml:"shake_on"`
	ShakeOffStdDev float64 `yaml:"shake_off"`
	ShakeArm       int     `yaml:"shake_arm"`
	ShakeHold      int     `yaml:"shake_hold"`
}

// DisplaySettings holds screen brightness and sleep.
type DisplaySettings struct {
	Brightness   int `yaml:"brightness"`
	SleepTimeout int `yaml:"sleep_timeout"` // seconds
}

// BLESettings configures the peripheral link.
type BLESettings struct {
	Enabled *bool  `yaml:"enabled"`
	Name    string `yaml:"name"`
}

// Source kinds.
const (
	SourceMock   = "mock"
	SourceSerial = "serial"
)

// Default returns settings with every default applied.
func Default() Settings {
	s, _ := Settings{}.Normalize()
	return s
}

// Load reads settings from a YAML file and applies defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return s.Normalize()
}

// Normalize validates the settings and fills unset values with defaults.
func (s Settings) Normalize() (Settings, error) {
	out := s

	src := strings.ToLower(strings.TrimSpace(out.Sensor.Source))
	switch src {
	case "":
		src = SourceMock
	case SourceMock, SourceSerial:
	default:
		return out, fmt.Errorf("unsupported sensor source %q: expected mock or serial", out.Sensor.Source)
	}
	out.Sensor.Source = src
	if src == SourceSerial && out.Sensor.Port == "" {
		return out, fmt.Errorf("sensor source serial requires a port")
	}
	if out.Sensor.BaudRate <= 0 {
		out.Sensor.BaudRate = DefaultBaudRate
	}

	if out.Motion.TapThreshold <= 0 {
		out.Motion.TapThreshold = TapThreshold
	}
	if out.Motion.TapRefractory <= 0 {
		out.Motion.TapRefractory = TapRefractory
	}
	if out.Motion.ShakeOnStdDev <= 0 {
		out.Motion.ShakeOnStdDev = ShakeOnStdDev
	}
	if out.Motion.ShakeOffStdDev <= 0 {
		out.Motion.ShakeOffStdDev = ShakeOffStdDev
	}
	if out.Motion.ShakeArm <= 0 {
		out.Motion.ShakeArm = ShakeArm
	}
	if out.Motion.ShakeHold <= 0 {
		out.Motion.ShakeHold = ShakeHold
	}
	if out.Motion.ShakeOffStdDev >= out.Motion.ShakeOnStdDev {
		return out, fmt.Errorf("shake_off %.1f must be below shake_on %.1f",
			out.Motion.ShakeOffStdDev, out.Motion.ShakeOnStdDev)
	}

	if out.Display.Brightness <= 0 {
		out.Display.Brightness = DefaultBrightness
	}
	if out.Display.Brightness > MaxBrightness {
		out.Display.Brightness = MaxBrightness
	}
	if out.Display.SleepTimeout <= 0 {
		out.Display.SleepTimeout = DefaultSleepTimeout
	}
	if out.Display.SleepTimeout > MaxSleepTimeout {
		out.Display.SleepTimeout = MaxSleepTimeout
	}

	if out.BLE.Enabled == nil {
		on := true
		out.BLE.Enabled = &on
	}
	if out.BLE.Name == "" {
		out.BLE.Name = DeviceName
	}

	lvl := strings.ToLower(strings.TrimSpace(out.LogLevel))
	switch lvl {
	case "":
		lvl = "info"
	case "debug", "info", "warn", "error":
	default:
		return out, fmt.Errorf("unsupported log level %q", out.LogLevel)
	}
	out.LogLevel = lvl

	return out, nil
}

// BLEEnabled reports whether the BLE link should be started.
func (s Settings) BLEEnabled() bool {
	return s.BLE.Enabled == nil || *s.BLE.Enabled
}
