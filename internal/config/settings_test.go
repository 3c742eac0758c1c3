package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, SourceMock, s.Sensor.Source)
	assert.Equal(t, DefaultBaudRate, s.Sensor.BaudRate)
	assert.Equal(t, TapThreshold, s.Motion.TapThreshold)
	assert.Equal(t, TapRefractory, s.Motion.TapRefractory)
	assert.Equal(t, ShakeOnStdDev, s.Motion.ShakeOnStdDev)
	assert.Equal(t, ShakeOffStdDev, s.Motion.ShakeOffStdDev)
	assert.Equal(t, ShakeArm, s.Motion.ShakeArm)
	assert.Equal(t, ShakeHold, s.Motion.ShakeHold)
	assert.Equal(t, DefaultBrightness, s.Display.Brightness)
	assert.Equal(t, DefaultSleepTimeout, s.Display.SleepTimeout)
	assert.True(t, s.BLEEnabled())
	assert.Equal(t, DeviceName, s.BLE.Name)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lightstick.yaml")
	data := `
sensor:
  source: Serial
  port: /dev/ttyACM0
  baud_rate: 9600
motion:
  shake_on: 80
  shake_off: 30
display:
  brightness: 40
  sleep_timeout: 10
ble:
  enabled: false
  name: Stick-7
log_level: DEBUG
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SourceSerial, s.Sensor.Source)
	assert.Equal(t, "/dev/ttyACM0", s.Sensor.Port)
	assert.Equal(t, 9600, s.Sensor.BaudRate)
	assert.Equal(t, 80.0, s.Motion.ShakeOnStdDev)
	assert.Equal(t, 30.0, s.Motion.ShakeOffStdDev)
	assert.Equal(t, MaxBrightness, s.Display.Brightness)
	assert.Equal(t, 10, s.Display.SleepTimeout)
	assert.False(t, s.BLEEnabled())
	assert.Equal(t, "Stick-7", s.BLE.Name)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sensor: [unclosed"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse settings file")
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want string
	}{
		{"unknown source", Settings{Sensor: SensorSettings{Source: "i2c"}}, "unsupported sensor source"},
		{"serial without port", Settings{Sensor: SensorSettings{Source: "serial"}}, "requires a port"},
		{"inverted hysteresis", Settings{Motion: MotionSettings{ShakeOnStdDev: 10, ShakeOffStdDev: 20}}, "must be below"},
		{"bad log level", Settings{LogLevel: "trace"}, "unsupported log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.Normalize()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
