package config

import "time"

const (
	// Sample buffer
	Capacity     = 16                      // Ring capacity, power of two
	SamplePeriod = 4166 * time.Microsecond // 240Hz
	CutoffHz     = 71.0                    // High-pass cutoff

	// Motion detector defaults, in filtered magnitude units (raw sensor counts)
	TapThreshold   = 180.0 // Single filtered spike that counts as a tap
	TapRefractory  = 48    // Samples to ignore after a tap (200ms at 240Hz)
	ShakeOnStdDev  = 12.0  // Window std-dev that starts a shake
	ShakeOffStdDev = 6.0   // Window std-dev that ends a shake
	ShakeArm       = 24    // Loud samples before a shake starts (100ms at 240Hz)
	ShakeHold      = 60    // Quiet samples before a shake ends (250ms at 240Hz)

	// Display
	DefaultBrightness   = 3
	MaxBrightness       = 15
	DefaultSleepTimeout = 5 // Seconds
	MaxSleepTimeout     = 999

	// BLE
	DeviceName     = "LightStick"
	ServiceUUID    = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	EventCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e"
	AdvIntervalMin = 100 * time.Millisecond

	// Serial sensor
	DefaultBaudRate = 115200

	// UI
	TargetFPS     = 15
	EventLogLines = 6

	// App
	AppName    = "LIGHTSTICK"
	AppVersion = "1.0"
)
