package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"lightstick.klederson.com/internal/app"
	"lightstick.klederson.com/internal/config"
	"lightstick.klederson.com/internal/link"
	"lightstick.klederson.com/internal/sensor"
)

var (
	flagDemo   bool
	flagConfig string
	flagPort   string
	flagBaud   int
	flagNoBLE  bool
	flagName   string
	flagLog    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lightstick",
		Short: "LightStick - wrist motion sensor with tap and shake detection",
		Long: `LightStick reads accelerometer samples, high-pass filters their magnitude
into a sliding window and detects taps and shakes from it. Events are
notified to the paired game host over Bluetooth Low Energy.

Real BLE advertising requires sudo or CAP_NET_ADMIN capability.
Use --demo flag for a simulated sensor and no Bluetooth hardware.`,
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run with a simulated sensor and a local event link")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "YAML settings file")
	rootCmd.Flags().StringVar(&flagPort, "port", "", "Serial port streaming x,y,z lines (selects the serial source)")
	rootCmd.Flags().IntVar(&flagBaud, "baud", config.DefaultBaudRate, "Serial baud rate")
	rootCmd.Flags().BoolVar(&flagNoBLE, "no-ble", false, "Do not advertise over Bluetooth")
	rootCmd.Flags().StringVar(&flagName, "name", config.DeviceName, "Advertised device name")
	rootCmd.Flags().StringVar(&flagLog, "log", "", "Write logs to this file (default: discarded)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(settings)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	src, srcName, err := openSource(settings)
	if err != nil {
		return err
	}
	defer src.Close()

	var pub link.Publisher
	if flagDemo || !settings.BLEEnabled() {
		pub = link.NewLoopback()
	} else {
		pub = link.NewPeripheral(settings.BLE.Name, logger)
	}

	model, err := app.New(app.Options{
		Settings:   settings,
		SourceName: srcName,
		Logger:     logger,
	}, src, pub)
	if err != nil {
		return err
	}

	if err := model.Start(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Bluetooth advertising requires elevated permissions.")
		fmt.Fprintln(os.Stderr, "Try one of:")
		fmt.Fprintln(os.Stderr, "  sudo ./lightstick")
		fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./lightstick")
		fmt.Fprintln(os.Stderr, "  ./lightstick --no-ble   (no event link)")
		fmt.Fprintln(os.Stderr, "  ./lightstick --demo     (simulated sensor, no hardware needed)")
		return err
	}
	defer model.Stop()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(30),
	)

	logger.Info("lightstick started", "source", srcName, "ble", !flagDemo && settings.BLEEnabled())
	_, err = p.Run()
	return err
}

// loadSettings reads the optional settings file and applies the flags that
// were set explicitly on top of it.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	var s config.Settings
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return s, err
		}
		s = loaded
	}

	flags := cmd.Flags()
	if flagDemo {
		s.Sensor.Source = config.SourceMock
	}
	if flags.Changed("port") {
		s.Sensor.Source = config.SourceSerial
		s.Sensor.Port = flagPort
	}
	if flags.Changed("baud") {
		s.Sensor.BaudRate = flagBaud
	}
	if flagNoBLE {
		off := false
		s.BLE.Enabled = &off
	}
	if flags.Changed("name") {
		s.BLE.Name = flagName
	}
	if flags.Changed("log") {
		s.LogFile = flagLog
	}

	s, err := s.Normalize()
	if err != nil {
		return s, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// newLogger writes to the configured log file. The terminal belongs to the
// UI, so without a file logs are discarded.
func newLogger(s config.Settings) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	if s.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	h := tint.NewHandler(f, &tint.Options{
		Level:      lvl,
		TimeFormat: time.StampMilli,
		NoColor:    true,
	})
	return slog.New(h), func() { f.Close() }, nil
}

func openSource(s config.Settings) (sensor.Source, string, error) {
	if s.Sensor.Source == config.SourceMock {
		return sensor.NewMockSource(config.SamplePeriod, s.Sensor.Seed), "mock", nil
	}

	src, err := sensor.OpenSerial(s.Sensor.Port, sensor.PortOptions{
		BaudRate: s.Sensor.BaudRate,
		DataBits: s.Sensor.DataBits,
		StopBits: s.Sensor.StopBits,
		Parity:   s.Sensor.Parity,
	})
	if err != nil {
		return nil, "", err
	}
	return src, s.Sensor.Port, nil
}
