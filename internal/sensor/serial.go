package sensor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.bug.st/serial"
	"lightstick.klederson.com/internal/sample"
)

// ErrBadLine is returned for a sensor line that is not "x,y,z".
var ErrBadLine = errors.New("malformed sample line")

// PortOptions describes the serial connection to the sensor board.
type PortOptions struct {
	BaudRate int
	DataBits int
	StopBits int
	Parity   string
}

// Normalize validates the options and applies defaults for unset values.
func (o PortOptions) Normalize() (PortOptions, error) {
	opts := o

	if opts.BaudRate <= 0 {
		opts.BaudRate = 115200
	}

	if opts.DataBits == 0 {
		opts.DataBits = 8
	}
	if opts.DataBits < 5 || opts.DataBits > 8 {
		return opts, fmt.Errorf("invalid data bits %d: must be between 5 and 8", opts.DataBits)
	}

	if opts.StopBits == 0 {
		opts.StopBits = 1
	}
	if opts.StopBits != 1 && opts.StopBits != 2 {
		return opts, fmt.Errorf("invalid stop bits %d: supported values are 1 or 2", opts.StopBits)
	}

	switch strings.TrimSpace(strings.ToUpper(opts.Parity)) {
	case "", "N", "NONE":
		opts.Parity = "N"
	case "E", "EVEN":
		opts.Parity = "E"
	case "O", "ODD":
		opts.Parity = "O"
	default:
		return opts, fmt.Errorf("unsupported parity %q: expected N, E, or O", opts.Parity)
	}

	return opts, nil
}

// Mode converts the options into the go.bug.st/serial mode.
func (o PortOptions) Mode() (*serial.Mode, error) {
	opts, err := o.Normalize()
	if err != nil {
		return nil, err
	}

	mode := &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: opts.DataBits,
		StopBits: serial.OneStopBit,
	}
	if opts.StopBits == 2 {
		mode.StopBits = serial.TwoStopBits
	}

	switch opts.Parity {
	case "E":
		mode.Parity = serial.EvenParity
	case "O":
		mode.Parity = serial.OddParity
	default:
		mode.Parity = serial.NoParity
	}
	return mode, nil
}

// LineSource reads one "x,y,z" sample per line from a stream, normally a
// serial port attached to the sensor board.
type LineSource struct {
	rc      io.ReadCloser
	scanner *bufio.Scanner
}

// OpenSerial opens the serial port at path and returns a line source on it.
func OpenSerial(path string, opts PortOptions) (*LineSource, error) {
	mode, err := opts.Mode()
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open sensor port %s: %w", path, err)
	}
	return NewLineSource(port), nil
}

// NewLineSource wraps an already open stream.
func NewLineSource(rc io.ReadCloser) *LineSource {
	return &LineSource{
		rc:      rc,
		scanner: bufio.NewScanner(rc),
	}
}

// Read returns the next sample. Blank lines are skipped. A read blocked on
// the port is released by Close; the context is checked between lines.
// Once the stream errors every later Read returns ErrStreamFailed.
func (s *LineSource) Read(ctx context.Context) (sample.Sample, error) {
	for {
		if err := ctx.Err(); err != nil {
			return sample.Sample{}, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return sample.Sample{}, fmt.Errorf("%w: %w", ErrStreamFailed, err)
			}
			return sample.Sample{}, io.EOF
		}
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		return ParseLine(line)
	}
}

// The device clocks the stream.
func (s *LineSource) selfPaced() {}

// Close closes the underlying stream.
func (s *LineSource) Close() error {
	return s.rc.Close()
}

// ParseLine parses "x,y,z" with optional surrounding whitespace per field.
func ParseLine(line string) (sample.Sample, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return sample.Sample{}, fmt.Errorf("%w: %q", ErrBadLine, line)
	}

	var v [3]int16
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 16)
		if err != nil {
			return sample.Sample{}, fmt.Errorf("%w: %q", ErrBadLine, line)
		}
		v[i] = int16(n)
	}
	return sample.Sample{X: v[0], Y: v[1], Z: v[2]}, nil
}
