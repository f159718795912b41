// Package ports connects to display bridges over serial ports.
package ports

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/dasdy/monoframe/logging"
	"go.bug.st/serial"
)

const (
	// Control bytes the bridge forwards as the I2C control byte.
	controlCommand byte = 0x00
	controlData    byte = 0x40

	DefaultBaudRate = 115200
	// DefaultChunk is the largest data payload sent in one frame.
	DefaultChunk = 1024
)

// Transport frames display commands and data for a serial-to-I2C bridge.
// Every write starts with a control byte: 0x00 for commands, 0x40 for data.
type Transport struct {
	rw     io.ReadWriter
	closer io.Closer
	chunk  int
}

// NewTransport wraps an already open stream.
func NewTransport(rw io.ReadWriter, chunk int) *Transport {
	if chunk <= 0 {
		chunk = DefaultChunk
	}

	t := &Transport{rw: rw, chunk: chunk}
	if c, ok := rw.(io.Closer); ok {
		t.closer = c
	}

	return t
}

// Open opens the serial device at path.
func Open(path string, baud int) (*Transport, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}

	port, err := serial.Open(path, &serial.Mode{
		BaudRate: baud,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open port %s: %w", path, err)
	}

	if err := port.SetReadTimeout(serial.NoTimeout); err != nil {
		port.Close()

		return nil, fmt.Errorf("could not configure port %s: %w", path, err)
	}

	slog.InfoContext(logging.PackageCtx("ports"), "Opened port", "path", path, "baud", baud)

	return NewTransport(port, DefaultChunk), nil
}

func (t *Transport) Command(cmd ...byte) error {
	frame := append([]byte{controlCommand}, cmd...)
	if _, err := t.rw.Write(frame); err != nil {
		return fmt.Errorf("could not write command: %w", err)
	}

	return nil
}

func (t *Transport) Data(data []byte) error {
	for start := 0; start < len(data); start += t.chunk {
		end := min(start+t.chunk, len(data))

		frame := append([]byte{controlData}, data[start:end]...)
		if _, err := t.rw.Write(frame); err != nil {
			return fmt.Errorf("could not write data: %w", err)
		}
	}

	return nil
}

// Read reads what the bridge sends back, e.g. encoder events.
func (t *Transport) Read(p []byte) (int, error) {
	return t.rw.Read(p)
}

// Lines returns the lines the bridge sends back.
func (t *Transport) Lines() <-chan string {
	return ReadFile(t)
}

func (t *Transport) Close() error {
	if t.closer == nil {
		return nil
	}

	return t.closer.Close()
}

// ReadFile reads r line by line. The channel is closed at EOF.
func ReadFile(r io.Reader) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			out <- scanner.Text()
		}

		if err := scanner.Err(); err != nil {
			slog.ErrorContext(logging.PackageCtx("ports"), "Read failed", "error", err)
		}
	}()

	return out
}

// ReadTwoFiles reads both readers at the same time line-by-line. The channel
// is closed when both are exhausted.
func ReadTwoFiles(r1, r2 io.Reader) <-chan string {
	out := make(chan string)

	var wg sync.WaitGroup

	for _, r := range []io.Reader{r1, r2} {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for line := range ReadFile(r) {
				out <- line
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

var bridgePattern = regexp.MustCompile(`^/dev/(ttyUSB\d+|ttyACM\d+|(tty|cu)\.(usbserial|usbmodem|wchusbserial)[\w-]*)$|^COM\d+$`)

// LooksLikeDisplayBridge reports whether path names a USB serial adapter.
func LooksLikeDisplayBridge(path string) bool {
	return bridgePattern.MatchString(path)
}

// GetAvailableDevices lists serial ports that look like display bridges.
func GetAvailableDevices() ([]string, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("could not get list of serial ports: %w", err)
	}

	result := make([]string, 0)

	for _, n := range names {
		if LooksLikeDisplayBridge(n) {
			result = append(result, n)
		}
	}

	return result, nil
}

// WaitForDevice polls until a bridge shows up or timeout passes.
func WaitForDevice(timeout, interval time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)

	for {
		devices, err := GetAvailableDevices()
		if err != nil {
			return "", err
		}

		if len(devices) > 0 {
			return devices[0], nil
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("no display bridge found after %s", timeout)
		}

		slog.DebugContext(logging.PackageCtx("ports"), "Waiting for device", "interval", interval)
		time.Sleep(interval)
	}
}
