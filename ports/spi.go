package ports

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dasdy/monoframe/logging"
	"github.com/dasdy/monoframe/model"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

const (
	DefaultSPIFrequency = 8 * physic.MegaHertz
	// spiChunk stays below the 4096 byte limit of spidev.
	spiChunk   = 4096
	resetPulse = 10 * time.Millisecond
)

// SPITransport talks to a display wired to an SPI bus. The D/C pin selects
// between commands (low) and data (high).
type SPITransport struct {
	port  spi.PortCloser
	conn  spi.Conn
	dc    gpio.PinOut
	reset gpio.PinOut
}

// NewSPITransport connects to port. reset may be nil when the reset line is
// not wired.
func NewSPITransport(port spi.PortCloser, freq physic.Frequency, dc, reset gpio.PinOut) (*SPITransport, error) {
	if dc == nil {
		return nil, fmt.Errorf("D/C pin: %w", model.ErrNotFound)
	}

	conn, err := port.Connect(freq, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", port, err)
	}

	return &SPITransport{port: port, conn: conn, dc: dc, reset: reset}, nil
}

// OpenSPI opens an SPI bus by name, e.g. "/dev/spidev0.0" or "SPI0.0", and
// looks up the D/C and reset pins by name, e.g. "GPIO25".
func OpenSPI(bus, dcPin, resetPin string, freq physic.Frequency) (*SPITransport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize host drivers: %w", err)
	}

	port, err := spireg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("could not open spi bus %s: %w", bus, err)
	}

	dc := gpioreg.ByName(dcPin)
	if dc == nil {
		port.Close()

		return nil, fmt.Errorf("pin %s: %w", dcPin, model.ErrNotFound)
	}

	var reset gpio.PinOut

	if resetPin != "" {
		p := gpioreg.ByName(resetPin)
		if p == nil {
			port.Close()

			return nil, fmt.Errorf("pin %s: %w", resetPin, model.ErrNotFound)
		}

		reset = p
	}

	t, err := NewSPITransport(port, freq, dc, reset)
	if err != nil {
		port.Close()

		return nil, err
	}

	slog.InfoContext(logging.PackageCtx("ports"), "Opened spi bus", "bus", bus, "dc", dcPin, "reset", resetPin)

	return t, nil
}

// Reset pulses the reset line. Without a reset line it does nothing.
func (t *SPITransport) Reset() error {
	if t.reset == nil {
		return nil
	}

	for _, level := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := t.reset.Out(level); err != nil {
			return fmt.Errorf("could not reset display: %w", err)
		}

		time.Sleep(resetPulse)
	}

	return nil
}

func (t *SPITransport) Command(cmd ...byte) error {
	if err := t.dc.Out(gpio.Low); err != nil {
		return err
	}

	if err := t.conn.Tx(cmd, nil); err != nil {
		return fmt.Errorf("could not write command: %w", err)
	}

	return nil
}

func (t *SPITransport) Data(data []byte) error {
	if err := t.dc.Out(gpio.High); err != nil {
		return err
	}

	for start := 0; start < len(data); start += spiChunk {
		end := min(start+spiChunk, len(data))

		if err := t.conn.Tx(data[start:end], nil); err != nil {
			return fmt.Errorf("could not write data: %w", err)
		}
	}

	return nil
}

func (t *SPITransport) Close() error {
	return t.port.Close()
}
