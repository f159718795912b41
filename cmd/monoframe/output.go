package monoframe

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dasdy/monoframe/db"
	"github.com/dasdy/monoframe/display"
	"github.com/dasdy/monoframe/ports"
	"github.com/spf13/cobra"
)

var (
	devicePath  string
	baudRate    int
	width       int
	height      int
	useTerminal bool
	storagePath string
	record      bool
	spiBus      string
	dcPin       string
	resetPin    string
)

func addDisplayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&devicePath, "device", "d", "",
		"Serial device of the display bridge. Empty picks the first bridge found")
	cmd.Flags().IntVarP(&baudRate, "baud", "b", ports.DefaultBaudRate, "Baud rate of the serial device")
	cmd.Flags().IntVar(&width, "width", 128, "Display width in pixels")
	cmd.Flags().IntVar(&height, "height", 32, "Display height in pixels")
	cmd.Flags().BoolVarP(&useTerminal, "terminal", "t", false,
		"Emulate the display in the terminal instead of using a device")
	cmd.Flags().StringVar(&spiBus, "spi-bus", "",
		"SPI bus the display is wired to, e.g. /dev/spidev0.0. Overrides --device")
	cmd.Flags().StringVar(&dcPin, "dc-pin", "GPIO25", "GPIO pin connected to the D/C line (with --spi-bus)")
	cmd.Flags().StringVar(&resetPin, "reset-pin", "",
		"GPIO pin connected to the reset line (with --spi-bus). Empty when not wired")
}

func addStorageFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().StringVarP(&storagePath, "storage", "s", "./frames.sqlite", usage)
}

// output is the display a command draws on.
type output struct {
	driver   display.Driver
	terminal *display.Terminal
	// bridge is set when a serial device is used; it reads what the bridge
	// sends back.
	bridge io.Reader
	closers []func()
}

func (o *output) Close() {
	for i := len(o.closers) - 1; i >= 0; i-- {
		o.closers[i]()
	}
}

func openDevice() (*ports.Transport, error) {
	path := devicePath
	if path == "" {
		names, err := ports.GetAvailableDevices()
		if err != nil {
			return nil, err
		}

		if len(names) == 0 {
			return nil, fmt.Errorf("no display bridge connected, pass --device or use --terminal")
		}

		path = names[0]
		slog.Info("Using first available device", "device", path, "available", names)
	}

	transport, err := ports.Open(path, baudRate)
	if err != nil {
		names, errInner := ports.GetAvailableDevices()
		if errInner == nil && len(names) > 0 {
			return nil, fmt.Errorf("%w. Maybe try instead: %+v", err, names)
		}

		return nil, err
	}

	return transport, nil
}

// openTransport opens the SPI bus when one is given, the serial bridge
// otherwise. The returned reader is nil for SPI.
func openTransport(out *output) (display.Transport, io.Reader, error) {
	if spiBus != "" {
		transport, err := ports.OpenSPI(spiBus, dcPin, resetPin, ports.DefaultSPIFrequency)
		if err != nil {
			return nil, nil, err
		}

		out.closers = append(out.closers, func() { transport.Close() })

		if err := transport.Reset(); err != nil {
			return nil, nil, err
		}

		return transport, nil, nil
	}

	transport, err := openDevice()
	if err != nil {
		return nil, nil, err
	}

	out.closers = append(out.closers, func() { transport.Close() })

	return transport, transport, nil
}

// openOutput opens the device or the terminal emulation according to the
// flags. With record set, every write is also stored in the frame database.
func openOutput() (*output, error) {
	out := &output{}

	if useTerminal {
		term, err := display.NewTerminal(width, height)
		if err != nil {
			return nil, err
		}

		out.driver = term
		out.terminal = term
	} else {
		transport, bridge, err := openTransport(out)
		if err != nil {
			out.Close()

			return nil, err
		}

		ssd, err := display.NewSSD1306(transport, width, height)
		if err != nil {
			out.Close()

			return nil, err
		}

		if err := ssd.Init(); err != nil {
			out.Close()

			return nil, err
		}

		out.driver = ssd
		out.bridge = bridge
	}

	if record {
		storage, err := db.ConnectDB(storagePath)
		if err != nil {
			out.Close()

			return nil, fmt.Errorf("could not open %s as sqlite file: %w", storagePath, err)
		}

		out.closers = append(out.closers, storage.Close)

		recorder := display.NewRecorder(out.driver, storage)
		out.driver = recorder

		slog.Info("Recording frames", "storage", storagePath, "session", recorder.Session())
	}

	return out, nil
}
