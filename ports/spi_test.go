package ports_test

import (
	"testing"

	"github.com/dasdy/monoframe/model"
	"github.com/dasdy/monoframe/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"
)

// levelPin remembers every level written to it.
type levelPin struct {
	*gpiotest.Pin
	Levels []gpio.Level
}

func (p *levelPin) Out(l gpio.Level) error {
	p.Levels = append(p.Levels, l)

	return p.Pin.Out(l)
}

func newSPI(t *testing.T) (*ports.SPITransport, *spitest.Record, *levelPin, *levelPin) {
	t.Helper()

	record := &spitest.Record{}
	dc := &levelPin{Pin: &gpiotest.Pin{N: "DC"}}
	reset := &levelPin{Pin: &gpiotest.Pin{N: "RST"}}

	transport, err := ports.NewSPITransport(record, ports.DefaultSPIFrequency, dc, reset)
	require.NoError(t, err)

	return transport, record, dc, reset
}

func TestSPITransport(t *testing.T) {
	t.Run("should drive D/C low for commands and high for data", func(t *testing.T) {
		transport, record, dc, _ := newSPI(t)

		require.NoError(t, transport.Command(0xAE))
		require.NoError(t, transport.Data([]byte{1, 2, 3}))

		require.Len(t, record.Ops, 2)
		assert.Equal(t, []byte{0xAE}, record.Ops[0].W)
		assert.Equal(t, []byte{1, 2, 3}, record.Ops[1].W)
		assert.Equal(t, []gpio.Level{gpio.Low, gpio.High}, dc.Levels)
	})

	t.Run("should split large data", func(t *testing.T) {
		transport, record, _, _ := newSPI(t)

		require.NoError(t, transport.Data(make([]byte, 5000)))

		require.Len(t, record.Ops, 2)
		assert.Len(t, record.Ops[0].W, 4096)
		assert.Len(t, record.Ops[1].W, 904)
	})

	t.Run("should pulse reset line", func(t *testing.T) {
		transport, _, _, reset := newSPI(t)

		require.NoError(t, transport.Reset())
		assert.Equal(t, []gpio.Level{gpio.High, gpio.Low, gpio.High}, reset.Levels)
	})

	t.Run("should work without reset line", func(t *testing.T) {
		transport, err := ports.NewSPITransport(&spitest.Record{}, ports.DefaultSPIFrequency, &gpiotest.Pin{N: "DC"}, nil)
		require.NoError(t, err)

		assert.NoError(t, transport.Reset())
		assert.NoError(t, transport.Close())
	})

	t.Run("should require D/C pin", func(t *testing.T) {
		_, err := ports.NewSPITransport(&spitest.Record{}, ports.DefaultSPIFrequency, nil, nil)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
