package display

import (
	"fmt"
	"log/slog"

	"github.com/dasdy/monoframe/logging"
	"github.com/dasdy/monoframe/model"
)

// SSD1306 command set.
const (
	cmdSetMemoryMode       = 0x20
	cmdSetColumnAddress    = 0x21
	cmdSetPageAddress      = 0x22
	cmdSetStartLine        = 0x40
	cmdSetContrast         = 0x81
	cmdChargePump          = 0x8D
	cmdSegRemapNormal      = 0xA0
	cmdSegRemapFlipped     = 0xA1
	cmdDisplayAllOnResume  = 0xA4
	cmdNormalDisplay       = 0xA6
	cmdInvertDisplay       = 0xA7
	cmdSetMultiplex        = 0xA8
	cmdDisplayOff          = 0xAE
	cmdDisplayOn           = 0xAF
	cmdComScanInc          = 0xC0
	cmdComScanDec          = 0xC8
	cmdSetDisplayOffset    = 0xD3
	cmdSetDisplayClockDiv  = 0xD5
	cmdSetPrecharge        = 0xD9
	cmdSetComPins          = 0xDA
	cmdSetVcomDetect       = 0xDB
	memoryModeHorizontal   = 0x00
	chargePumpEnable       = 0x14
	defaultContrast        = 0xCF
	defaultClockDivRatio   = 0x80
	defaultPrechargePeriod = 0xF1
	defaultVcomDetect      = 0x40
)

// Transport carries command and data bytes to the controller, e.g. over SPI
// (D/C pin) or I2C (control byte).
type Transport interface {
	Command(cmd ...byte) error
	Data(data []byte) error
}

// SSD1306 drives an SSD1306 OLED controller. Blocks are written with the
// controller in horizontal addressing mode, which consumes page-vertical
// bytes page by page inside the column window.
type SSD1306 struct {
	*Memory

	transport Transport
	flipped   bool
}

func NewSSD1306(t Transport, width, height int) (*SSD1306, error) {
	if width > 128 || height > 64 || height%8 != 0 {
		return nil, fmt.Errorf("ssd1306 cannot drive %dx%d: %w", width, height, model.ErrInvalidDimension)
	}

	mem, err := NewMemory(width, height, model.PageVertical)
	if err != nil {
		return nil, err
	}

	return &SSD1306{Memory: mem, transport: t, flipped: true}, nil
}

// Init runs the power-up sequence and turns the panel on.
func (d *SSD1306) Init() error {
	comPins := byte(0x12)
	if d.height == 32 {
		comPins = 0x02
	}

	sequence := [][]byte{
		{cmdDisplayOff},
		{cmdSetDisplayClockDiv, defaultClockDivRatio},
		{cmdSetMultiplex, byte(d.height - 1)},
		{cmdSetDisplayOffset, 0x00},
		{cmdSetStartLine | 0x00},
		{cmdChargePump, chargePumpEnable},
		{cmdSetMemoryMode, memoryModeHorizontal},
		{cmdSegRemapFlipped},
		{cmdComScanDec},
		{cmdSetComPins, comPins},
		{cmdSetContrast, defaultContrast},
		{cmdSetPrecharge, defaultPrechargePeriod},
		{cmdSetVcomDetect, defaultVcomDetect},
		{cmdDisplayAllOnResume},
		{cmdNormalDisplay},
		{cmdDisplayOn},
	}

	for _, cmd := range sequence {
		if err := d.transport.Command(cmd...); err != nil {
			return fmt.Errorf("could not initialize ssd1306: %w", err)
		}
	}

	slog.InfoContext(logging.PackageCtx("display"), "Display initialized", "width", d.width, "height", d.height)

	return nil
}

func (d *SSD1306) WriteBlock(data []byte, row, col, cols int) error {
	rows, err := d.checkBlock(data, row, col, cols)
	if err != nil {
		return err
	}

	if err := d.Memory.WriteBlock(data, row, col, cols); err != nil {
		return err
	}

	return d.send(data, row/8, row/8+rows/8-1, col, col+cols-1)
}

func (d *SSD1306) send(data []byte, pageStart, pageEnd, colStart, colEnd int) error {
	commands := [][]byte{
		{cmdSetMemoryMode, memoryModeHorizontal},
		{cmdSetPageAddress, byte(pageStart), byte(pageEnd)},
		{cmdSetColumnAddress, byte(colStart), byte(colEnd)},
	}

	for _, cmd := range commands {
		if err := d.transport.Command(cmd...); err != nil {
			return fmt.Errorf("could not address block: %w", err)
		}
	}

	if err := d.transport.Data(data); err != nil {
		return fmt.Errorf("could not send block: %w", err)
	}

	return nil
}

// Flush sends the whole display memory.
func (d *SSD1306) Flush() error {
	d.Flushes++

	return d.send(d.ram, 0, d.height/8-1, 0, d.width-1)
}

func (d *SSD1306) Invert(invert bool) error {
	if invert {
		return d.transport.Command(cmdInvertDisplay)
	}

	return d.transport.Command(cmdNormalDisplay)
}

func (d *SSD1306) SetContrast(contrast byte) error {
	return d.transport.Command(cmdSetContrast, contrast)
}

// Flip rotates the picture by 180 degrees.
func (d *SSD1306) Flip() error {
	d.flipped = !d.flipped

	if d.flipped {
		return d.transport.Command(cmdSegRemapFlipped, cmdComScanDec)
	}

	return d.transport.Command(cmdSegRemapNormal, cmdComScanInc)
}

// Off turns the panel off, keeping its memory.
func (d *SSD1306) Off() error {
	return d.transport.Command(cmdDisplayOff)
}
