// Package menu implements a scrollable list of text entries for small displays.
package menu

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dasdy/monoframe/bitmap"
	"github.com/dasdy/monoframe/display"
	"github.com/dasdy/monoframe/logging"
	"github.com/dasdy/monoframe/model"
	"github.com/dasdy/monoframe/text"
	"github.com/dasdy/monoframe/widget"
)

// Style controls how the entries of one menu look. Every menu keeps its own
// copy, so changing one menu never affects another.
type Style struct {
	// FontFile is a TrueType/OpenType file. Empty means the built-in face.
	FontFile   string
	FontSize   float64
	ItemHeight int
	// Indent is the left margin of the text in pixels.
	Indent int
}

func DefaultStyle() Style {
	return Style{
		FontFile:   "",
		FontSize:   text.DefaultSize,
		ItemHeight: 16,
		Indent:     5,
	}
}

func (s Style) font() model.Font {
	return model.Font{File: s.FontFile, Size: s.FontSize}
}

// TextItem is one menu entry. Its bitmap is rendered on first use and kept
// until the menu style changes.
type TextItem struct {
	*widget.TextWidget
}

func newTextItem(s string, width int, style Style, r text.Rasterizer) *TextItem {
	w := widget.NewTextWidget(width, style.ItemHeight, r)
	w.SetText(s)
	w.SetFont(style.font())
	w.SetIndent(style.Indent)

	return &TextItem{TextWidget: w}
}

// Slot is an entry placed on the current page.
type Slot struct {
	Item     *TextItem
	Row      int
	Selected bool
}

type TextListMenu struct {
	driver     display.Driver
	rasterizer text.Rasterizer
	style      Style

	bmp   *bitmap.Bitmap
	items []*TextItem

	itemsPerPage int
	selected     int
	pageStart    int
}

func NewTextListMenu(d display.Driver, r text.Rasterizer, items []string, style Style) (*TextListMenu, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("menu without items: %w", model.ErrOutOfRange)
	}

	b, err := bitmap.New(d.Width(), d.Height())
	if err != nil {
		return nil, err
	}

	m := &TextListMenu{
		driver:     d,
		rasterizer: r,
		bmp:        b,
		items:      make([]*TextItem, 0, len(items)),
	}

	if err := m.SetStyle(style); err != nil {
		return nil, err
	}

	for _, s := range items {
		m.items = append(m.items, newTextItem(s, d.Width(), style, r))
	}

	return m, nil
}

func (m *TextListMenu) Style() Style       { return m.style }
func (m *TextListMenu) Len() int           { return len(m.items) }
func (m *TextListMenu) SelectedIndex() int { return m.selected }
func (m *TextListMenu) PageStart() int     { return m.pageStart }
func (m *TextListMenu) ItemsPerPage() int  { return m.itemsPerPage }
func (m *TextListMenu) Items() []*TextItem { return m.items }

// SetStyle applies s to every entry. Cached entry bitmaps are dropped. The
// display is not redrawn until the next Draw.
func (m *TextListMenu) SetStyle(s Style) error {
	if s.ItemHeight <= 0 {
		return fmt.Errorf("item height %d: %w", s.ItemHeight, model.ErrInvalidDimension)
	}

	perPage := m.driver.Height() / s.ItemHeight
	if perPage == 0 {
		return fmt.Errorf("items of height %d do not fit %d rows: %w",
			s.ItemHeight, m.driver.Height(), model.ErrInvalidDimension)
	}

	heightChanged := s.ItemHeight != m.style.ItemHeight

	m.style = s
	m.itemsPerPage = perPage

	for i, item := range m.items {
		if heightChanged {
			m.items[i] = newTextItem(item.Text(), m.driver.Width(), s, m.rasterizer)

			continue
		}

		item.SetFont(s.font())
		item.SetIndent(s.Indent)
	}

	return nil
}

// SetFont switches the menu to a font file, which must exist.
func (m *TextListMenu) SetFont(file string, size float64) error {
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("cannot find font %s: %w", file, err)
	}

	s := m.style
	s.FontFile = file
	s.FontSize = size

	return m.SetStyle(s)
}

// Next moves the selection down and redraws. Does nothing on the last entry.
func (m *TextListMenu) Next() error {
	if m.selected >= len(m.items)-1 {
		return nil
	}

	m.selected++

	return m.Draw()
}

// Prev moves the selection up and redraws. Does nothing on the first entry.
func (m *TextListMenu) Prev() error {
	if m.selected <= 0 {
		return nil
	}

	m.selected--

	return m.Draw()
}

// Select returns the text of the selected entry.
func (m *TextListMenu) Select() string {
	return m.items[m.selected].Text()
}

// Visible scrolls the page so that the selection is on it and returns the
// entries to draw, top to bottom.
func (m *TextListMenu) Visible() []Slot {
	m.pageStart = min(m.pageStart, m.selected)
	m.pageStart = max(m.pageStart, m.selected-m.itemsPerPage+1)

	end := min(m.pageStart+m.itemsPerPage, len(m.items))
	result := make([]Slot, 0, end-m.pageStart)
	row := 0

	for i := m.pageStart; i < end; i++ {
		result = append(result, Slot{Item: m.items[i], Row: row, Selected: i == m.selected})
		row += m.style.ItemHeight
	}

	return result
}

// Draw renders the current page and writes it to the display.
func (m *TextListMenu) Draw() error {
	m.bmp.ClearAll()

	for _, slot := range m.Visible() {
		b, err := slot.Item.Bitmap()
		if err != nil {
			return fmt.Errorf("could not draw %q: %w", slot.Item.Text(), err)
		}

		m.bmp.Blit(b, 0, slot.Row, slot.Selected)
	}

	data, err := m.bmp.ToPageFormat(m.driver.Mode())
	if err != nil {
		return fmt.Errorf("could not pack menu: %w", err)
	}

	slog.DebugContext(logging.PackageCtx("menu"), "Drawing menu",
		"selected", m.selected, "pageStart", m.pageStart)

	return m.driver.WriteBlock(data, 0, 0, m.bmp.Width())
}
