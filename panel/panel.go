// Package panel composes widgets into rectangular regions of a display.
//
// A root panel covers the whole display. Splitting a panel appends children
// that tile it along one axis; each child may be split again or given a
// widget as content. Compose paints the tree into one bitmap and Render sends
// a panel's bitmap to a display driver at the panel's screen position.
package panel

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/dasdy/monoframe/bitmap"
	"github.com/dasdy/monoframe/display"
	"github.com/dasdy/monoframe/logging"
	"github.com/dasdy/monoframe/model"
	"github.com/dasdy/monoframe/widget"
)

type Panel struct {
	width  int
	height int
	// origin is relative to the parent, screen to the root.
	origin model.Origin
	screen model.Origin

	children []*Panel
	content  widget.Item
}

func New(width, height int) (*Panel, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("panel %dx%d: %w", width, height, model.ErrInvalidDimension)
	}

	return &Panel{width: width, height: height}, nil
}

// NewForDriver returns a root panel covering the whole display.
func NewForDriver(d display.Driver) (*Panel, error) {
	return New(d.Width(), d.Height())
}

func (p *Panel) Width() int           { return p.width }
func (p *Panel) Height() int          { return p.height }
func (p *Panel) Origin() model.Origin { return p.origin }
func (p *Panel) Screen() model.Origin { return p.screen }
func (p *Panel) Content() widget.Item { return p.content }
func (p *Panel) Children() []*Panel   { return p.children }

// SetContent sets the item painted over the children.
func (p *Panel) SetContent(item widget.Item) {
	p.content = item
}

func (p *Panel) extent(axis model.Axis) int {
	if axis == model.Vertical {
		return p.height
	}

	return p.width
}

// Split cuts the panel at positions along axis and appends one child per
// slice. Vertical splits cut rows, horizontal splits cut columns.
func (p *Panel) Split(axis model.Axis, positions ...int) ([]*Panel, error) {
	extent := p.extent(axis)

	cuts := []int{0, extent}

	for _, pos := range positions {
		if pos < 0 || pos > extent {
			return nil, fmt.Errorf("split %s at %d outside [0, %d]: %w", axis, pos, extent, model.ErrOutOfRange)
		}

		cuts = append(cuts, pos)
	}

	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	result := make([]*Panel, 0, len(cuts)-1)

	for i := 0; i+1 < len(cuts); i++ {
		child := &Panel{width: p.width, height: p.height}
		size := cuts[i+1] - cuts[i]

		if axis == model.Vertical {
			child.height = size
			child.origin = model.Origin{Top: cuts[i]}
		} else {
			child.width = size
			child.origin = model.Origin{Left: cuts[i]}
		}

		child.screen = model.Origin{
			Top:  p.screen.Top + child.origin.Top,
			Left: p.screen.Left + child.origin.Left,
		}

		result = append(result, child)
	}

	p.children = append(p.children, result...)

	slog.DebugContext(logging.PackageCtx("panel"), "Split panel",
		"axis", axis, "cuts", cuts, "children", len(p.children))

	return result, nil
}

// VerticalPanels splits the panel into stacked rows.
func (p *Panel) VerticalPanels(positions ...int) ([]*Panel, error) {
	return p.Split(model.Vertical, positions...)
}

// HorizontalPanels splits the panel into side by side columns.
func (p *Panel) HorizontalPanels(positions ...int) ([]*Panel, error) {
	return p.Split(model.Horizontal, positions...)
}

// Compose paints the children in order, then the content on top.
func (p *Panel) Compose() (*bitmap.Bitmap, error) {
	result, err := bitmap.New(p.width, p.height)
	if err != nil {
		return nil, err
	}

	for _, child := range p.children {
		b, err := child.Compose()
		if err != nil {
			return nil, err
		}

		result.Blit(b, child.origin.Left, child.origin.Top, false)
	}

	if p.content != nil {
		b, err := p.content.Bitmap()
		if err != nil {
			return nil, fmt.Errorf("could not draw panel content: %w", err)
		}

		result.Blit(b, 0, 0, false)
	}

	return result, nil
}

// Render composes the panel and writes it to d at the panel's screen
// position. With refresh the display is cleared and flushed first.
func (p *Panel) Render(d display.Driver, refresh bool) error {
	b, err := p.Compose()
	if err != nil {
		return err
	}

	data, err := b.ToPageFormat(d.Mode())
	if err != nil {
		return fmt.Errorf("could not pack panel: %w", err)
	}

	if refresh {
		if err := d.Clear(); err != nil {
			return err
		}

		if err := d.Flush(); err != nil {
			return err
		}
	}

	return d.WriteBlock(data, p.screen.Top, p.screen.Left, p.width)
}
