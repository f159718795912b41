package widget

import (
	"fmt"

	"github.com/dasdy/monoframe/bitmap"
	"github.com/dasdy/monoframe/model"
)

// Icon is one option of an IconOptionWidget.
type Icon struct {
	id             string
	label          string
	option         any
	bitmap         *bitmap.Bitmap
	selectedBitmap *bitmap.Bitmap
	selected       bool
	enabled        bool
}

func newIcon(id string, b *bitmap.Bitmap, label string, option any) *Icon {
	selected := b.Copy()
	selected.InvertAll()

	return &Icon{
		id:             id,
		label:          label,
		option:         option,
		bitmap:         b,
		selectedBitmap: selected,
		enabled:        true,
	}
}

func (i *Icon) ID() string                     { return i.id }
func (i *Icon) Label() string                  { return i.label }
func (i *Icon) Option() any                    { return i.option }
func (i *Icon) Bitmap() *bitmap.Bitmap         { return i.bitmap }
func (i *Icon) SelectedBitmap() *bitmap.Bitmap { return i.selectedBitmap }
func (i *Icon) Selected() bool                 { return i.selected }
func (i *Icon) Enabled() bool                  { return i.enabled }
func (i *Icon) Width() int                     { return i.bitmap.Width() }
func (i *Icon) Height() int                    { return i.bitmap.Height() }

// IconOptionWidget is a horizontal strip of icons with at most one selected.
// Disabled icons are skipped entirely and take no space.
type IconOptionWidget struct {
	cache

	icons    []*Icon
	selected int
}

func NewIconOptionWidget(width, height int) (*IconOptionWidget, error) {
	b, err := bitmap.New(width, height)
	if err != nil {
		return nil, err
	}

	w := &IconOptionWidget{selected: -1}
	w.bmp = b

	return w, nil
}

// Icons returns the icons in insertion order.
func (w *IconOptionWidget) Icons() []*Icon {
	return w.icons
}

// AddIcon loads the image at path and appends it as an icon.
func (w *IconOptionWidget) AddIcon(path, label, id string, option any) error {
	b, err := bitmap.Load(path)
	if err != nil {
		return err
	}

	return w.AddIconBitmap(id, b, label, option)
}

func (w *IconOptionWidget) AddIconBitmap(id string, b *bitmap.Bitmap, label string, option any) error {
	if _, err := w.find(id); err == nil {
		return fmt.Errorf("icon %q already exists", id)
	}

	w.icons = append(w.icons, newIcon(id, b, label, option))
	w.Invalidate()

	return nil
}

func (w *IconOptionWidget) find(id string) (int, error) {
	for i, icon := range w.icons {
		if icon.id == id {
			return i, nil
		}
	}

	return -1, fmt.Errorf("icon %q: %w", id, model.ErrNotFound)
}

func (w *IconOptionWidget) nextEnabled(from, step int) int {
	for i := from; i >= 0 && i < len(w.icons); i += step {
		if w.icons[i].enabled {
			return i
		}
	}

	return -1
}

func (w *IconOptionWidget) setSelected(index int) {
	if w.selected >= 0 {
		w.icons[w.selected].selected = false
	}

	w.selected = index
	if index >= 0 {
		w.icons[index].selected = true
	}

	w.Invalidate()
}

// SelectFirst selects the first enabled icon and returns its label.
func (w *IconOptionWidget) SelectFirst() (string, error) {
	first := w.nextEnabled(0, 1)
	if first < 0 {
		return "", fmt.Errorf("no enabled icons to select: %w", model.ErrOutOfRange)
	}

	w.setSelected(first)

	return w.icons[first].label, nil
}

// SelectNext moves the selection to the next enabled icon. At the last one
// the selection stays put.
func (w *IconOptionWidget) SelectNext() (string, error) {
	return w.move(1)
}

// SelectPrev moves the selection to the previous enabled icon. At the first
// one the selection stays put.
func (w *IconOptionWidget) SelectPrev() (string, error) {
	return w.move(-1)
}

func (w *IconOptionWidget) move(step int) (string, error) {
	if w.selected < 0 {
		return w.SelectFirst()
	}

	if next := w.nextEnabled(w.selected+step, step); next >= 0 {
		w.setSelected(next)
	}

	return w.icons[w.selected].label, nil
}

// GetCurrent returns the option value of the selected icon.
func (w *IconOptionWidget) GetCurrent() (any, error) {
	if w.selected < 0 {
		return nil, fmt.Errorf("no icon selected: %w", model.ErrOutOfRange)
	}

	return w.icons[w.selected].option, nil
}

func (w *IconOptionWidget) EnableIcon(id string) error {
	i, err := w.find(id)
	if err != nil {
		return err
	}

	w.icons[i].enabled = true
	w.Invalidate()

	return nil
}

// DisableIcon hides the icon. A selected icon hands the selection to the next
// enabled icon, or the previous one when it was the last.
func (w *IconOptionWidget) DisableIcon(id string) error {
	i, err := w.find(id)
	if err != nil {
		return err
	}

	w.icons[i].enabled = false

	if i == w.selected {
		next := w.nextEnabled(i+1, 1)
		if next < 0 {
			next = w.nextEnabled(i-1, -1)
		}

		w.setSelected(next)
	}

	w.Invalidate()

	return nil
}

func (w *IconOptionWidget) Prepare() error {
	w.bmp.ClearAll()

	x := 0
	for _, icon := range w.icons {
		if !icon.enabled {
			continue
		}

		if icon.selected {
			w.bmp.Blit(icon.selectedBitmap, x, 0, false)
		} else {
			w.bmp.Blit(icon.bitmap, x, 0, false)
		}

		x += icon.Width()
	}

	w.store(w.bmp)

	return nil
}

func (w *IconOptionWidget) Bitmap() (*bitmap.Bitmap, error) {
	return w.get(w.Prepare)
}
