package widget

import (
	"fmt"

	"github.com/dasdy/monoframe/bitmap"
	"github.com/dasdy/monoframe/model"
	"github.com/dasdy/monoframe/text"
)

// TextWidget shows one line of text, vertically centered for its font.
// Text wider than the widget makes the bitmap grow; the panel clips it.
type TextWidget struct {
	cache

	rasterizer text.Rasterizer
	width      int
	height     int

	text   string
	font   model.Font
	margin model.Margin
}

func NewTextWidget(width, height int, rasterizer text.Rasterizer) *TextWidget {
	return &TextWidget{
		rasterizer: rasterizer,
		width:      width,
		height:     height,
		font:       model.Font{Size: text.DefaultSize},
	}
}

func (w *TextWidget) Text() string {
	return w.text
}

func (w *TextWidget) SetText(s string) {
	w.text = s
	w.Invalidate()
}

func (w *TextWidget) Font() model.Font {
	return w.font
}

func (w *TextWidget) SetFont(f model.Font) {
	w.font = f
	w.Invalidate()
}

// SetIndent sets the left margin in pixels.
func (w *TextWidget) SetIndent(left int) {
	w.margin.Left = left
	w.Invalidate()
}

// Margin returns the margin used by the last render.
func (w *TextWidget) Margin() model.Margin {
	return w.margin
}

func (w *TextWidget) Prepare() error {
	top, err := w.rasterizer.TopMargin(w.font, w.height)
	if err != nil {
		return fmt.Errorf("could not center text: %w", err)
	}

	w.margin.Top = top

	b, err := w.rasterizer.Render(w.text, w.font, w.width, w.height, true, w.margin)
	if err != nil {
		return fmt.Errorf("could not render text %q: %w", w.text, err)
	}

	w.store(b)

	return nil
}

func (w *TextWidget) Bitmap() (*bitmap.Bitmap, error) {
	return w.get(w.Prepare)
}
