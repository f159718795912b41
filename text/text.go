// Package text turns strings into bitmaps using TrueType/OpenType faces.
package text

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/dasdy/monoframe/bitmap"
	"github.com/dasdy/monoframe/logging"
	"github.com/dasdy/monoframe/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultSize = 14

	// Probe strings used to find the visual extent of a face.
	ascenderProbe  = "ATP"
	descenderProbe = "gpj"
)

// Rasterizer renders single lines of text into bitmaps.
type Rasterizer interface {
	// Render draws s at (margin.Left, margin.Top) on a width x height bitmap.
	// With expand, the bitmap grows horizontally to fit the whole string.
	Render(s string, f model.Font, width, height int, expand bool, margin model.Margin) (*bitmap.Bitmap, error)
	// TopMargin returns the top margin that centers the face vertically in height rows.
	TopMargin(f model.Font, height int) (int, error)
}

type faceKey struct {
	file string
	size float64
}

// Renderer is a Rasterizer backed by golang.org/x/image. Faces are parsed once
// and kept for the lifetime of the renderer. Not safe for concurrent use.
type Renderer struct {
	faces map[faceKey]font.Face
}

func NewRenderer() *Renderer {
	return &Renderer{faces: make(map[faceKey]font.Face)}
}

func (r *Renderer) face(f model.Font) (font.Face, error) {
	if f.File == "" {
		return basicfont.Face7x13, nil
	}

	size := f.Size
	if size <= 0 {
		size = DefaultSize
	}

	key := faceKey{f.File, size}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}

	data, err := os.ReadFile(f.File)
	if err != nil {
		return nil, fmt.Errorf("could not read font %s: %w", f.File, err)
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse font %s: %w", f.File, err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create face for %s: %w", f.File, err)
	}

	slog.DebugContext(logging.PackageCtx("text"), "Loaded font face", "file", f.File, "size", size)

	r.faces[key] = face

	return face, nil
}

// Measure returns the advance width of s in pixels.
func (r *Renderer) Measure(s string, f model.Font) (int, error) {
	face, err := r.face(f)
	if err != nil {
		return 0, err
	}

	return font.MeasureString(face, s).Ceil(), nil
}

func (r *Renderer) Render(s string, f model.Font, width, height int, expand bool, margin model.Margin) (*bitmap.Bitmap, error) {
	face, err := r.face(f)
	if err != nil {
		return nil, err
	}

	if expand {
		textWidth := font.MeasureString(face, s).Ceil() + margin.Left + margin.Right
		if textWidth > width {
			width = textWidth
		}
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("text image %dx%d: %w", width, height, model.ErrInvalidDimension)
	}

	img := image.NewAlpha(image.Rect(0, 0, width, height))
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(margin.Left, margin.Top+face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(s)

	return bitmap.FromImage(img)
}

func (r *Renderer) TopMargin(f model.Font, height int) (int, error) {
	face, err := r.face(f)
	if err != nil {
		return 0, err
	}

	// Coordinates below are relative to the top of the line box.
	ascent := face.Metrics().Ascent.Ceil()

	upper, _ := font.BoundString(face, ascenderProbe)
	lower, _ := font.BoundString(face, descenderProbe)

	top := ascent + upper.Min.Y.Floor()
	bottom := ascent + lower.Max.Y.Ceil()

	margin := height - (bottom - top)
	if margin%2 == 0 {
		margin++
	}

	return floorDiv(margin, 2) - top + 1, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
