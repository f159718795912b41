package bitmap

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
)

// FromImage converts img to a bitmap. A pixel is set when its gray level is at
// least half intensity.
func FromImage(img image.Image) (*Bitmap, error) {
	bounds := img.Bounds()

	b, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray, _ := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if gray.Y >= 128 {
				b.bits[(y-bounds.Min.Y)*b.width+(x-bounds.Min.X)] = true
			}
		}
	}

	return b, nil
}

// Load decodes an image file (PNG, GIF, JPEG or BMP) into a bitmap.
func Load(path string) (*Bitmap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %s: %w", path, err)
	}

	return FromImage(img)
}
