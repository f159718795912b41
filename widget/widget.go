// Package widget contains leaf items that produce bitmaps for panels.
//
// Every widget caches its rendered bitmap. Setters that change appearance
// invalidate the cache and the next call to Bitmap renders it again.
package widget

import (
	"github.com/dasdy/monoframe/bitmap"
)

// Item is anything that can be painted as panel content.
type Item interface {
	Bitmap() (*bitmap.Bitmap, error)
}

// Cached is an Item with an explicit cache lifecycle.
type Cached interface {
	Item
	// Ready reports whether a rendered bitmap is cached.
	Ready() bool
	// Prepare renders and caches the bitmap.
	Prepare() error
	// Invalidate drops the cached bitmap without rendering.
	Invalidate()
}

type cache struct {
	bmp   *bitmap.Bitmap
	ready bool
}

func (c *cache) Ready() bool {
	return c.ready
}

func (c *cache) Invalidate() {
	c.ready = false
}

// get returns the cached bitmap, calling prepare first when it is stale.
func (c *cache) get(prepare func() error) (*bitmap.Bitmap, error) {
	if !c.ready {
		if err := prepare(); err != nil {
			return nil, err
		}
	}

	return c.bmp, nil
}

func (c *cache) store(b *bitmap.Bitmap) {
	c.bmp = b
	c.ready = true
}
