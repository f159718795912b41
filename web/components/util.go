package components

import (
	"fmt"
	"net/url"
)

// FrameLink returns the URL of a frame page.
func FrameLink(session string, seq int) string {
	return fmt.Sprintf("/frame?session=%s&seq=%d", url.QueryEscape(session), seq)
}

// PixelClass returns the css classes of one pixel cell.
func PixelClass(on, inBlock bool) string {
	class := "px"
	if on {
		class += " on"
	}

	if inBlock {
		class += " blk"
	}

	return class
}

// NeighborSeqs returns the previous and next frame numbers, -1 when there is none.
func NeighborSeqs(seq, total int) (int, int) {
	prev, next := seq-1, seq+1
	if prev < 0 {
		prev = -1
	}

	if next >= total {
		next = -1
	}

	return prev, next
}
