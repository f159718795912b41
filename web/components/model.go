//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

package components

import "fmt"

// SessionEntry is one recorded session on the index page.
type SessionEntry struct {
	ID     string
	Frames int
}

type SessionsContext struct {
	Sessions []SessionEntry
}

// Block is the rectangle written by one frame, in pixels.
type Block struct {
	Row  int
	Col  int
	Cols int
	Rows int
}

// Contains reports whether the pixel at (row, col) was written by the block.
func (b Block) Contains(row, col int) bool {
	return row >= b.Row && row < b.Row+b.Rows && col >= b.Col && col < b.Col+b.Cols
}

// FrameContext is the display content after a frame was written.
type FrameContext struct {
	Session string
	Seq     int
	Total   int
	Width   int
	Height  int
	// Pixels is indexed [row][col].
	Pixels [][]bool
	Block  Block
}

func (c *FrameContext) Title() string {
	return fmt.Sprintf("%s #%d", c.Session, c.Seq)
}

// Summary describes the frame position and the written block.
func (c *FrameContext) Summary() string {
	return fmt.Sprintf("frame %d of %d, block %dx%d at row %d col %d",
		c.Seq+1, c.Total, c.Block.Cols, c.Block.Rows, c.Block.Row, c.Block.Col)
}

// Prev returns the previous frame number, -1 on the first frame.
func (c *FrameContext) Prev() int {
	prev, _ := NeighborSeqs(c.Seq, c.Total)

	return prev
}

// Next returns the next frame number, -1 on the last frame.
func (c *FrameContext) Next() int {
	_, next := NeighborSeqs(c.Seq, c.Total)

	return next
}

func (c *FrameContext) GridStyle() string {
	return fmt.Sprintf("grid-template-columns:repeat(%d,5px)", c.Width)
}
