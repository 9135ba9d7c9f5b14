// Package screen renders a display buffer in a window.
//
// The renderer must own the main goroutine. The VM writes the buffer from
// any other goroutine; each frame takes one snapshot of it.
package screen

import (
	"image"
	"log"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/ezrec/smplvm/display"
)

const (
	CELL_WIDTH  = 8  // Pixels per cell, horizontally.
	CELL_HEIGHT = 14 // Pixels per cell, vertically.
	BASELINE    = 11 // Glyph baseline within a cell.
	SCALE       = 2  // Initial window scale.

	WIDTH  = display.COLUMNS * CELL_WIDTH // Logical screen width.
	HEIGHT = display.ROWS * CELL_HEIGHT   // Logical screen height.
)

// Screen is an ebiten.Game drawing a display buffer.
type Screen struct {
	Verbose bool // If set, enables verbose logging.

	Buffer *display.Buffer

	frame  [display.SIZE]byte
	closed atomic.Bool
}

var _ ebiten.Game = (*Screen)(nil)

// NewScreen creates a renderer for buf.
func NewScreen(buf *display.Buffer) *Screen {
	return &Screen{Buffer: buf}
}

// Update takes the frame snapshot, or ends the game if closed.
func (scr *Screen) Update() error {
	if scr.closed.Load() || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	scr.Buffer.Snapshot(&scr.frame)

	return nil
}

// Draw renders the last snapshot.
func (scr *Screen) Draw(img *ebiten.Image) {
	face := basicfont.Face7x13

	for y := range display.ROWS {
		for x := range display.COLUMNS {
			cell := display.CellAt(&scr.frame, x, y)
			fg, bg := cell.Colors()

			px, py := x*CELL_WIDTH, y*CELL_HEIGHT
			rect := image.Rect(px, py, px+CELL_WIDTH, py+CELL_HEIGHT)
			img.SubImage(rect).(*ebiten.Image).Fill(bg)

			if glyph := cell.Glyph(); len(glyph) > 0 {
				text.Draw(img, glyph, face, px, py+BASELINE, fg)
			}
		}
	}
}

func (scr *Screen) Layout(_, _ int) (int, int) {
	return WIDTH, HEIGHT
}

// Run opens the window and renders until it is closed, or Close is called.
func (scr *Screen) Run(title string) (err error) {
	ebiten.SetWindowSize(WIDTH*SCALE, HEIGHT*SCALE)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)

	if scr.Verbose {
		log.Printf("screen: %dx%d '%v'", WIDTH, HEIGHT, title)
	}

	err = ebiten.RunGame(scr)

	return
}

// Close requests the window to close at the next frame.
func (scr *Screen) Close() {
	scr.closed.Store(true)
}
