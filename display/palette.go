package display

import (
	"image/color"
)

const (
	COLOR_DEFAULT_FG = 0xf // Foreground used for a zero color byte.
	COLOR_DEFAULT_BG = 0x0 // Background used for a zero color byte.
)

// Palette is the 16 color CGA palette indexed by color nibble.
var Palette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xff}, // black
	{0x00, 0x00, 0xaa, 0xff}, // blue
	{0x00, 0xaa, 0x00, 0xff}, // green
	{0x00, 0xaa, 0xaa, 0xff}, // cyan
	{0xaa, 0x00, 0x00, 0xff}, // red
	{0xaa, 0x00, 0xaa, 0xff}, // magenta
	{0xaa, 0x55, 0x00, 0xff}, // brown
	{0xaa, 0xaa, 0xaa, 0xff}, // light gray
	{0x55, 0x55, 0x55, 0xff}, // dark gray
	{0x55, 0x55, 0xff, 0xff}, // light blue
	{0x55, 0xff, 0x55, 0xff}, // light green
	{0x55, 0xff, 0xff, 0xff}, // light cyan
	{0xff, 0x55, 0x55, 0xff}, // light red
	{0xff, 0x55, 0xff, 0xff}, // light magenta
	{0xff, 0xff, 0x55, 0xff}, // yellow
	{0xff, 0xff, 0xff, 0xff}, // white
}

// Colors returns the palette colors of the cell.
// A zero color byte is white on black.
func (c Cell) Colors() (fg color.RGBA, bg color.RGBA) {
	if c.Color == 0 {
		fg, bg = Palette[COLOR_DEFAULT_FG], Palette[COLOR_DEFAULT_BG]
		return
	}

	fg, bg = Palette[c.Foreground()], Palette[c.Background()]
	return
}

// Glyph returns the printable text of the cell, or the empty string for
// control and non-ASCII characters.
func (c Cell) Glyph() string {
	if c.Char <= ' ' || c.Char > 0x7e {
		return ""
	}
	return string(rune(c.Char))
}
