// Package display holds the character display buffer shared between the
// VM, which writes it through memory-mapped I/O, and the renderer.
//
// The buffer is a grid of COLUMNS x ROWS cells, each two bytes: a character
// code followed by a color byte (low nibble foreground, high nibble
// background).
package display

import (
	"fmt"
	"iter"
	"maps"
	"sync"
)

const (
	COLUMNS   = 64                        // Cells per row.
	ROWS      = 32                        // Rows of cells.
	CELL_SIZE = 2                         // Bytes per cell.
	SIZE      = COLUMNS * ROWS * CELL_SIZE // Bytes in the buffer.
)

var _display_defines = map[string]string{
	"DISPLAY_COLUMNS": fmt.Sprintf("%v", COLUMNS),
	"DISPLAY_ROWS":    fmt.Sprintf("%v", ROWS),
	"DISPLAY_SIZE":    fmt.Sprintf("%#x", SIZE),
}

// Cell is a decoded display cell.
type Cell struct {
	Char  byte
	Color byte
}

// Foreground returns the foreground palette index.
func (c Cell) Foreground() int {
	return int(c.Color & 0xf)
}

// Background returns the background palette index.
func (c Cell) Background() int {
	return int(c.Color >> 4)
}

// Buffer is the shared display memory.
type Buffer struct {
	mu   sync.Mutex
	data [SIZE]byte
}

// NewBuffer returns a cleared display buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Defines returns an iterator of the display layout equates.
func (buf *Buffer) Defines() iter.Seq2[string, string] {
	return maps.All(_display_defines)
}

// Get reads one byte. Offsets outside the buffer read as 0.
func (buf *Buffer) Get(offset int) (value byte) {
	if offset < 0 || offset >= SIZE {
		return
	}

	buf.mu.Lock()
	value = buf.data[offset]
	buf.mu.Unlock()

	return
}

// Set writes one byte. Offsets outside the buffer are ignored.
func (buf *Buffer) Set(offset int, value byte) {
	if offset < 0 || offset >= SIZE {
		return
	}

	buf.mu.Lock()
	buf.data[offset] = value
	buf.mu.Unlock()
}

// Snapshot copies the whole buffer into dst under a single lock.
func (buf *Buffer) Snapshot(dst *[SIZE]byte) {
	buf.mu.Lock()
	*dst = buf.data
	buf.mu.Unlock()
}

// Clear zeroes the buffer.
func (buf *Buffer) Clear() {
	buf.mu.Lock()
	clear(buf.data[:])
	buf.mu.Unlock()
}

// Offset returns the byte offset of the cell at column x, row y.
func Offset(x, y int) int {
	return (x + y*COLUMNS) * CELL_SIZE
}

// CellAt decodes the cell at column x, row y of a snapshot.
func CellAt(data *[SIZE]byte, x, y int) (cell Cell) {
	if x < 0 || x >= COLUMNS || y < 0 || y >= ROWS {
		return
	}
	offset := Offset(x, y)
	cell = Cell{Char: data[offset], Color: data[offset+1]}
	return
}

// String renders the character plane as text, one line per row.
func (buf *Buffer) String() string {
	var data [SIZE]byte
	buf.Snapshot(&data)

	text := make([]byte, 0, (COLUMNS+1)*ROWS)
	for y := range ROWS {
		for x := range COLUMNS {
			ch := CellAt(&data, x, y).Char
			if ch < 0x20 || ch > 0x7e {
				ch = ' '
			}
			text = append(text, ch)
		}
		text = append(text, '\n')
	}

	return string(text)
}
