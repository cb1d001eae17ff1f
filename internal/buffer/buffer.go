// Package buffer holds a fully loaded file and the row/page geometry used to
// page through it.
package buffer

const (
	DefaultRowWidth   = 16
	DefaultPageHeight = 21
)

// Buffer is an immutable, fully materialized file image.
type Buffer struct {
	name       string
	data       []byte
	rowWidth   int
	pageHeight int
	rowCount   int
	pageCount  int
}

// New freezes data into a Buffer. The slice is owned by the Buffer from now on.
// Non-positive geometry falls back to the defaults.
func New(name string, data []byte, rowWidth, pageHeight int) *Buffer {
	if rowWidth <= 0 {
		rowWidth = DefaultRowWidth
	}
	if pageHeight <= 0 {
		pageHeight = DefaultPageHeight
	}
	rows := ceilDiv(len(data), rowWidth)
	return &Buffer{
		name:       name,
		data:       data,
		rowWidth:   rowWidth,
		pageHeight: pageHeight,
		rowCount:   rows,
		pageCount:  ceilDiv(rows, pageHeight),
	}
}

func (b *Buffer) Name() string    { return b.name }
func (b *Buffer) Len() int        { return len(b.data) }
func (b *Buffer) RowWidth() int   { return b.rowWidth }
func (b *Buffer) PageHeight() int { return b.pageHeight }
func (b *Buffer) RowCount() int   { return b.rowCount }
func (b *Buffer) PageCount() int  { return b.pageCount }
func (b *Buffer) Empty() bool     { return len(b.data) == 0 }

// Bytes exposes the underlying data. Callers must not modify it.
func (b *Buffer) Bytes() []byte { return b.data }

// At returns the byte at offset i. It panics when i is out of range, like a slice.
func (b *Buffer) At(i int) byte { return b.data[i] }

// Row returns the bytes of row r, shorter than RowWidth on a partial last row.
func (b *Buffer) Row(r int) []byte {
	if r < 0 || r >= b.rowCount {
		return nil
	}
	start := r * b.rowWidth
	end := start + b.rowWidth
	if end > len(b.data) {
		end = len(b.data)
	}
	return b.data[start:end]
}

func (b *Buffer) RowOfByte(bt int) int {
	return RowOfByte(bt, len(b.data), b.rowWidth, b.rowCount)
}

func (b *Buffer) ByteOfRow(row int) int {
	return ByteOfRow(row, b.rowCount, b.rowWidth)
}

func (b *Buffer) PageOfRow(row int) int {
	return PageOfRow(row, b.rowCount, b.pageHeight)
}

func (b *Buffer) RowOfPage(page int) int {
	return RowOfPage(page, b.pageCount, b.pageHeight)
}

// RowEnd returns the last valid byte offset of row.
func (b *Buffer) RowEnd(row int) int {
	return b.ClampByte(b.ByteOfRow(row) + b.rowWidth - 1)
}

// ClampByte clamps n into [0, Len-1], or 0 for an empty buffer.
func (b *Buffer) ClampByte(n int) int {
	if n >= len(b.data) {
		n = len(b.data) - 1
	}
	if n < 0 {
		return 0
	}
	return n
}
