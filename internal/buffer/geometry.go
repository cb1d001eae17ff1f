package buffer

// The conversions below never fail: out-of-range input clamps to the
// nearest valid row, page or byte. With zero rows or pages they return 0.

// RowOfByte returns the row holding byte bt.
func RowOfByte(bt, length, rowWidth, rowCount int) int {
	if rowCount <= 0 || rowWidth <= 0 {
		return 0
	}
	if bt >= length {
		return rowCount - 1
	}
	if bt <= 0 {
		return 0
	}
	return bt / rowWidth
}

// ByteOfRow returns the offset of the first byte in row.
func ByteOfRow(row, rowCount, rowWidth int) int {
	if rowCount <= 0 || rowWidth <= 0 {
		return 0
	}
	if row >= rowCount {
		return (rowCount - 1) * rowWidth
	}
	if row <= 0 {
		return 0
	}
	return row * rowWidth
}

// PageOfRow returns the page holding row.
func PageOfRow(row, rowCount, pageHeight int) int {
	if rowCount <= 0 || pageHeight <= 0 {
		return 0
	}
	if row >= rowCount {
		return (rowCount - 1) / pageHeight
	}
	if row <= 0 {
		return 0
	}
	return row / pageHeight
}

// RowOfPage returns the first row of page.
func RowOfPage(page, pageCount, pageHeight int) int {
	if pageCount <= 0 || pageHeight <= 0 {
		return 0
	}
	if page >= pageCount {
		return (pageCount - 1) * pageHeight
	}
	if page <= 0 {
		return 0
	}
	return page * pageHeight
}

func ceilDiv(n, d int) int {
	if n <= 0 || d <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
