package state

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// setCursor moves the cursor to idx, clamped to the rows, and reports
// whether it moved. An empty level parks the cursor at zero.
func (l *Level) setCursor(idx int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = clamp(idx, 0, len(l.Items)-1)
	return old != l.Cursor
}

func (l *Level) MoveCursorHome() bool {
	return l.setCursor(0)
}

func (l *Level) MoveCursorEnd() bool {
	return l.setCursor(len(l.Items) - 1)
}

// MoveCursorPageUp moves up one page of maxVisible rows.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.setCursor(max(l.Cursor, 0) - l.pageSize(maxVisible))
}

// MoveCursorPageDown moves down one page of maxVisible rows.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.setCursor(max(l.Cursor, 0) + l.pageSize(maxVisible))
}

// pageSize is maxVisible bounded by the row count. A non-positive
// maxVisible means the whole list fits.
func (l *Level) pageSize(maxVisible int) int {
	total := len(l.Items)
	if maxVisible <= 0 || maxVisible > total {
		return total
	}
	return maxVisible
}

// EnsureCursorVisible scrolls the viewport so the cursor row is within the
// maxVisible rows shown.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, len(l.Items)-1)
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := max(len(l.Items)-maxVisible, 0)
	offset := clamp(l.ViewportOffset, 0, maxOffset)
	switch {
	case l.Cursor < offset:
		offset = l.Cursor
	case l.Cursor >= offset+maxVisible:
		offset = clamp(l.Cursor-maxVisible+1, 0, maxOffset)
	}
	l.ViewportOffset = offset
}
