// Package terminal implements the scrolling text buffer that sits behind
// the Apple-1's display: a fixed-width, fixed-height grid that appends
// output character by character and discards the oldest row once the
// configured row count is exceeded.
package terminal

import "strings"

// DefaultColumns and DefaultRows match the historical Apple-1 display.
const (
	DefaultColumns = 40
	DefaultRows    = 24
)

// Buffer is a row-oriented scrolling text buffer. It is not safe for
// concurrent use.
type Buffer struct {
	Columns int
	Rows    int

	rows []string
	cur  strings.Builder
}

// New returns an empty buffer sized cols x rows. A zero cols or rows
// falls back to the Apple-1 defaults.
func New(cols, rows int) *Buffer {
	if cols <= 0 {
		cols = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Buffer{Columns: cols, Rows: rows}
}

// Append adds one printable character to the current row, per spec
// section 4.8: a newline closes the current row, and a row that reaches
// Columns characters wraps to a new row immediately. After closing a row,
// the buffer pops from the head if more than Rows rows are in use.
func (b *Buffer) Append(ch byte) {
	if ch == '\n' {
		b.endRow()
		return
	}
	b.cur.WriteByte(ch)
	if b.cur.Len() >= b.Columns {
		b.endRow()
	}
}

// AppendString feeds a whole string through Append, one byte at a time.
func (b *Buffer) AppendString(s string) {
	for i := 0; i < len(s); i++ {
		b.Append(s[i])
	}
}

func (b *Buffer) endRow() {
	b.rows = append(b.rows, b.cur.String())
	b.cur.Reset()
	if len(b.rows) > b.Rows {
		b.rows = b.rows[1:]
	}
}

// Lines returns the completed rows plus the in-progress row when it holds
// any characters, oldest first, for rendering.
func (b *Buffer) Lines() []string {
	out := make([]string, 0, len(b.rows)+1)
	out = append(out, b.rows...)
	if b.cur.Len() > 0 {
		out = append(out, b.cur.String())
	}
	return out
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.rows = nil
	b.cur.Reset()
}

// String renders the buffer as newline-joined text, for tests and the
// monitor's plain-text dump.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}
