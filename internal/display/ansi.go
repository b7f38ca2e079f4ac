package display

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"
)

// MoveTo positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", CSI, row, col)
}

// ClearScreen clears the entire screen.
func ClearScreen() string {
	return CSI + "2J"
}

// HideCursor hides the terminal cursor.
func HideCursor() string {
	return CSI + "?25l"
}

// ShowCursor shows the terminal cursor.
func ShowCursor() string {
	return CSI + "?25h"
}

// EnableAltScreen switches to the alternate screen buffer.
func EnableAltScreen() string {
	return CSI + "?1049h"
}

// DisableAltScreen switches back from the alternate screen buffer.
func DisableAltScreen() string {
	return CSI + "?1049l"
}

// writeHalfBlockSGR writes one terminal cell showing two vertically stacked
// pixels: the upper-half-block glyph with foreground = top pixel and
// background = bottom pixel. Uses a combined SGR to avoid state leakage
// between cells.
func writeHalfBlockSGR(sb *strings.Builder, tr, tg, tb, br, bg, bb uint8) {
	sb.WriteString("\x1b[0;38;2;")
	sb.WriteString(strconv.Itoa(int(tr)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(tg)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(tb)))
	sb.WriteString(";48;2;")
	sb.WriteString(strconv.Itoa(int(br)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bg)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bb)))
	sb.WriteByte('m')
	sb.WriteRune('▀')
}
