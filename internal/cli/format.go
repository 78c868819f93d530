package cli

import (
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor    = color.New(color.FgBlue, color.Bold)
	labelColor     = color.New(color.FgCyan)
	collisionColor = color.New(color.FgRed, color.Bold)
	dimColor       = color.New(color.FgHiBlack)
)

// applyColorMode honors the --no-color flag; fatih/color already disables
// itself on non-TTY output.
func applyColorMode() {
	if noColor {
		color.NoColor = true
	}
}

// colorizeRow renders one diagram row, dimming idle cells and highlighting
// collision cells. Buffer glyphs stay plain so adjacent buffers remain
// distinguishable by digit.
func colorizeRow(row string) string {
	var out strings.Builder
	for _, r := range row {
		switch r {
		case '.':
			out.WriteString(dimColor.Sprint("."))
		case '!':
			out.WriteString(collisionColor.Sprint("!"))
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
