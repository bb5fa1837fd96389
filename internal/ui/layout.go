package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

const defaultWidth = 80

func DetermineLayoutMode(cols int) LayoutMode {
	if cols >= 100 {
		return LayoutWide
	}
	if cols >= 64 {
		return LayoutMedium
	}
	return LayoutNarrow
}

// BadgeColumns is how many badge cards fit side by side.
func BadgeColumns(mode LayoutMode) int {
	switch mode {
	case LayoutWide:
		return 3
	case LayoutMedium:
		return 2
	default:
		return 1
	}
}

// TerminalWidth reports the width of f, or 80 when f is not a terminal.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(f.Fd()) {
		return defaultWidth
	}
	w, _, err := term.GetSize(f.Fd())
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
