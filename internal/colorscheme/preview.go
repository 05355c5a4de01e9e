package colorscheme

import (
	"fmt"
	"os"
	"strings"
)

// previewBlocks is how many color swatches a scheme preview renders.
const previewBlocks = 10

// ANSI256 converts an RGB color to the nearest ANSI 256 color code.
func ANSI256(c RGB) int {
	if c.R == c.G && c.G == c.B {
		if c.R < 8 {
			return 16
		}
		if c.R > 248 {
			return 231
		}
		return int(float64(c.R)-8)*24/247 + 232
	}

	// Colors 16-231 form a 6x6x6 cube
	r := (int(c.R)*5 + 127) / 255
	g := (int(c.G)*5 + 127) / 255
	b := (int(c.B)*5 + 127) / 255
	return 16 + 36*r + 6*g + b
}

// Preview renders a scheme as a row of ANSI background-colored blocks.
func Preview(scheme Scheme) string {
	var sb strings.Builder
	for i := 0; i < previewBlocks; i++ {
		c := ColorFor(i, previewBlocks, scheme)
		fmt.Fprintf(&sb, "\033[48;5;%dm  \033[0m", ANSI256(c))
	}
	return sb.String()
}

// FormatMenu renders the numbered scheme menu, with ANSI previews when the
// terminal supports 256 colors.
func FormatMenu() string {
	withPreviews := Supports256Colors()

	var sb strings.Builder
	if withPreviews {
		sb.WriteString("\nAvailable color schemes (with previews):\n")
	} else {
		sb.WriteString("\nAvailable color schemes:\n")
	}

	for i, entry := range Catalog() {
		name := fmt.Sprintf("%-15s", entry.Scheme)
		if withPreviews {
			fmt.Fprintf(&sb, "%3d. %s %s - %s\n", i+1, name, Preview(entry.Scheme), entry.Description)
		} else {
			fmt.Fprintf(&sb, "%3d. %s - %s\n", i+1, name, entry.Description)
		}
	}
	return sb.String()
}

// MenuChoice resolves a 1-based menu number to its scheme.
func MenuChoice(n int) (Scheme, bool) {
	if n < 1 || n > len(menuOrder) {
		return "", false
	}
	return menuOrder[n-1], true
}

// Supports256Colors checks common terminal environment hints.
func Supports256Colors() bool {
	term := os.Getenv("TERM")
	colorterm := os.Getenv("COLORTERM")

	if strings.Contains(term, "256") {
		return true
	}
	if colorterm == "truecolor" || colorterm == "24bit" {
		return true
	}
	switch term {
	case "xterm", "screen", "tmux", "rxvt-unicode", "konsole", "gnome-terminal":
		return true
	}
	return false
}
