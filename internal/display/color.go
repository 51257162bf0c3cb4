package display

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ShouldUseColors reports whether output written to f should be colored.
// In auto mode that means f is a terminal and NO_COLOR is unset.
func ShouldUseColors(colorMode string, f *os.File) bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	default:
		if f == nil {
			return false
		}
		fileInfo, err := f.Stat()
		if err != nil || (fileInfo.Mode()&os.ModeCharDevice) == 0 {
			return false
		}
		return os.Getenv("NO_COLOR") == ""
	}
}

// applyColorProfile forces the renderer's profile for "always" and "never".
// Auto leaves lipgloss' own TTY detection in place.
func applyColorProfile(r *lipgloss.Renderer, colorMode string) {
	switch colorMode {
	case "always":
		r.SetColorProfile(termenv.TrueColor)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	}
}
