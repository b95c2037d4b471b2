// Package styles provides shared lipgloss styles and symbols for hk output.
//
// Styling is opt-in: the root command enables it only when the target
// stream is a terminal, so piped output and golden tests stay plain.
package styles

import "charm.land/lipgloss/v2"

// Colors used throughout hk output
var (
	// Success is used for checkmarks and positive outcomes (green)
	Success = lipgloss.Color("82")

	// Warn is used for advisories (yellow)
	Warn = lipgloss.Color("214")

	// Error is used for error messages (red)
	Error = lipgloss.Color("196")

	// Muted is used for secondary text (gray)
	Muted = lipgloss.Color("240")
)

// Common styles
var (
	// SuccessStyle applies the success color
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// WarnStyle applies the warning color
	WarnStyle = lipgloss.NewStyle().Foreground(Warn)

	// ErrorStyle applies the error color
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// MutedStyle applies the muted color
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)
)

// enabled tracks whether styled rendering is active
var enabled bool

// SetEnabled turns styled rendering on or off.
func SetEnabled(on bool) {
	enabled = on
}

// Enabled returns whether styled rendering is active.
func Enabled() bool {
	return enabled
}

// render applies style to s only when styling is enabled.
func render(style lipgloss.Style, s string) string {
	if !enabled {
		return s
	}
	return style.Render(s)
}

// OK returns a green check mark prefix.
func OK(s string) string {
	return render(SuccessStyle, "✓") + " " + s
}

// Advisory returns a yellow warning prefix.
func Advisory(s string) string {
	return render(WarnStyle, "⚠") + " " + s
}

// Failed returns a red cross prefix.
func Failed(s string) string {
	return render(ErrorStyle, "✗") + " " + s
}

// Dim renders secondary text in the muted color.
func Dim(s string) string {
	return render(MutedStyle, s)
}
