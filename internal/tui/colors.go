package tui

// Color constants for the tudu TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (field labels, user input, titles)
	ColorSecondaryText = "#B1B8C7" // Secondary text - subtle purple-tinted grey
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Logo, accent elements, active borders
	ColorAccentBright = "#A78BFA" // Hover, highlights, current step

	// State Colors
	ColorError   = "#EF4444" // Failures, overdue
	ColorSuccess = "#22C55E" // Done, confirmations
	ColorWarning = "#F59E0B" // Due soon, high priority
)

// statusColor picks the colour a status is drawn in
func statusColor(done, archived bool) string {
	switch {
	case done:
		return ColorSuccess
	case archived:
		return ColorDisabledText
	default:
		return ColorSecondaryText
	}
}

// priorityColor picks the colour a priority is drawn in
func priorityColor(priority string) string {
	switch priority {
	case "high":
		return ColorError
	case "medium":
		return ColorWarning
	default:
		return ColorSecondaryText
	}
}
