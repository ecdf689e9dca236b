package scout

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg  int // User message header
	ModelMsg int // Model message header
	Thinking int // "Researching..." indicator
	Source   int // Source card border and index
	Error    int // Error banner
	Muted    int // Status bar, timestamps, URLs
	Accent   int // Headings, links, inline code
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:  4,
		ModelMsg: 6,
		Thinking: 6,
		Source:   3,
		Error:    1,
		Muted:    8,
		Accent:   5,
	}
}
