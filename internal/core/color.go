package core

// Color is a foreground colour for a screen cell. The terminal renderer maps
// it to an ANSI palette entry.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorOrange
	ColorRed
	ColorCyan
	ColorGray
)
