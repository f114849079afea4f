package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorOrange
	ColorPurple
	ColorLime
	ColorTeal
	ColorPink
	ColorBrown
	ColorGray
	ColorRainbow // cycles per cell when rendered
)

// ColorByName maps yarn color names to cell colors. Unknown names map to
// ColorDefault.
func ColorByName(name string) Color {
	switch name {
	case "red":
		return ColorRed
	case "green":
		return ColorGreen
	case "blue":
		return ColorBlue
	case "cyan":
		return ColorCyan
	case "magenta":
		return ColorMagenta
	case "yellow":
		return ColorYellow
	case "black":
		return ColorBlack
	case "orange":
		return ColorOrange
	case "purple":
		return ColorPurple
	case "lime":
		return ColorLime
	case "teal":
		return ColorTeal
	case "pink":
		return ColorPink
	case "brown":
		return ColorBrown
	case "rainbow":
		return ColorRainbow
	default:
		return ColorDefault
	}
}
