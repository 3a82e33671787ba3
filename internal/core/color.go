package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for board elements. Piece colors are assigned by cycling
// through PieceColors so neighboring generation indices look distinct.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// PieceColors is the palette cycled through when coloring pieces.
var PieceColors = []Color{
	ColorRed, ColorGreen, ColorYellow, ColorBlue, ColorMagenta, ColorCyan,
	ColorBrightRed, ColorBrightGreen, ColorBrightYellow, ColorBrightBlue,
	ColorBrightMagenta, ColorBrightCyan, ColorOrange,
}

// PieceColor returns the palette color for a piece generation index.
func PieceColor(index int) Color {
	if index < 0 {
		return ColorDefault
	}
	return PieceColors[index%len(PieceColors)]
}
