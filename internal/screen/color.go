package screen

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/ansistream/internal/ansi"
)

// Color is a concrete terminal color. Index is the palette slot when
// the color came from the palette, -1 for direct RGB; Default marks the
// terminal's configured default.
type Color struct {
	R, G, B uint8
	Index   int
	Default bool
}

// DefaultForeground is the default foreground color.
var DefaultForeground = Color{Default: true, Index: -1}

// DefaultBackground is the default background color.
var DefaultBackground = Color{Default: true, Index: -1}

// basePalette is the 16-color palette in DOS order: blue at 1, red at
// 4, brown at 6. EGA values.
var basePalette = [16]Color{
	{Index: 0, R: 0x00, G: 0x00, B: 0x00},   // black
	{Index: 1, R: 0x00, G: 0x00, B: 0xAA},   // blue
	{Index: 2, R: 0x00, G: 0xAA, B: 0x00},   // green
	{Index: 3, R: 0x00, G: 0xAA, B: 0xAA},   // cyan
	{Index: 4, R: 0xAA, G: 0x00, B: 0x00},   // red
	{Index: 5, R: 0xAA, G: 0x00, B: 0xAA},   // magenta
	{Index: 6, R: 0xAA, G: 0x55, B: 0x00},   // brown
	{Index: 7, R: 0xAA, G: 0xAA, B: 0xAA},   // white
	{Index: 8, R: 0x55, G: 0x55, B: 0x55},   // bright black
	{Index: 9, R: 0x55, G: 0x55, B: 0xFF},   // bright blue
	{Index: 10, R: 0x55, G: 0xFF, B: 0x55},  // bright green
	{Index: 11, R: 0x55, G: 0xFF, B: 0xFF},  // bright cyan
	{Index: 12, R: 0xFF, G: 0x55, B: 0x55},  // bright red
	{Index: 13, R: 0xFF, G: 0x55, B: 0xFF},  // bright magenta
	{Index: 14, R: 0xFF, G: 0xFF, B: 0x55},  // bright yellow
	{Index: 15, R: 0xFF, G: 0xFF, B: 0xFF},  // bright white
}

// ColorFromIndex returns a color from a 256-color palette index.
func ColorFromIndex(index int) Color {
	switch {
	case index < 0 || index > 255:
		return DefaultForeground
	case index < 16:
		return basePalette[index]
	case index < 232:
		// 6x6x6 cube.
		i := index - 16
		return Color{
			Index: index,
			R:     uint8(i / 36 * 51),
			G:     uint8(i / 6 % 6 * 51),
			B:     uint8(i % 6 * 51),
		}
	default:
		gray := uint8((index-232)*10 + 8)
		return Color{Index: index, R: gray, G: gray, B: gray}
	}
}

// ColorFromRGB returns a direct 24-bit color.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Index: -1}
}

// colorFromANSI translates a decoded SGR color into a concrete one.
// The fallback is used for the default-color variant.
func colorFromANSI(c ansi.Color, fallback Color) Color {
	switch c.Mode {
	case ansi.ColorBase, ansi.ColorExtended:
		return ColorFromIndex(int(c.Index))
	case ansi.ColorRGB:
		return ColorFromRGB(c.R, c.G, c.B)
	default:
		return fallback
	}
}

// brighten maps a dim base color to its bright counterpart, which is
// how bold text renders on a 16-color display.
func brighten(c Color) Color {
	if c.Index >= 0 && c.Index < 8 {
		return basePalette[c.Index+8]
	}
	return c
}

// fade blends c halfway toward bg in Lab space, used to render faint
// text.
func fade(c, bg Color) Color {
	from := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	to := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}
	m := from.BlendLab(to, 0.5).Clamped()
	return Color{R: uint8(m.R * 255), G: uint8(m.G * 255), B: uint8(m.B * 255), Index: -1}
}
