package recording

import (
	"fmt"
	"strings"
)

// Color is an 8-bit non-premultiplied RGBA color as reported by the host.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Black       = Color{R: 0, G: 0, B: 0, A: 255}
	White       = Color{R: 255, G: 255, B: 255, A: 255}
	Transparent = Color{}
)

// namedColors holds the color names accepted by ParseColor.
var namedColors = map[string]Color{
	"black":       Black,
	"white":       White,
	"transparent": Transparent,
	"red":         {R: 255, A: 255},
	"green":       {G: 255, A: 255},
	"blue":        {B: 255, A: 255},
	"gray":        {R: 190, G: 190, B: 190, A: 255},
	"grey":        {R: 190, G: 190, B: 190, A: 255},
	"yellow":      {R: 255, G: 255, A: 255},
	"orange":      {R: 255, G: 165, A: 255},
}

// FromPacked converts a host-packed color (red in the lowest byte, alpha in
// the highest) to a Color.
func FromPacked(v uint32) Color {
	return Color{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}
}

// Packed returns the color in host packing, the inverse of FromPacked.
func (c Color) Packed() uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

// IsOpaque reports whether the color has full alpha.
func (c Color) IsOpaque() bool {
	return c.A == 255
}

// Hex returns the color as "#RRGGBB", ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Opacity returns alpha in the range [0, 1].
func (c Color) Opacity() float64 {
	return float64(c.A) / 255
}

// String implements fmt.Stringer.
func (c Color) String() string {
	if c.IsOpaque() {
		return c.Hex()
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColor parses a color name or a hex string.
// Supported hex formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or
// without a leading '#'.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")

	var r, g, b, a uint32
	a = 255
	ok := true

	switch len(hex) {
	case 3:
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4:
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) &&
			parseHex(hex[2:3], &b) && parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6:
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	case 8:
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) &&
			parseHex(hex[4:6], &b) && parseHex(hex[6:8], &a)
	default:
		ok = false
	}
	if !ok {
		return Color{}, fmt.Errorf("recording: invalid color %q", s)
	}

	return Color{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// parseHex accumulates hex digits of s into val.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}
