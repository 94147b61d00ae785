package recording

// LineEnd is the cap style at the ends of stroked lines.
type LineEnd uint8

const (
	LineEndRound LineEnd = iota + 1
	LineEndButt
	LineEndSquare
)

// String returns the stroke-linecap keyword for the line end.
func (e LineEnd) String() string {
	switch e {
	case LineEndButt:
		return "butt"
	case LineEndSquare:
		return "square"
	default:
		return "round"
	}
}

// LineJoin is the style of joins between stroked segments.
type LineJoin uint8

const (
	LineJoinRound LineJoin = iota + 1
	LineJoinMitre
	LineJoinBevel
)

// String returns the stroke-linejoin keyword for the line join.
func (j LineJoin) String() string {
	switch j {
	case LineJoinMitre:
		return "miter"
	case LineJoinBevel:
		return "bevel"
	default:
		return "round"
	}
}

// LineType is a packed dash pattern. Each hex nibble, starting from the
// lowest, is the length of an alternating dash and gap in line widths.
type LineType int32

const (
	// LineTypeBlank draws nothing.
	LineTypeBlank LineType = -1
	// LineTypeSolid draws a continuous line.
	LineTypeSolid LineType = 0
)

// Common dash patterns.
const (
	LineTypeDashed  LineType = 0x44
	LineTypeDotted  LineType = 0x13
	LineTypeDotDash LineType = 0x1343
)

// Dashes returns the dash and gap lengths encoded in the line type, in line
// width units. It returns nil for solid and blank lines.
func (lt LineType) Dashes() []int {
	if lt == LineTypeSolid || lt == LineTypeBlank {
		return nil
	}
	var dashes []int
	v := uint32(lt)
	for i := 0; i < 8 && v&15 != 0; i++ {
		dashes = append(dashes, int(v&15))
		v >>= 4
	}
	return dashes
}

// FontFace selects the style variant of a font family.
type FontFace uint8

const (
	FacePlain FontFace = iota + 1
	FaceBold
	FaceItalic
	FaceBoldItalic
	FaceSymbol
)

// IsBold reports whether the face is a bold variant.
func (f FontFace) IsBold() bool {
	return f == FaceBold || f == FaceBoldItalic
}

// IsItalic reports whether the face is an italic variant.
func (f FontFace) IsItalic() bool {
	return f == FaceItalic || f == FaceBoldItalic
}

// Font describes the font of a Text command as it was at capture time.
type Font struct {
	// Family is the family requested by the host ("sans", "serif", ...).
	Family string
	// Name is the resolved family name written to markup.
	Name string
	// Face is the requested style variant.
	Face FontFace
	// Size is the font size in points (cex * ps).
	Size float64
	// Width is the advance width of the text at Size, measured at capture.
	Width float64
}

// GC is the graphics context snapshot attached to every drawing command.
type GC struct {
	Col    Color    // stroke color
	Fill   Color    // fill color
	LWD    float64  // line width in 1/96 inch
	LTY    LineType // dash pattern
	LEnd   LineEnd
	LJoin  LineJoin
	LMitre float64

	FontFamily string
	FontFace   FontFace
	CEX        float64 // character expansion
	PS         float64 // point size
}

// DefaultGC returns the context a fresh device starts with: black stroke,
// transparent fill, unit line width, round caps and joins, 12pt sans.
func DefaultGC() GC {
	return GC{
		Col:        Black,
		Fill:       Transparent,
		LWD:        1,
		LTY:        LineTypeSolid,
		LEnd:       LineEndRound,
		LJoin:      LineJoinRound,
		LMitre:     10,
		FontFamily: "sans",
		FontFace:   FacePlain,
		CEX:        1,
		PS:         12,
	}
}

// FontSize returns the effective font size in points.
func (gc GC) FontSize() float64 {
	return gc.CEX * gc.PS
}

// scaled returns a copy with widths multiplied by s.
func (gc GC) scaled(s float64) GC {
	gc.LWD *= s
	return gc
}
