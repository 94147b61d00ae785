package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrFontIndex is returned when a collection index is out of range.
	ErrFontIndex = errors.New("text: font index out of range")

	// ErrFontUnusable is returned for a font file that failed to load before.
	ErrFontUnusable = errors.New("text: font file unusable")
)
