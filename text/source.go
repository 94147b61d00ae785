package text

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontSource represents a loaded font file. A TrueType collection holds
// several fonts; the others hold exactly one, at index 0.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection (Ebitengine pattern).
	// It must point to the FontSource itself.
	addr *FontSource

	data []byte
	name string

	// fonts holds one parsed font per collection index.
	fonts []*opentype.Font
}

// NewFontSource creates a FontSource from font data (TTF, OTF or TTC).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	fonts, err := parseFonts(dataCopy)
	if err != nil {
		return nil, err
	}

	s := &FontSource{
		data:  dataCopy,
		fonts: fonts,
	}
	s.addr = s
	s.name = extractFontName(fonts[0])
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

// Name returns the family name of the first font.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// NumFonts returns the number of fonts in the file.
func (s *FontSource) NumFonts() int {
	s.copyCheck()
	return len(s.fonts)
}

// IsCollection reports whether the data is a TrueType collection.
func (s *FontSource) IsCollection() bool {
	return isCollection(s.data)
}

// font returns the parsed font at index, clamping out of range indices to
// the first font.
func (s *FontSource) font(index int) *opentype.Font {
	s.copyCheck()
	if index < 0 || index >= len(s.fonts) {
		index = 0
	}
	return s.fonts[index]
}

// copyCheck panics if FontSource was copied by value.
// This is the Ebitengine pattern for preventing accidental copies.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

func isCollection(data []byte) bool {
	return bytes.HasPrefix(data, []byte("ttcf"))
}

func parseFonts(data []byte) ([]*opentype.Font, error) {
	if !isCollection(data) {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("text: failed to parse font: %w", err)
		}
		return []*opentype.Font{f}, nil
	}

	c, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font collection: %w", err)
	}
	fonts := make([]*opentype.Font, c.NumFonts())
	for i := range fonts {
		if fonts[i], err = c.Font(i); err != nil {
			return nil, fmt.Errorf("text: failed to parse font %d of collection: %w", i, err)
		}
	}
	if len(fonts) == 0 {
		return nil, ErrFontIndex
	}
	return fonts, nil
}

// extractFontName extracts the font family name from the parsed font.
func extractFontName(f *opentype.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}
