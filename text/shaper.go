package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/norm"
)

// Shaper measures advance widths with HarfBuzz shaping via
// go-text/typesetting, so kerning and ligatures are accounted for.
//
// Shaper is safe for concurrent use. It caches parsed font.Font objects
// (which are thread-safe) and creates lightweight font.Face instances per
// call (font.Face is NOT safe for concurrent use). The HarfbuzzShaper
// instances are pooled via sync.Pool since they also are not concurrent-safe.
type Shaper struct {
	shaperPool sync.Pool

	mu        sync.RWMutex
	fontCache map[fontKey]*font.Font
}

type fontKey struct {
	src   *FontSource
	index int
}

// NewShaper creates a new Shaper.
func NewShaper() *Shaper {
	return &Shaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fontCache: make(map[fontKey]*font.Font),
	}
}

// AdvanceWidth returns the advance width of s set in font index of src at
// size. The string is NFC-normalized first.
func (sh *Shaper) AdvanceWidth(s string, src *FontSource, index int, size float64) float64 {
	if s == "" || src == nil || size <= 0 {
		return 0
	}
	f, err := sh.getOrCreateFont(src, index)
	if err != nil {
		return 0
	}

	runes := []rune(norm.NFC.String(s))
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f),
		Size:      floatToFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := sh.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	sh.shaperPool.Put(hb)

	var w float64
	for _, g := range out.Glyphs {
		w += fixedToFloat(g.Advance)
	}
	return w
}

// getOrCreateFont returns a cached go-text font.Font for the given source
// and collection index, parsing the font data on first use.
func (sh *Shaper) getOrCreateFont(src *FontSource, index int) (*font.Font, error) {
	if index < 0 || index >= src.NumFonts() {
		index = 0
	}
	key := fontKey{src: src, index: index}

	sh.mu.RLock()
	if f, ok := sh.fontCache[key]; ok {
		sh.mu.RUnlock()
		return f, nil
	}
	sh.mu.RUnlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if f, ok := sh.fontCache[key]; ok {
		return f, nil
	}

	var face *font.Face
	if src.IsCollection() {
		faces, err := font.ParseTTC(bytes.NewReader(src.data))
		if err != nil {
			return nil, err
		}
		if index >= len(faces) {
			return nil, ErrFontIndex
		}
		face = faces[index]
	} else {
		var err error
		if face, err = font.ParseTTF(bytes.NewReader(src.data)); err != nil {
			return nil, err
		}
	}

	// Cache the Font (thread-safe), not the Face.
	sh.fontCache[key] = face.Font
	return face.Font, nil
}

// detectScript inspects the runes and returns the script of the first
// non-space character.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
