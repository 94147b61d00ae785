package text

import (
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/cases"

	"github.com/gogpu/gglive/recording"
)

// FontFile points a family at a font on disk. Index selects a font inside a
// TrueType collection. Name, when set, is the family name written into
// markup instead of the system alias.
type FontFile struct {
	Path  string `yaml:"path"`
	Index int    `yaml:"index"`
	Name  string `yaml:"name"`
}

// Aliases maps family names to font files. Keys match case-insensitively.
// A key may carry a face suffix ("sans:bold", "serif:italic",
// "mono:bolditalic") which takes precedence over the bare family.
type Aliases map[string]FontFile

// systemNames are the markup family names of the generic families.
var systemNames = map[string]string{
	"sans":   "Helvetica",
	"serif":  "Times",
	"mono":   "Courier",
	"symbol": "Symbol",
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithAliases sets the resolver's font aliases. Per-call aliases passed to
// Resolve take precedence over these.
func WithAliases(a Aliases) Option {
	return func(r *Resolver) {
		r.aliases = fold(a)
	}
}

// WithLogger sets the logger used to report unreadable font files.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// Resolver maps family names and faces to fonts and measures strings.
//
// Resolver is safe for concurrent use. Font files are loaded once and
// shared.
type Resolver struct {
	aliases Aliases
	shaper  *Shaper
	log     *slog.Logger

	mu    sync.Mutex
	files map[string]*FontSource
}

// NewResolver creates a Resolver backed by the embedded Go fonts.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		shaper: NewShaper(),
		log:    slog.New(slog.DiscardHandler),
		files:  make(map[string]*FontSource),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the font for family in the given face, and its index
// within a collection. Lookup order: per-call aliases, resolver aliases,
// then the embedded fonts. Resolve never returns a nil source.
func (r *Resolver) Resolve(family string, face recording.FontFace, aliases Aliases) (*FontSource, int) {
	key := foldName(family)
	for _, a := range []Aliases{fold(aliases), r.aliases} {
		if f, ok := lookup(a, key, face); ok && f.Path != "" {
			if src, err := r.load(f.Path); err == nil {
				return src, f.Index
			}
		}
	}
	return embedded(key, face), 0
}

// AdvanceWidth returns the advance width of s set in font index of src at
// size points.
func (r *Resolver) AdvanceWidth(s string, src *FontSource, index int, size float64) float64 {
	return r.shaper.AdvanceWidth(s, src, index, size)
}

// Measure resolves the font and returns the advance width of s.
func (r *Resolver) Measure(s, family string, face recording.FontFace, size float64) float64 {
	src, index := r.Resolve(family, face, nil)
	return r.AdvanceWidth(s, src, index, size)
}

// FontName returns the family name written into markup for family. An
// alias with a Name wins, then the system names of the generic families;
// other families are written as given. The empty family is sans.
func (r *Resolver) FontName(family string, face recording.FontFace, aliases Aliases) string {
	return FontName(family, face, merge(r.aliases, fold(aliases)))
}

// FontName is Resolver.FontName without resolver aliases.
func FontName(family string, face recording.FontFace, aliases Aliases) string {
	key := foldName(family)
	if f, ok := lookup(fold(aliases), key, face); ok && f.Name != "" {
		return f.Name
	}
	if face == recording.FaceSymbol {
		key = "symbol"
	}
	if name, ok := systemNames[key]; ok {
		return name
	}
	return family
}

func (r *Resolver) load(path string) (*FontSource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if src, ok := r.files[path]; ok {
		if src == nil {
			return nil, ErrFontUnusable
		}
		return src, nil
	}
	src, err := NewFontSourceFromFile(path)
	if err != nil {
		// Remembered so the file is read and reported once.
		r.files[path] = nil
		r.log.Warn("text: font alias unusable, using embedded font", "path", path, "err", err)
		return nil, err
	}
	r.files[path] = src
	return src, nil
}

// lookup finds the alias for the folded family key, preferring a face
// specific entry.
func lookup(a Aliases, key string, face recording.FontFace) (FontFile, bool) {
	if len(a) == 0 {
		return FontFile{}, false
	}
	if suffix := faceSuffix(face); suffix != "" {
		if f, ok := a[key+":"+suffix]; ok {
			return f, true
		}
	}
	f, ok := a[key]
	return f, ok
}

func faceSuffix(face recording.FontFace) string {
	switch {
	case face.IsBold() && face.IsItalic():
		return "bolditalic"
	case face.IsBold():
		return "bold"
	case face.IsItalic():
		return "italic"
	}
	return ""
}

// foldName case-folds a family name; the empty name is sans.
func foldName(family string) string {
	family = strings.TrimSpace(family)
	if family == "" {
		return "sans"
	}
	// A Caser is stateful, so each call gets its own.
	return cases.Fold().String(family)
}

func fold(a Aliases) Aliases {
	if len(a) == 0 {
		return nil
	}
	out := make(Aliases, len(a))
	for k, v := range a {
		out[cases.Fold().String(strings.TrimSpace(k))] = v
	}
	return out
}

// merge returns base overlaid with over.
func merge(base, over Aliases) Aliases {
	out := make(Aliases, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

var (
	embeddedOnce  sync.Once
	embeddedFonts map[string]*FontSource
)

// embedded returns the Go font for a generic family and face. Families
// without a Go equivalent use the sans fonts.
func embedded(key string, face recording.FontFace) *FontSource {
	embeddedOnce.Do(func() {
		data := map[string][]byte{
			"sans":            goregular.TTF,
			"sans:bold":       gobold.TTF,
			"sans:italic":     goitalic.TTF,
			"sans:bolditalic": gobolditalic.TTF,
			"mono":            gomono.TTF,
			"mono:bold":       gomonobold.TTF,
			"mono:italic":     gomonoitalic.TTF,
			"mono:bolditalic": gomonobolditalic.TTF,
		}
		embeddedFonts = make(map[string]*FontSource, len(data))
		for k, ttf := range data {
			src, err := NewFontSource(ttf)
			if err != nil {
				panic("text: embedded font " + k + ": " + err.Error())
			}
			embeddedFonts[k] = src
		}
	})

	family := "sans"
	if key == "mono" || key == "monospace" || key == "courier" {
		family = "mono"
	}
	if suffix := faceSuffix(face); suffix != "" {
		return embeddedFonts[family+":"+suffix]
	}
	return embeddedFonts[family]
}
