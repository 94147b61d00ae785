// Package text measures strings for the plot device.
//
// Text commands carry the advance width of their string, measured once at
// capture time, so that every renderer lays the page out identically. This
// package provides that measurement:
//
//   - FontSource: a loaded font file (TTF, OTF or a TTC collection)
//   - Resolver: maps a family name and face to a FontSource and collection
//     index, using user aliases first and the embedded Go fonts otherwise
//   - Shaper: HarfBuzz shaping via go-text/typesetting for advance widths
//   - MetricInfo: per-glyph ascent, descent and width via golang.org/x/image
//
// # Example usage
//
//	r := text.NewResolver(text.WithAliases(text.Aliases{
//	    "serif": {Path: "/usr/share/fonts/TTF/DejaVuSerif.ttf"},
//	}))
//
//	src, index := r.Resolve("serif", recording.FaceBold, nil)
//	width := r.AdvanceWidth("Hello", src, index, 12)
//
// Family names match case-insensitively, and strings are NFC-normalized
// before shaping.
package text
