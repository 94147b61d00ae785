package svg

// Option configures a Backend.
//
// Example:
//
//	markup := svg.Render(page, 800, 600,
//	    svg.WithFixedText(true),
//	    svg.WithIDPrefix("plot7-"),
//	)
type Option func(*options)

// rootClass is the class attribute of the root svg element.
const rootClass = "gglive"

// options holds the style options of a Backend.
type options struct {
	fixedText       bool
	idPrefix        string
	maxRasterPixels int
}

func defaultOptions() options {
	return options{}
}

// WithFixedText pins the rendered width of every text element to the
// advance width measured at capture time, so layout does not depend on the
// glyph metrics of the viewer's font engine.
func WithFixedText(enabled bool) Option {
	return func(o *options) {
		o.fixedText = enabled
	}
}

// WithIDPrefix prefixes clip path ids. Use distinct prefixes when several
// plots are inlined into one HTML document.
func WithIDPrefix(prefix string) Option {
	return func(o *options) {
		o.idPrefix = prefix
	}
}

// WithMaxRasterPixels downsamples embedded bitmaps larger than n pixels.
// Zero or negative means no limit.
func WithMaxRasterPixels(n int) Option {
	return func(o *options) {
		o.maxRasterPixels = n
	}
}
