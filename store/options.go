package store

import (
	"log/slog"

	"github.com/gogpu/gglive/recording"
)

// Option configures a Store.
//
// Example:
//
//	s := store.New(
//	    store.WithMaxPages(50),
//	    store.WithDefaultPage(720, 576, recording.White),
//	)
type Option func(*options)

type options struct {
	maxPages      int
	width, height float64
	bg            recording.Color
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		maxPages: Unbounded,
		width:    720,
		height:   576,
		bg:       recording.White,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// WithMaxPages bounds the number of retained pages; the oldest page is
// evicted when a new one would exceed n. Unbounded keeps every page.
func WithMaxPages(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = Unbounded
		}
		o.maxPages = n
	}
}

// WithDefaultPage sets the size and background of pages created lazily on
// the first draw.
func WithDefaultPage(width, height float64, bg recording.Color) Option {
	return func(o *options) {
		o.width = width
		o.height = height
		o.bg = bg
	}
}

// WithLogger sets the logger for page lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
