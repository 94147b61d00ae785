package gglive

import (
	"context"
	"log/slog"
	"net"

	"github.com/gogpu/gglive/archive"
	"github.com/gogpu/gglive/text"
)

// Transport serves a device to remote viewers.
type Transport interface {
	// Start binds the transport and begins serving d without blocking.
	// It returns the bound address.
	Start(d *Device) (net.Addr, error)
	// Shutdown stops serving. Start is not called again afterwards.
	Shutdown(ctx context.Context) error
}

// Option configures a Device.
//
// Example:
//
//	d, err := gglive.Start(cfg,
//	    gglive.WithTransport(httpd.New(cfg)),
//	    gglive.WithLogger(logger),
//	)
type Option func(*options)

type options struct {
	transport Transport
	logger    *slog.Logger
	resolver  *text.Resolver
	archive   *archive.Archive
}

func defaultOptions() options {
	return options{logger: Logger()}
}

// WithTransport serves the device through t. Without a transport the device
// only records; its service API stays available in process.
func WithTransport(t Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithLogger sets the device logger. It defaults to Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithResolver sets the font resolver used to measure text. By default the
// device builds one from Config.Aliases.
func WithResolver(r *text.Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithArchive archives pages to a, which stays owned by the caller. It
// takes precedence over Config.ArchivePath.
func WithArchive(a *archive.Archive) Option {
	return func(o *options) {
		o.archive = a
	}
}
