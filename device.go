package gglive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"strconv"
	"time"

	"github.com/gogpu/gglive/archive"
	"github.com/gogpu/gglive/bridge"
	"github.com/gogpu/gglive/cache"
	"github.com/gogpu/gglive/recording"
	"github.com/gogpu/gglive/recording/backends/svg"
	"github.com/gogpu/gglive/store"
	"github.com/gogpu/gglive/text"
)

const (
	archiveTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// State is the published state of a device.
type State struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Token     string `json:"token,omitempty"`
	PageCount int    `json:"hsize"`
	Upid      uint64 `json:"upid"`
	Active    bool   `json:"active"`
}

// Device is one live plot device: a store of pages drawn by a host
// goroutine and served to viewers.
//
// The service methods (ListPages, Markup, RemovePage, ClearPages, State,
// Subscribe) are safe for concurrent use from any goroutine. Drawing goes
// through the Host returned by Host, on the host goroutine only.
type Device struct {
	cfg Config
	log *slog.Logger

	store    *store.Store
	bridge   *bridge.Bridge
	resolver *text.Resolver
	markup   *cache.Markup
	svgOpts  []svg.Option
	variant  string

	transport  Transport
	archive    *archive.Archive
	ownArchive bool

	host *Host
}

// Start creates a device and starts its transport. It must be called on
// the goroutine that will draw, which becomes the host goroutine.
//
// If the transport cannot bind, Start releases everything it created and
// returns an error matching ErrResourceExhausted.
func Start(cfg Config, opts ...Option) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	d := &Device{
		cfg:       cfg,
		log:       o.logger,
		resolver:  o.resolver,
		markup:    cache.NewMarkup(cfg.CacheSize),
		transport: o.transport,
		archive:   o.archive,
	}
	d.store = store.New(
		store.WithMaxPages(cfg.MaxPages),
		store.WithDefaultPage(cfg.Width, cfg.Height, cfg.background()),
		store.WithLogger(d.log),
	)
	d.bridge = bridge.New(d.store, bridge.WithLogger(d.log))
	if d.resolver == nil {
		d.resolver = text.NewResolver(text.WithAliases(cfg.Aliases), text.WithLogger(d.log))
	}
	d.svgOpts = []svg.Option{
		svg.WithFixedText(cfg.FixedText),
		svg.WithMaxRasterPixels(cfg.MaxRasterPixels),
	}
	d.variant = fmt.Sprintf("fixed=%t,raster=%d", cfg.FixedText, cfg.MaxRasterPixels)
	d.host = newHost(d)

	if d.archive == nil && cfg.ArchivePath != "" {
		a, err := archive.Open(cfg.ArchivePath)
		if err != nil {
			d.abort()
			return nil, fmt.Errorf("gglive: %w", err)
		}
		d.archive, d.ownArchive = a, true
	}

	info := store.Info{Host: cfg.Host, Port: cfg.Port, Token: cfg.Token}
	if d.transport != nil {
		addr, err := d.transport.Start(d)
		if err != nil {
			d.abort()
			return nil, fmt.Errorf("gglive: listen on %s: %w: %w",
				net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)), ErrResourceExhausted, err)
		}
		if tcp, ok := addr.(*net.TCPAddr); ok {
			info.Port = tcp.Port
		}
	}
	d.store.SetInfo(info)

	if err := d.bridge.Transition(bridge.Running); err != nil {
		d.abort()
		return nil, err
	}
	d.log.Info("gglive: device started", "host", info.Host, "port", info.Port)
	return d, nil
}

// abort releases a device whose start failed.
func (d *Device) abort() {
	d.store.Close()
	_ = d.bridge.Transition(bridge.Closed)
	if d.ownArchive {
		_ = d.archive.Close()
	}
}

// Host returns the host callbacks of the device.
func (d *Device) Host() *Host {
	return d.host
}

// Config returns the configuration the device was started with.
func (d *Device) Config() Config {
	return d.cfg
}

// Loop idles the host goroutine, running host work queued by other
// goroutines, until ctx ends or the device closes. It returns nil once the
// device is closed.
func (d *Device) Loop(ctx context.Context) error {
	return d.bridge.Loop(ctx)
}

// Done returns a channel closed when the device is closed.
func (d *Device) Done() <-chan struct{} {
	return d.bridge.Done()
}

// ListPages returns up to limit pages starting at the 0-based offset from.
// A negative limit lists every page.
func (d *Device) ListPages(from, limit int) ([]store.PageInfo, error) {
	if !d.serving() {
		return nil, ErrInvalidState
	}
	var pages []store.PageInfo
	err := d.bridge.WithStoreLock(func(tx *store.Tx) error {
		pages = tx.List(from, limit)
		return nil
	})
	return pages, serviceError(err)
}

// Markup renders the page matched by sel at width x height. A width or
// height of -1 keeps the capture size on that axis. The page is copied
// under the store lock and rendered without it.
func (d *Device) Markup(sel store.Selector, width, height float64) (string, error) {
	if !d.serving() {
		return "", ErrInvalidState
	}
	var (
		info store.PageInfo
		page *recording.Page
	)
	err := d.bridge.WithStoreLock(func(tx *store.Tx) error {
		var err error
		if info, err = tx.Lookup(sel); err != nil {
			return err
		}
		page, err = tx.Get(store.ID(info.ID))
		return err
	})
	if err != nil {
		return "", serviceError(err)
	}

	width, height = renderSize(width), renderSize(height)
	key := cache.KeyFor(info.ID, page, width, height, d.variant)
	return d.markup.Render(key, func() string {
		return svg.Render(page, width, height, d.svgOpts...)
	}), nil
}

// RemovePage deletes the page matched by sel and reports whether one
// existed.
func (d *Device) RemovePage(sel store.Selector) (bool, error) {
	if !d.serving() {
		return false, ErrInvalidState
	}
	var id uint64
	err := d.bridge.WithStoreLock(func(tx *store.Tx) error {
		info, err := tx.Lookup(sel)
		if err != nil {
			return err
		}
		id = info.ID
		tx.Remove(store.ID(id))
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, serviceError(err)
	}
	d.markup.Forget(id)
	return true, nil
}

// ClearPages deletes every page and reports whether there were any.
func (d *Device) ClearPages() (bool, error) {
	if !d.serving() {
		return false, ErrInvalidState
	}
	var cleared bool
	err := d.bridge.WithStoreLock(func(tx *store.Tx) error {
		cleared = tx.Clear()
		return nil
	})
	if err != nil {
		return false, serviceError(err)
	}
	if cleared {
		d.markup.Clear()
	}
	return cleared, nil
}

// State returns the published device state. Active is false once the
// device is closing.
func (d *Device) State() State {
	var st State
	_ = d.store.Update(func(tx *store.Tx) error {
		info := tx.Info()
		st = State{
			Host:      info.Host,
			Port:      info.Port,
			Token:     info.Token,
			PageCount: tx.PageCount(),
			Upid:      tx.Upid(),
		}
		return nil
	})
	st.Active = d.serving()
	return st
}

// Subscribe returns a channel receiving the update counter whenever it
// changes. Notifications coalesce: a slow reader sees only the newest value.
// The channel is closed when the device closes or cancel is called.
func (d *Device) Subscribe() (<-chan uint64, func(), error) {
	if !d.serving() {
		return nil, func() {}, ErrInvalidState
	}
	ch, cancel := d.store.Subscribe()
	return ch, cancel, nil
}

// renderSize maps sizes that cannot be rendered to -1, the capture size.
func renderSize(v float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return -1
	}
	return v
}

// Close closes the device. It must be called on the host goroutine; other
// goroutines use Shutdown. The live page is finalized, every page is
// archived if an archive is configured, viewers are disconnected and the
// store is released. Closing a closed device does nothing.
func (d *Device) Close() error {
	// Work queued before the close still runs.
	d.bridge.Tick()
	if d.bridge.Transition(bridge.Closing) != nil {
		// Already closing or closed.
		return nil
	}

	var snaps []store.Snapshot
	_ = d.store.Update(func(tx *store.Tx) error {
		tx.Finalize()
		if d.archive != nil {
			snaps = tx.Snapshots()
		}
		return nil
	})

	var errs []error
	if d.archive != nil {
		if err := d.archivePages(snaps); err != nil {
			d.log.Warn("gglive: archive failed", "err", err)
			errs = append(errs, err)
		}
	}

	d.store.Close()
	if d.transport != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := d.transport.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("gglive: transport shutdown: %w", err))
		}
		cancel()
	}
	d.markup.Clear()

	if err := d.bridge.Transition(bridge.Closed); err != nil {
		errs = append(errs, err)
	}
	if d.ownArchive {
		if err := d.archive.Close(); err != nil {
			errs = append(errs, fmt.Errorf("gglive: close archive: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Shutdown closes the device from any goroutine but the host: the close
// runs on the host goroutine the next time it ticks or idles in Loop.
func (d *Device) Shutdown(ctx context.Context) error {
	if !d.serving() {
		return nil
	}
	var closeErr error
	err := d.bridge.RunOnHost(ctx, func() { closeErr = d.Close() })
	if errors.Is(err, bridge.ErrClosed) {
		return nil
	}
	if err != nil {
		return err
	}
	return closeErr
}

func (d *Device) archivePages(snaps []store.Snapshot) error {
	pages := make([]archive.Page, 0, len(snaps))
	for _, s := range snaps {
		pages = append(pages, archive.Page{
			ID:     s.ID,
			Index:  s.Index,
			Width:  s.Page.Width(),
			Height: s.Page.Height(),
			SVG:    svg.Render(s.Page, -1, -1, d.svgOpts...),
		})
	}
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()

	session := archive.NewSession()
	if err := d.archive.SavePages(ctx, session, pages); err != nil {
		return err
	}
	d.log.Info("gglive: pages archived", "session", session, "pages", len(pages))
	return nil
}

// serving reports whether the device still accepts viewer requests.
func (d *Device) serving() bool {
	return d.bridge.State() < bridge.Closing
}
