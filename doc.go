// Package gglive is a live plot device: a graphics host draws pages on one
// goroutine while any number of viewers fetch them, concurrently, as SVG.
//
// # Overview
//
// A Device owns a versioned page store, the sync bridge that coordinates
// the host goroutine with viewer goroutines, a font resolver for text
// metrics and a cache of rendered markup. The host draws through the
// Callbacks of Device.Host; viewers use the service methods directly or
// through a Transport such as the httpd package.
//
//	d, err := gglive.Start(gglive.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	h := d.Host()
//	gc := h.GC()
//	_ = h.NewPage(gc)
//	_ = h.Rect(gc, 10, 10, 100, 50)
//
//	svg, _ := d.Markup(store.Last, -1, -1)
//
// # Threads
//
// Start must be called on the host goroutine, which then makes every
// Callbacks call. Entering a callback from a second goroutine while one is
// running panics with ErrHostCallbackViolation. Viewers never block the
// host: they copy a page snapshot under the store lock and render it
// after releasing the lock.
//
// Work that must run on the host, such as closing the device, is queued by
// Device.Shutdown and runs when the host next returns from a callback or
// while it idles in Device.Loop.
//
// # Logging
//
// gglive is silent by default. SetLogger enables logging for devices
// started afterwards.
package gglive
