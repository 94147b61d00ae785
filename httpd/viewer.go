package httpd

import (
	_ "embed"
	"net/http"
)

//go:embed www/index.html
var viewerHTML string

// viewer serves the live viewer page. It follows /live and reloads the
// shown page from /plot at the size of the browser window.
func (h *handlers) viewer(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(viewerHTML))
}
