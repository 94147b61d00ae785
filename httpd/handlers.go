package httpd

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gogpu/gglive"
	"github.com/gogpu/gglive/store"
)

type handlers struct {
	svc Service
}

// stateResponse is the public part of the device state; the token is never
// echoed back.
type stateResponse struct {
	Upid   uint64 `json:"upid"`
	HSize  int    `json:"hsize"`
	Active bool   `json:"active"`
}

type plotEntry struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
}

type plotsResponse struct {
	State stateResponse `json:"state"`
	Plots []plotEntry   `json:"plots"`
}

type changeResponse struct {
	Changed bool          `json:"changed"`
	State   stateResponse `json:"state"`
}

func newState(st gglive.State) stateResponse {
	return stateResponse{Upid: st.Upid, HSize: st.PageCount, Active: st.Active}
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newState(h.svc.State()))
}

func (h *handlers) plots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := intParam(q.Get("from"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	limit, err := intParam(q.Get("limit"), -1)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	pages, err := h.svc.ListPages(from, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := plotsResponse{
		State: newState(h.svc.State()),
		Plots: make([]plotEntry, 0, len(pages)),
	}
	for _, p := range pages {
		resp.Plots = append(resp.Plots, plotEntry{ID: strconv.FormatUint(p.ID, 10), Index: p.Index})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) plot(w http.ResponseWriter, r *http.Request) {
	sel, err := selector(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	q := r.URL.Query()
	width, err := sizeParam(q.Get("width"))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	height, err := sizeParam(q.Get("height"))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	svg, err := h.svc.Markup(sel, width, height)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(svg))
}

func (h *handlers) remove(w http.ResponseWriter, r *http.Request) {
	sel, err := selector(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	ok, err := h.svc.RemovePage(sel)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, changeResponse{Changed: ok, State: newState(h.svc.State())})
}

func (h *handlers) clear(w http.ResponseWriter, r *http.Request) {
	ok, err := h.svc.ClearPages()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, changeResponse{Changed: ok, State: newState(h.svc.State())})
}

// live streams the state as server-sent events: once on connect and again
// after every update. Updates coalesce, so a slow client skips
// intermediate states. The stream ends when the device closes.
func (h *handlers) live(w http.ResponseWriter, r *http.Request) {
	updates, cancel, err := h.svc.Subscribe()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer cancel()

	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	send := func() bool {
		data, err := json.Marshal(newState(h.svc.State()))
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(w, "event: state\ndata: %s\n\n", data); err != nil {
			return false
		}
		return rc.Flush() == nil
	}

	if !send() {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-updates:
			if !ok || !send() {
				return
			}
		}
	}
}

// selector reads the page selector from the id or index query parameter.
func selector(r *http.Request) (store.Selector, error) {
	q := r.URL.Query()
	if v := q.Get("id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return store.Selector{}, fmt.Errorf("invalid id %q", v)
		}
		return store.ID(id), nil
	}
	if v := q.Get("index"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return store.Selector{}, fmt.Errorf("invalid index %q", v)
		}
		return store.Index(i), nil
	}
	return store.Last, nil
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", v)
	}
	return n, nil
}

// sizeParam parses a render size. Non-finite sizes are invalid; missing,
// -1 and non-positive sizes keep the capture size.
func sizeParam(v string) (float64, error) {
	if v == "" {
		return -1, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid size %q", v)
	}
	if f <= 0 {
		return -1, nil
	}
	return f, nil
}
