package pprof

import (
	"expvar"
	"net/http"
	"net/http/pprof"
	"strings"
)

type Handler struct {
	mux *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// NewHandler exposes the runtime profiles and the expvar variables under
// the given prefix.
func NewHandler(prefix string) *Handler {
	prefix = strings.TrimSuffix(prefix, "/")

	mux := &http.ServeMux{}

	routes := map[string]http.Handler{
		"GET /{$}":     http.HandlerFunc(pprof.Index),
		"GET /cmdline": http.HandlerFunc(pprof.Cmdline),
		"GET /profile": http.HandlerFunc(pprof.Profile),
		"GET /symbol":  http.HandlerFunc(pprof.Symbol),
		"POST /symbol": http.HandlerFunc(pprof.Symbol),
		"GET /trace":   http.HandlerFunc(pprof.Trace),
		"GET /vars":    expvar.Handler(),
		"GET /{name}": http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pprof.Handler(r.PathValue("name")).ServeHTTP(w, r)
		}),
	}

	for pattern, handler := range routes {
		method, route, _ := strings.Cut(pattern, " ")
		mux.Handle(method+" "+prefix+route, handler)
	}

	return &Handler{mux}
}

var _ http.Handler = &Handler{}
