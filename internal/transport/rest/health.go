package rest

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to the pinger used by HealthHandler.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// catalogSet reports the configured languages and whether each one currently
// has a loaded catalog.
type catalogSet interface {
	Langs() []string
	Has(lang string) bool
}

// HealthHandler serves the liveness, readiness and health probes.
type HealthHandler struct {
	db       dbPinger
	catalogs catalogSet
	version  string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, catalogs catalogSet, version string) *HealthHandler {
	return &HealthHandler{db: db, catalogs: catalogs, version: version}
}

// Register mounts the probes on mux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /live", h.Live)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /health", h.Health)
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

const (
	statusOK   = "ok"
	statusDown = "down"
)

// Live always answers 200 while the process serves requests.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: time.Now()})
}

// Ready answers 200 when the retention store responds and at least one
// catalog is loaded, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, up := h.probe(r.Context())
	writeProbe(w, HealthResponse{Status: overall(up), Timestamp: time.Now()}, up)
}

// Health reports every component with store latency and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components, up := h.probe(r.Context())
	writeProbe(w, HealthResponse{
		Status:     overall(up),
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	}, up)
}

// probe checks the store and the catalogs. up is false if any component is
// down.
func (h *HealthHandler) probe(ctx context.Context) (components map[string]CompStatus, up bool) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	components = make(map[string]CompStatus)
	up = true

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		components["database"] = CompStatus{Status: statusDown}
		up = false
	} else {
		components["database"] = CompStatus{Status: statusOK, Latency: time.Since(start).String()}
	}

	langs := h.catalogs.Langs()
	if len(langs) == 0 {
		components["content"] = CompStatus{Status: statusDown}
		up = false
	}
	for _, lang := range langs {
		if !h.catalogs.Has(lang) {
			components["content:"+lang] = CompStatus{Status: statusDown}
			up = false
			continue
		}
		components["content:"+lang] = CompStatus{Status: statusOK}
	}

	return components, up
}

func overall(up bool) string {
	if up {
		return statusOK
	}
	return statusDown
}

func writeProbe(w http.ResponseWriter, resp HealthResponse, up bool) {
	status := http.StatusOK
	if !up {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
