package rest

import (
	"context"
	"net/http"
	"sort"
	"time"
)

const probeTimeout = 3 * time.Second

// Checker reports whether a dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	version    string
	components map[string]Checker
}

// NewHealthHandler creates a HealthHandler probing the given components,
// typically "database" and "storage".
func NewHealthHandler(version string, components map[string]Checker) *HealthHandler {
	return &HealthHandler{version: version, components: components}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 when every component answers, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.probe(r.Context())
	writeJSON(w, httpStatus(status), HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
	})
}

// Health is the full health check with per-component latency and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, components := h.probe(r.Context())
	writeJSON(w, httpStatus(status), HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) probe(ctx context.Context) (string, map[string]CompStatus) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	names := make([]string, 0, len(h.components))
	for name := range h.components {
		names = append(names, name)
	}
	sort.Strings(names)

	overall := "ok"
	out := make(map[string]CompStatus, len(names))
	for _, name := range names {
		start := time.Now()
		if err := h.components[name].Ping(ctx); err != nil {
			out[name] = CompStatus{Status: "down"}
			overall = "down"
			continue
		}
		out[name] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}
	return overall, out
}

func httpStatus(overall string) int {
	if overall != "ok" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
