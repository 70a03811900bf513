package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/version"
)

var startTime = time.Now()

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	Go        string            `json:"go_version"`
	BuildInfo map[string]string `json:"build_info,omitempty"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Uptime:    time.Since(startTime).String(),
		Version:   version.GetVersion(),
		Go:        runtime.Version(),
		BuildInfo: version.GetBuildInfo(),
	})
}

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"pong"}`))
}
