package handlers

import (
	"net/http"
	"runtime"
	"time"

	"investmenttracker/internal/api/response"
)

// Version is the application version reported by the version endpoint.
// Overridable at build time via -ldflags "-X ...handlers.Version=".
var Version = "dev"

// SystemHandler handles system-related HTTP requests
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// VersionResponse represents the version endpoint response
type VersionResponse struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

// Health reports process liveness. Upstream collaborators are not probed
// here; a dead market-data source degrades results, it does not make the
// process unhealthy.
//
// Endpoint: GET /api/system/health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Version reports build information.
//
// Endpoint: GET /api/system/version
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, VersionResponse{
		Version:   Version,
		GoVersion: runtime.Version(),
	})
}
