package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printshop/backend/internal/interfaces/http/dto"
)

// SystemHandler handles health and system info endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	pinger    func() error
}

// NewSystemHandler creates a new SystemHandler. The pinger reports
// database reachability and may be nil.
func NewSystemHandler(pinger func() error) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		pinger:    pinger,
	}
}

// HealthResponse reports service and database status
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health returns 200 when the service and its database are reachable
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	if h.pinger != nil {
		if err := h.pinger(); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(resp))
			return
		}
	}

	h.Success(c, resp)
}
