package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskboard/backend/api/transport"
	"github.com/taskboard/backend/internal/infrastructure/monitor"
	"github.com/taskboard/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

type healthBuffer struct {
	Online bool `json:"online"`
	Size   int  `json:"size"`
}

type healthServices struct {
	PostgreSQL bool         `json:"postgresql"`
	Redis      bool         `json:"redis"`
	Buffer     healthBuffer `json:"buffer"`
}

type healthReport struct {
	Timestamp time.Time      `json:"timestamp"`
	Services  healthServices `json:"services"`
}

// Check reports dependency availability. The endpoint answers 200 only when
// both primary stores are reachable; a degraded stack returns 503 with the
// same payload so probes can still see which piece is down.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	report := healthReport{
		Timestamp: time.Now().UTC(),
		Services: healthServices{
			PostgreSQL: status.PostgreSQL,
			Redis:      status.Redis,
			Buffer: healthBuffer{
				Online: status.Buffer,
				Size:   status.BufferSize,
			},
		},
	}

	if status.PostgreSQL && status.Redis {
		h.respondSuccess(ctx, http.StatusOK, report)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "dependencies unhealthy", report))
}
