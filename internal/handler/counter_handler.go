package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pagehits/counthub/internal/metrics"
	"pagehits/counthub/internal/service"
	"pagehits/counthub/pkg/response"
)

type CounterHandler struct {
	counterService service.CounterService
}

func NewCounterHandler(counterService service.CounterService) *CounterHandler {
	return &CounterHandler{counterService: counterService}
}

// Get handles GET /counter?counterName=<name>, creating the row if absent.
func (h *CounterHandler) Get(c *gin.Context) {
	metrics.Requests.WithLabelValues("get").Inc()

	counter, err := h.counterService.Get(c.Request.Context(), c.Query("counterName"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, counter)
}

type UpdateCounterRequest struct {
	Action      string `json:"action" binding:"required"`
	CounterName string `json:"counterName" binding:"required"`
}

// Update handles POST /counter with {action, counterName}.
func (h *CounterHandler) Update(c *gin.Context) {
	var req UpdateCounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RequestErrors.WithLabelValues("invalid_argument").Inc()
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	metrics.Requests.WithLabelValues(operationLabel(req.Action)).Inc()

	counter, err := h.counterService.Update(c.Request.Context(), req.CounterName, req.Action)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, counter)
}

// operationLabel buckets request actions into a fixed label set; the
// action string comes from the request body and must not mint
// unbounded metric children.
func operationLabel(action string) string {
	switch action {
	case service.ActionIncrement, service.ActionReset:
		return action
	default:
		return "unknown"
	}
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		metrics.RequestErrors.WithLabelValues("invalid_argument").Inc()
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUnsupportedOperation):
		metrics.RequestErrors.WithLabelValues("unsupported_operation").Inc()
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrStoreUnavailable):
		metrics.RequestErrors.WithLabelValues("store_unavailable").Inc()
		response.InternalError(c, "counter store unavailable")
	default:
		metrics.RequestErrors.WithLabelValues("store_unavailable").Inc()
		response.InternalError(c, "counter operation failed")
	}
}
