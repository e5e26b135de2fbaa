package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spanapp/span-backend/internal/usecase/signal"
)

type SignalHandler struct {
	signalUseCase *signal.SignalUseCase
}

func NewSignalHandler(signalUseCase *signal.SignalUseCase) *SignalHandler {
	return &SignalHandler{signalUseCase: signalUseCase}
}

// Record handles POST /signals
// @Summary Record an interaction signal
// @Description Fold one like/pass interaction into the behavioral ledger
// @Tags signals
// @Accept json
// @Produce json
// @Param request body signal.RecordRequest true "Interaction signal"
// @Success 201 {object} signal.RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /signals [post]
func (h *SignalHandler) Record(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req signal.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.signalUseCase.Record(c.Request.Context(), uid, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to record signal"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Stats handles GET /signals/stats
// @Summary Today's session stats
// @Tags signals
// @Produce json
// @Success 200 {object} matching.SessionStats
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /signals/stats [get]
func (h *SignalHandler) Stats(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	stats, err := h.signalUseCase.Stats(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Reset handles DELETE /signals
// @Summary Reset behavioral history
// @Description Drop all recorded signals and the derived ledger
// @Tags signals
// @Produce json
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /signals [delete]
func (h *SignalHandler) Reset(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.signalUseCase.Reset(c.Request.Context(), uid); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to reset signals"})
		return
	}

	c.Status(http.StatusNoContent)
}
