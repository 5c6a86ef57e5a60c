package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/usecase"
)

// StatsHandler handles user statistics requests
type StatsHandler struct {
	statsUC usecase.StatsUsecase
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsUC usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{statsUC: statsUC}
}

// GetBattleStats handles GET /api/v1/users/:id/battle-stats
func (h *StatsHandler) GetBattleStats(c *gin.Context) {
	id, err := ExtractIDParam(c, "id")
	if err != nil {
		HandleInvalidID(c, "user id")
		return
	}

	stats, err := h.statsUC.GetUserStats(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, stats)
}

// GetAccuracy handles GET /api/v1/users/:id/accuracy
func (h *StatsHandler) GetAccuracy(c *gin.Context) {
	id, err := ExtractIDParam(c, "id")
	if err != nil {
		HandleInvalidID(c, "user id")
		return
	}

	since, err := ParseSince(c)
	if err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.statsUC.GetAccuracy(c.Request.Context(), id, since)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}
