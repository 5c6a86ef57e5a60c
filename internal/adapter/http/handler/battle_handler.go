package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/usecase"
)

// BattleHandler handles battle-related HTTP requests
type BattleHandler struct {
	battleUC usecase.BattleUsecase
}

// NewBattleHandler creates a new battle handler
func NewBattleHandler(battleUC usecase.BattleUsecase) *BattleHandler {
	return &BattleHandler{battleUC: battleUC}
}

// FinishBattle handles POST /api/v1/battles/:id/finish
func (h *BattleHandler) FinishBattle(c *gin.Context) {
	id, err := ExtractIDParam(c, "id")
	if err != nil {
		HandleInvalidID(c, "battle id")
		return
	}

	var input usecase.MarkFinishedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.battleUC.MarkFinished(c.Request.Context(), id, &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// FinalizeBattle handles POST /api/v1/battles/:id/finalize
func (h *BattleHandler) FinalizeBattle(c *gin.Context) {
	id, err := ExtractIDParam(c, "id")
	if err != nil {
		HandleInvalidID(c, "battle id")
		return
	}

	output, err := h.battleUC.FinalizeBattle(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// GetBattleResult handles GET /api/v1/battles/:id/result
func (h *BattleHandler) GetBattleResult(c *gin.Context) {
	id, err := ExtractIDParam(c, "id")
	if err != nil {
		HandleInvalidID(c, "battle id")
		return
	}

	output, err := h.battleUC.GetResult(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// CompareScores handles POST /api/v1/scoring/compare
func (h *BattleHandler) CompareScores(c *gin.Context) {
	var input usecase.CompareInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.battleUC.Compare(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}
