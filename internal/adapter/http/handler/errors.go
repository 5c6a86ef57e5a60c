package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/entity"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/repository"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/scoring"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/usecase"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapUsecaseError maps usecase and scoring errors to HTTP error responses.
func MapUsecaseError(err error) ErrorResponse {
	switch {
	case errors.Is(err, usecase.ErrBattleNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       "NOT_FOUND",
			Message:    "battle not found",
		}
	case errors.Is(err, repository.ErrPlanNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       "PLAN_NOT_FOUND",
			Message:    "plan not found",
		}
	case errors.Is(err, usecase.ErrBattleNotFinished):
		return ErrorResponse{
			StatusCode: http.StatusConflict,
			Code:       "CONFLICT",
			Message:    "battle not finished by both users",
		}
	case errors.Is(err, entity.ErrNotParticipant):
		return ErrorResponse{
			StatusCode: http.StatusForbidden,
			Code:       "FORBIDDEN",
			Message:    "user is not a battle participant",
		}
	case errors.Is(err, scoring.ErrUnsupportedPlanType):
		return ErrorResponse{
			StatusCode: http.StatusUnprocessableEntity,
			Code:       "UNSUPPORTED_PLAN_TYPE",
			Message:    "plan type cannot be scored",
		}
	case errors.Is(err, scoring.ErrUnknownPunchCode):
		return ErrorResponse{
			StatusCode: http.StatusUnprocessableEntity,
			Code:       "INVALID_PLAN",
			Message:    "plan contains an unknown punch code",
		}
	case errors.Is(err, usecase.ErrInvalidRequest):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    "invalid request",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INTERNAL_ERROR",
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError sends the HTTP response mapped from err. Unmapped errors
// are attached to the context so the request logger records them.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	if errResp.StatusCode == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandleInvalidID handles an invalid numeric id parameter.
func HandleInvalidID(c *gin.Context, paramName string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid "+paramName)
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", message)
}
