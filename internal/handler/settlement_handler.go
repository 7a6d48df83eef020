package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/service"
)

// SettlementHandler handles settlement HTTP requests
type SettlementHandler struct {
	settlementService *service.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(settlementService *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// SettlementRequest represents the JSON request for recording a settlement
type SettlementRequest struct {
	FromID uuid.UUID `json:"fromId"`
	ToID   uuid.UUID `json:"toId"`
	Amount string    `json:"amount"`
	// OccurredAt is a date, "2026-09-15". Defaults to today.
	OccurredAt string  `json:"occurredAt"`
	Note       *string `json:"note"`
}

// SettlementResponse represents the JSON response for a settlement
type SettlementResponse struct {
	ID         uuid.UUID `json:"id"`
	GroupID    uuid.UUID `json:"groupId"`
	FromID     uuid.UUID `json:"fromId"`
	ToID       uuid.UUID `json:"toId"`
	Amount     string    `json:"amount"`
	OccurredAt string    `json:"occurredAt"`
	Note       *string   `json:"note,omitempty"`
	CreatedAt  string    `json:"createdAt"`
}

func toSettlementResponse(settlement *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		ID:         settlement.ID,
		GroupID:    settlement.GroupID,
		FromID:     settlement.FromID,
		ToID:       settlement.ToID,
		Amount:     formatAmount(settlement.Amount),
		OccurredAt: settlement.OccurredAt.Format(dateLayout),
		Note:       settlement.Note,
		CreatedAt:  settlement.CreatedAt.Format(time.RFC3339),
	}
}

// RecordSettlement records a real-world payment between participants
// @Summary Record settlement
// @Description Records money that moved outside the ledger to reduce a debt
// @Tags settlements
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body SettlementRequest true "Settlement"
// @Success 201 {object} SettlementResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id}/settlements [post]
func (h *SettlementHandler) RecordSettlement(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	var req SettlementRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	var occurredAt time.Time
	if req.OccurredAt != "" {
		occurredAt, err = time.Parse(dateLayout, req.OccurredAt)
		if err != nil {
			return NewValidationError(c, "Invalid occurredAt date", nil)
		}
	}

	settlement, err := h.settlementService.RecordSettlement(groupID, req.FromID, req.ToID, amount, occurredAt, req.Note)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toSettlementResponse(settlement))
}

// ListSettlements lists a group's settlements
// @Summary List settlements
// @Tags settlements
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} SettlementResponse
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id}/settlements [get]
func (h *SettlementHandler) ListSettlements(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	settlements, err := h.settlementService.ListSettlements(groupID)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	responses := make([]SettlementResponse, len(settlements))
	for i, settlement := range settlements {
		responses[i] = toSettlementResponse(settlement)
	}
	return c.JSON(http.StatusOK, responses)
}

// DeleteSettlement deletes a recorded settlement
// @Summary Delete settlement
// @Tags settlements
// @Param id path string true "Settlement ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /settlements/{id} [delete]
func (h *SettlementHandler) DeleteSettlement(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid settlement ID", nil)
	}

	if err := h.settlementService.DeleteSettlement(id); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *SettlementHandler) handleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrGroupNotFound):
		return NewNotFoundError(c, "Group not found")
	case errors.Is(err, domain.ErrParticipantNotFound):
		return NewNotFoundError(c, "Participant not found")
	case errors.Is(err, domain.ErrSettlementNotFound):
		return NewNotFoundError(c, "Settlement not found")
	case errors.Is(err, domain.ErrSelfSettlement):
		return NewValidationError(c, "A participant cannot settle with themselves", nil)
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Amount must be positive", nil)
	default:
		log.Error().Err(err).Msg("Settlement operation failed")
		return NewInternalError(c, "Settlement operation failed")
	}
}
