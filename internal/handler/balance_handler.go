package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/ledger"
	"github.com/tallyhq/tally-backend/internal/service"
)

// BalanceHandler handles balance and settlement suggestion HTTP requests
type BalanceHandler struct {
	balanceService *service.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(balanceService *service.BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService}
}

// BalanceResponse represents one participant's net position
type BalanceResponse struct {
	ParticipantID  uuid.UUID `json:"participantId"`
	DisplayName    string    `json:"displayName"`
	TotalPaid      string    `json:"totalPaid"`
	TotalOwed      string    `json:"totalOwed"`
	NetSettlements string    `json:"netSettlements"`
	Net            string    `json:"net"`
}

// SuggestionResponse represents one proposed transfer
type SuggestionResponse struct {
	FromID   uuid.UUID `json:"fromId"`
	FromName string    `json:"fromName"`
	ToID     uuid.UUID `json:"toId"`
	ToName   string    `json:"toName"`
	Amount   string    `json:"amount"`
}

// GetBalances returns the group's balance snapshot
// @Summary Get balances
// @Description Per-participant paid, owed, settlement and net totals; the nets always sum to zero
// @Tags balances
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} BalanceResponse
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id}/balances [get]
func (h *BalanceHandler) GetBalances(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	balances, err := h.balanceService.GetBalances(groupID)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	responses := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		responses[i] = BalanceResponse{
			ParticipantID:  b.ParticipantID,
			DisplayName:    b.DisplayName,
			TotalPaid:      formatAmount(b.TotalPaid),
			TotalOwed:      formatAmount(b.TotalOwed),
			NetSettlements: formatAmount(b.NetSettlements),
			Net:            formatAmount(b.Net),
		}
	}
	return c.JSON(http.StatusOK, responses)
}

// GetSuggestions returns the simplified settlement plan
// @Summary Get settlement suggestions
// @Description Minimal set of transfers that zeroes every balance; at most participants-1 transfers
// @Tags balances
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} SuggestionResponse
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id}/balances/suggestions [get]
func (h *BalanceHandler) GetSuggestions(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	suggestions, err := h.balanceService.GetSuggestions(groupID)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	responses := make([]SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		responses[i] = SuggestionResponse{
			FromID:   s.FromID,
			FromName: s.FromName,
			ToID:     s.ToID,
			ToName:   s.ToName,
			Amount:   formatAmount(s.Amount),
		}
	}
	return c.JSON(http.StatusOK, responses)
}

func (h *BalanceHandler) handleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrGroupNotFound):
		return NewNotFoundError(c, "Group not found")
	case errors.Is(err, ledger.ErrUnknownParticipant), errors.Is(err, ledger.ErrUnbalancedLedger):
		// Stored data no longer satisfies the ledger invariants.
		log.Error().Err(err).Msg("Ledger integrity violation")
		return NewInternalError(c, "Ledger data is inconsistent")
	default:
		log.Error().Err(err).Msg("Balance computation failed")
		return NewInternalError(c, "Balance computation failed")
	}
}
