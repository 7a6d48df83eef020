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
	"github.com/tallyhq/tally-backend/internal/util"
)

// ChargeHandler handles recurring charge debt HTTP requests
type ChargeHandler struct {
	chargeService *service.ChargeService
}

// NewChargeHandler creates a new ChargeHandler
func NewChargeHandler(chargeService *service.ChargeService) *ChargeHandler {
	return &ChargeHandler{chargeService: chargeService}
}

// ChargeDebtRecordResponse represents one participant's arrears
type ChargeDebtRecordResponse struct {
	ParticipantID   uuid.UUID `json:"participantId"`
	DisplayName     string    `json:"displayName"`
	RequiredPeriods int       `json:"requiredPeriods"`
	UnpaidPeriods   int       `json:"unpaidPeriods"`
	DebtAmount      string    `json:"debtAmount"`
}

// ChargeDebtResponse represents the group's recurring charge arrears report
type ChargeDebtResponse struct {
	ChargePerPeriod string                     `json:"chargePerPeriod"`
	PeriodKeys      []string                   `json:"periodKeys"`
	Records         []ChargeDebtRecordResponse `json:"records"`
}

// GetDebts reports recurring charge debt over a period range
// @Summary Get recurring charge debts
// @Description Per participant, how many periods in the range went unpaid and the resulting debt
// @Tags charges
// @Produce json
// @Param id path string true "Group ID"
// @Param from query string true "First period, YYYY-MM"
// @Param to query string false "Last period (inclusive), YYYY-MM; defaults to the previous month"
// @Success 200 {object} ChargeDebtResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /groups/{id}/charges/debts [get]
func (h *ChargeHandler) GetDebts(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	fromYear, fromMonth, err := util.ParseMonthKey(c.QueryParam("from"))
	if err != nil {
		return NewValidationError(c, "Invalid from period, expected YYYY-MM", nil)
	}

	// When "to" is omitted the range ends at the last fully elapsed month;
	// the current month is not due yet.
	var toYear, toMonth int
	if raw := c.QueryParam("to"); raw != "" {
		toYear, toMonth, err = util.ParseMonthKey(raw)
		if err != nil {
			return NewValidationError(c, "Invalid to period, expected YYYY-MM", nil)
		}
	} else {
		now := time.Now().UTC()
		toYear, toMonth = util.PreviousMonth(now.Year(), int(now.Month()))
	}

	report, err := h.chargeService.ComputeDebts(groupID, fromYear, fromMonth, toYear, toMonth)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	resp := ChargeDebtResponse{
		ChargePerPeriod: formatAmount(report.ChargePerPeriod),
		PeriodKeys:      report.PeriodKeys,
		Records:         make([]ChargeDebtRecordResponse, len(report.Records)),
	}
	for i, record := range report.Records {
		resp.Records[i] = ChargeDebtRecordResponse{
			ParticipantID:   record.ParticipantID,
			DisplayName:     record.DisplayName,
			RequiredPeriods: record.RequiredPeriods,
			UnpaidPeriods:   record.UnpaidPeriods,
			DebtAmount:      formatAmount(record.DebtAmount),
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ChargeHandler) handleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrGroupNotFound):
		return NewNotFoundError(c, "Group not found")
	case errors.Is(err, domain.ErrChargeNotConfigured):
		return NewConflictError(c, "Group has no recurring charge configured")
	default:
		log.Error().Err(err).Msg("Charge debt computation failed")
		return NewInternalError(c, "Charge debt computation failed")
	}
}
