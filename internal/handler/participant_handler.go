package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/service"
)

// ParticipantHandler handles participant HTTP requests
type ParticipantHandler struct {
	participantService *service.ParticipantService
}

// NewParticipantHandler creates a new ParticipantHandler
func NewParticipantHandler(participantService *service.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

// ParticipantRequest represents the JSON request for adding or updating a
// participant
type ParticipantRequest struct {
	DisplayName string `json:"displayName"`
	// Weight for weighted splits, decimal string, defaults to "1".
	Weight *string `json:"weight"`
	// PercentShare for percentage splits, decimal string 0-100.
	PercentShare *string `json:"percentShare"`
}

// ParticipantResponse represents the JSON response for a participant
type ParticipantResponse struct {
	ID           uuid.UUID `json:"id"`
	GroupID      uuid.UUID `json:"groupId"`
	DisplayName  string    `json:"displayName"`
	Weight       string    `json:"weight"`
	PercentShare *string   `json:"percentShare,omitempty"`
	JoinedAt     string    `json:"joinedAt"`
}

func toParticipantResponse(p *domain.Participant) ParticipantResponse {
	resp := ParticipantResponse{
		ID:          p.ID,
		GroupID:     p.GroupID,
		DisplayName: p.DisplayName,
		Weight:      p.Weight.String(),
		JoinedAt:    p.JoinedAt.Format(time.RFC3339),
	}
	if p.PercentShare != nil {
		share := p.PercentShare.String()
		resp.PercentShare = &share
	}
	return resp
}

func (r *ParticipantRequest) decimals() (weight, percentShare *decimal.Decimal, err error) {
	if r.Weight != nil {
		w, err := decimal.NewFromString(*r.Weight)
		if err != nil {
			return nil, nil, errors.New("invalid weight")
		}
		weight = &w
	}
	if r.PercentShare != nil {
		p, err := decimal.NewFromString(*r.PercentShare)
		if err != nil {
			return nil, nil, errors.New("invalid percent share")
		}
		percentShare = &p
	}
	return weight, percentShare, nil
}

// AddParticipant adds a participant to a group
// @Summary Add participant
// @Tags participants
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body ParticipantRequest true "Participant"
// @Success 201 {object} ParticipantResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id}/participants [post]
func (h *ParticipantHandler) AddParticipant(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	var req ParticipantRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	weight, percentShare, err := req.decimals()
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	participant, err := h.participantService.AddParticipant(groupID, req.DisplayName, weight, percentShare)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toParticipantResponse(participant))
}

// ListParticipants lists a group's participants in join order
// @Summary List participants
// @Tags participants
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} ParticipantResponse
// @Failure 404 {object} ProblemDetails
// @Router /groups/{id}/participants [get]
func (h *ParticipantHandler) ListParticipants(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID", nil)
	}

	participants, err := h.participantService.ListParticipants(groupID)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	responses := make([]ParticipantResponse, len(participants))
	for i, p := range participants {
		responses[i] = toParticipantResponse(p)
	}
	return c.JSON(http.StatusOK, responses)
}

// UpdateParticipant updates a participant's display name, weight and percent
// share
// @Summary Update participant
// @Tags participants
// @Accept json
// @Produce json
// @Param id path string true "Participant ID"
// @Param request body ParticipantRequest true "Participant"
// @Success 200 {object} ParticipantResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /participants/{id} [put]
func (h *ParticipantHandler) UpdateParticipant(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid participant ID", nil)
	}

	var req ParticipantRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	weight, percentShare, err := req.decimals()
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	participant, err := h.participantService.UpdateParticipant(id, req.DisplayName, weight, percentShare)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toParticipantResponse(participant))
}

// RemoveParticipant removes a participant that has no recorded activity
// @Summary Remove participant
// @Tags participants
// @Param id path string true "Participant ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /participants/{id} [delete]
func (h *ParticipantHandler) RemoveParticipant(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid participant ID", nil)
	}

	if err := h.participantService.RemoveParticipant(id); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ParticipantHandler) handleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrGroupNotFound):
		return NewNotFoundError(c, "Group not found")
	case errors.Is(err, domain.ErrParticipantNotFound):
		return NewNotFoundError(c, "Participant not found")
	case errors.Is(err, domain.ErrParticipantInUse):
		return NewConflictError(c, "Participant is referenced by expenses or settlements")
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Display name is required", nil)
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Display name is too long", nil)
	case errors.Is(err, domain.ErrInvalidWeight):
		return NewValidationError(c, "Weight must be positive", nil)
	case errors.Is(err, domain.ErrInvalidPercent):
		return NewValidationError(c, "Percent share must be between 0 and 100", nil)
	default:
		log.Error().Err(err).Msg("Participant operation failed")
		return NewInternalError(c, "Participant operation failed")
	}
}
