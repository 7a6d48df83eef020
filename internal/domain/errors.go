package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInternalError       = errors.New("internal error")
	ErrGroupNotFound       = errors.New("group not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrSettlementNotFound  = errors.New("settlement not found")
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrParticipantInUse    = errors.New("participant is referenced by expenses or settlements")
	ErrCategoryInUse       = errors.New("category is referenced by expenses")
	ErrSelfSettlement      = errors.New("settlement payer and receiver must differ")
	ErrChargeNotConfigured = errors.New("group has no recurring charge configured")
	ErrInvalidWeight       = errors.New("weight must be positive")
	ErrInvalidPercent      = errors.New("percent share must be between 0 and 100")
	ErrInvalidPeriodKey    = errors.New("invalid period key")
)

// Validation constants
const (
	MaxGroupNameLength       = 255
	MaxParticipantNameLength = 255
	MaxCategoryNameLength    = 255
	MaxDescriptionLength     = 500
)
