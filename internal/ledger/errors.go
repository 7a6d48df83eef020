package ledger

import "errors"

// Engine errors. These indicate corrupted or inconsistent input, never a
// transient condition; the engine does not retry or return partial results.
var (
	// ErrInvalidSplit: zero weight/percentage mass, percentages not summing
	// to 100, or an otherwise unusable split request.
	ErrInvalidSplit = errors.New("invalid split")
	// ErrShareMismatch: manually supplied shares are negative or do not sum
	// to the expense total.
	ErrShareMismatch = errors.New("share mismatch")
	// ErrUnknownParticipant: an expense, share, or settlement references a
	// participant not present in the supplied participant set.
	ErrUnknownParticipant = errors.New("unknown participant")
	// ErrUnbalancedLedger: balances handed to Simplify do not sum to zero.
	ErrUnbalancedLedger = errors.New("unbalanced ledger")
)
