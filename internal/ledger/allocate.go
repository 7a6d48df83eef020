package ledger

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitPolicy selects how an expense total is divided across participants.
// It is a sealed sum type: exactly one of EqualSplit, WeightedSplit,
// PercentageSplit or ManualSplit.
type SplitPolicy interface {
	splitPolicy()
}

// EqualSplit divides the total evenly, distributing the remainder one minor
// unit at a time to the first participants in input order.
type EqualSplit struct{}

// WeightedSplit divides the total proportionally to participant weights
// using the largest-remainder method.
type WeightedSplit struct{}

// PercentageSplit is WeightedSplit with participant percent shares as
// weights; the percents must sum to exactly 100.
type PercentageSplit struct{}

// ManualSplit carries explicit per-participant amounts supplied by the
// caller. They must be non-negative and sum exactly to the total.
type ManualSplit struct {
	Amounts map[uuid.UUID]int64
}

func (EqualSplit) splitPolicy()      {}
func (WeightedSplit) splitPolicy()   {}
func (PercentageSplit) splitPolicy() {}
func (ManualSplit) splitPolicy()     {}

// Allocate computes each participant's owed share of total under the given
// policy. The returned shares always sum exactly to total. The order of the
// participants slice is the stable tie-break order for remainder
// distribution, so callers must pass a deterministic ordering.
func Allocate(total int64, participants []ShareParticipant, policy SplitPolicy) ([]Share, error) {
	if total < 0 {
		return nil, fmt.Errorf("%w: total must be non-negative, got %d", ErrInvalidSplit, total)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", ErrInvalidSplit)
	}

	switch p := policy.(type) {
	case EqualSplit:
		return allocateEqual(total, participants), nil
	case WeightedSplit:
		weights := make([]decimal.Decimal, len(participants))
		for i, sp := range participants {
			weights[i] = sp.Weight
		}
		return allocateByWeights(total, participants, weights)
	case PercentageSplit:
		weights := make([]decimal.Decimal, len(participants))
		sum := decimal.Zero
		for i, sp := range participants {
			weights[i] = sp.Percent
			sum = sum.Add(sp.Percent)
		}
		// Percentages must be exact: no epsilon.
		if !sum.Equal(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: percentages sum to %s, want 100", ErrInvalidSplit, sum)
		}
		return allocateByWeights(total, participants, weights)
	case ManualSplit:
		return allocateManual(total, participants, p.Amounts)
	default:
		return nil, fmt.Errorf("%w: unknown split policy %T", ErrInvalidSplit, policy)
	}
}

// allocateEqual gives floor(total/n) to everyone and one extra minor unit to
// the first total%n participants, so per-participant differences never
// exceed one minor unit.
func allocateEqual(total int64, participants []ShareParticipant) []Share {
	n := int64(len(participants))
	base := total / n
	remainder := total % n

	shares := make([]Share, len(participants))
	for i, sp := range participants {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		shares[i] = Share{ParticipantID: sp.ID, Amount: amount}
	}
	return shares
}

// allocateByWeights implements the largest-remainder method over exact
// rational arithmetic: each raw share is floor(total*w_i/W), and the
// leftover minor units go to the participants with the largest fractional
// remainders, ties broken by input order.
func allocateByWeights(total int64, participants []ShareParticipant, weights []decimal.Decimal) ([]Share, error) {
	// Scale all weights to a common integer basis so the arithmetic stays
	// exact. Weights are decimals, so shifting by the largest fractional
	// exponent makes every one of them integral.
	var shift int32
	for _, w := range weights {
		if w.Sign() < 0 {
			return nil, fmt.Errorf("%w: negative weight %s", ErrInvalidSplit, w)
		}
		if e := -w.Exponent(); e > shift {
			shift = e
		}
	}

	intWeights := make([]*big.Int, len(weights))
	weightSum := new(big.Int)
	for i, w := range weights {
		intWeights[i] = w.Shift(shift).BigInt()
		weightSum.Add(weightSum, intWeights[i])
	}
	if weightSum.Sign() <= 0 {
		return nil, fmt.Errorf("%w: total weight mass is zero", ErrInvalidSplit)
	}

	totalBig := big.NewInt(total)
	shares := make([]Share, len(participants))
	remainders := make([]*big.Int, len(participants))
	var allocated int64
	for i, sp := range participants {
		product := new(big.Int).Mul(totalBig, intWeights[i])
		quo, rem := new(big.Int).QuoRem(product, weightSum, new(big.Int))
		shares[i] = Share{ParticipantID: sp.ID, Amount: quo.Int64()}
		remainders[i] = rem
		allocated += shares[i].Amount
	}

	// Flooring loses at most n-1 minor units; hand them back largest
	// fractional remainder first, input order on ties.
	leftover := total - allocated
	if leftover > 0 {
		order := make([]int, len(participants))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return remainders[order[a]].Cmp(remainders[order[b]]) > 0
		})
		for k := int64(0); k < leftover; k++ {
			shares[order[k]].Amount++
		}
	}

	return shares, nil
}

// allocateManual validates caller-supplied amounts: one per participant,
// non-negative, summing exactly to the total.
func allocateManual(total int64, participants []ShareParticipant, amounts map[uuid.UUID]int64) ([]Share, error) {
	known := make(map[uuid.UUID]struct{}, len(participants))
	for _, sp := range participants {
		known[sp.ID] = struct{}{}
	}
	for id := range amounts {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: manual amount for participant %s not in split", ErrUnknownParticipant, id)
		}
	}

	shares := make([]Share, len(participants))
	var sum int64
	for i, sp := range participants {
		amount, ok := amounts[sp.ID]
		if !ok {
			return nil, fmt.Errorf("%w: missing manual amount for participant %s", ErrShareMismatch, sp.ID)
		}
		if amount < 0 {
			return nil, fmt.Errorf("%w: negative amount %d for participant %s", ErrShareMismatch, amount, sp.ID)
		}
		shares[i] = Share{ParticipantID: sp.ID, Amount: amount}
		sum += amount
	}
	if sum != total {
		return nil, fmt.Errorf("%w: shares sum to %d, expense total is %d", ErrShareMismatch, sum, total)
	}
	return shares, nil
}
