package ledger

import "fmt"

// Simplify produces a small set of transfers that zeroes every balance.
// Exact transaction-count minimality is NP-hard, so this is the standard
// greedy heuristic: repeatedly match the largest debtor against the largest
// creditor and transfer the smaller of the two magnitudes. Each step zeroes
// at least one party, so at most n-1 suggestions come back for n non-zero
// balances. Ties are broken by the input order of the balances slice.
//
// Balances that do not sum to zero indicate upstream corruption and fail
// with ErrUnbalancedLedger; no partial plan is returned.
func Simplify(balances []Balance) ([]Suggestion, error) {
	var sum int64
	for _, b := range balances {
		sum += b.Net
	}
	if sum != 0 {
		return nil, fmt.Errorf("%w: balances sum to %d", ErrUnbalancedLedger, sum)
	}

	// Working copy of the non-zero balances, input order preserved.
	remaining := make([]Balance, 0, len(balances))
	for _, b := range balances {
		if b.Net != 0 {
			remaining = append(remaining, b)
		}
	}

	suggestions := []Suggestion{}
	for {
		debtor, creditor := -1, -1
		for i, b := range remaining {
			switch {
			case b.Net < 0:
				if debtor == -1 || b.Net < remaining[debtor].Net {
					debtor = i
				}
			case b.Net > 0:
				if creditor == -1 || b.Net > remaining[creditor].Net {
					creditor = i
				}
			}
		}
		if debtor == -1 || creditor == -1 {
			break
		}

		amount := -remaining[debtor].Net
		if remaining[creditor].Net < amount {
			amount = remaining[creditor].Net
		}

		suggestions = append(suggestions, Suggestion{
			FromID: remaining[debtor].ParticipantID,
			ToID:   remaining[creditor].ParticipantID,
			Amount: amount,
		})

		remaining[debtor].Net += amount
		remaining[creditor].Net -= amount
	}

	return suggestions, nil
}
