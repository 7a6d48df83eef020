package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// ComputeBalances derives each participant's net position from expenses and
// settlements. Output order follows the participants slice. The net amounts
// always sum to zero: every unit someone paid is a unit someone owes.
//
// Any reference to a participant outside the supplied set fails with
// ErrUnknownParticipant rather than being silently dropped.
func ComputeBalances(participants []uuid.UUID, expenses []Expense, settlements []Settlement) ([]Balance, error) {
	index := make(map[uuid.UUID]int, len(participants))
	for i, id := range participants {
		index[id] = i
	}

	balances := make([]Balance, len(participants))
	for i, id := range participants {
		balances[i] = Balance{ParticipantID: id}
	}

	for _, e := range expenses {
		payer, ok := index[e.PayerID]
		if !ok {
			return nil, fmt.Errorf("%w: expense payer %s", ErrUnknownParticipant, e.PayerID)
		}
		balances[payer].TotalPaid += e.Amount

		for _, s := range e.Shares {
			i, ok := index[s.ParticipantID]
			if !ok {
				return nil, fmt.Errorf("%w: expense share participant %s", ErrUnknownParticipant, s.ParticipantID)
			}
			balances[i].TotalOwed += s.Amount
		}
	}

	for _, s := range settlements {
		from, ok := index[s.FromID]
		if !ok {
			return nil, fmt.Errorf("%w: settlement payer %s", ErrUnknownParticipant, s.FromID)
		}
		to, ok := index[s.ToID]
		if !ok {
			return nil, fmt.Errorf("%w: settlement receiver %s", ErrUnknownParticipant, s.ToID)
		}
		// Paying a settlement reduces the payer's debt, so the payer's net
		// moves up and the receiver's moves down.
		balances[from].NetSettlements += s.Amount
		balances[to].NetSettlements -= s.Amount
	}

	for i := range balances {
		b := &balances[i]
		b.Net = b.TotalPaid - b.TotalOwed + b.NetSettlements
	}

	return balances, nil
}
