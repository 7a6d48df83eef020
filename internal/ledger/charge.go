package ledger

import "github.com/google/uuid"

// ComputeChargeDebt reports, per participant, how many required periods went
// unpaid and the resulting debt at chargePerPeriod per missed period.
//
// A participant counts as having paid a period when they appear as payer of
// at least one expense tagged with that period key, regardless of amount:
// this tracks period coverage ("did they contribute that month"), not amount
// sufficiency. An empty requiredPeriodKeys slice means no debt for anyone.
func ComputeChargeDebt(participants []uuid.UUID, chargePerPeriod int64, requiredPeriodKeys []string, paid []Expense) []ChargeDebtRecord {
	required := make(map[string]struct{}, len(requiredPeriodKeys))
	for _, key := range requiredPeriodKeys {
		required[key] = struct{}{}
	}

	covered := make(map[uuid.UUID]map[string]struct{}, len(participants))
	for _, e := range paid {
		if e.PeriodKey == "" {
			continue
		}
		if _, ok := required[e.PeriodKey]; !ok {
			continue
		}
		if covered[e.PayerID] == nil {
			covered[e.PayerID] = make(map[string]struct{})
		}
		covered[e.PayerID][e.PeriodKey] = struct{}{}
	}

	records := make([]ChargeDebtRecord, len(participants))
	for i, id := range participants {
		unpaid := len(required) - len(covered[id])
		if unpaid < 0 {
			unpaid = 0
		}
		records[i] = ChargeDebtRecord{
			ParticipantID:   id,
			RequiredPeriods: len(required),
			UnpaidPeriods:   unpaid,
			DebtAmount:      int64(unpaid) * chargePerPeriod,
		}
	}
	return records
}
