package ledger

import (
	"testing"

	"github.com/google/uuid"
)

func TestComputeChargeDebt(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	participants := []uuid.UUID{a, b, c}
	required := []string{"2026-06", "2026-07", "2026-08"}

	paid := []Expense{
		// A paid every period; amounts are irrelevant, coverage counts.
		{PayerID: a, Amount: 5000, PeriodKey: "2026-06"},
		{PayerID: a, Amount: 1, PeriodKey: "2026-07"},
		{PayerID: a, Amount: 5000, PeriodKey: "2026-08"},
		// B paid one period twice; still just one period covered.
		{PayerID: b, Amount: 5000, PeriodKey: "2026-07"},
		{PayerID: b, Amount: 5000, PeriodKey: "2026-07"},
		// B also paid a period outside the required range.
		{PayerID: b, Amount: 5000, PeriodKey: "2026-01"},
		// Untagged expenses never count.
		{PayerID: c, Amount: 5000},
	}

	records := ComputeChargeDebt(participants, 5000, required, paid)

	want := []ChargeDebtRecord{
		{ParticipantID: a, RequiredPeriods: 3, UnpaidPeriods: 0, DebtAmount: 0},
		{ParticipantID: b, RequiredPeriods: 3, UnpaidPeriods: 2, DebtAmount: 10000},
		{ParticipantID: c, RequiredPeriods: 3, UnpaidPeriods: 3, DebtAmount: 15000},
	}
	for i, w := range want {
		if records[i] != w {
			t.Errorf("record[%d] = %+v, want %+v", i, records[i], w)
		}
	}
}

func TestComputeChargeDebtNoRequiredPeriods(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	records := ComputeChargeDebt([]uuid.UUID{a, b}, 5000, nil, []Expense{
		{PayerID: a, Amount: 5000, PeriodKey: "2026-06"},
	})

	for i, r := range records {
		if r.UnpaidPeriods != 0 || r.DebtAmount != 0 || r.RequiredPeriods != 0 {
			t.Errorf("record[%d] = %+v, want zero debt", i, r)
		}
	}
}

func TestComputeChargeDebtNoParticipants(t *testing.T) {
	records := ComputeChargeDebt(nil, 5000, []string{"2026-06"}, nil)
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}
