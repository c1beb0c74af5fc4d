package schedule

import (
	"testing"
	"time"

	"github.com/tashfin/contractbot/money"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sum(rows []Row) money.Money {
	var s money.Money
	for _, r := range rows {
		s += r.Amount
	}
	return s
}

func TestComputeEvenSplit(t *testing.T) {
	rows := Compute(date(2024, time.March, 10), 12, 15, 12000, 0)
	if len(rows) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(rows))
	}
	if got := sum(rows); got != 12000 {
		t.Errorf("amounts sum to %v, want 12000", got)
	}
	for i, r := range rows {
		if r.Amount != 1000 {
			t.Errorf("row %d amount = %v, want 1000", i+1, r.Amount)
		}
	}
	if rows[0].Date != date(2024, time.April, 15) {
		t.Errorf("first payment on %v, want 15.04.2024", rows[0].Date)
	}
	if rows[len(rows)-1].Balance != 0 {
		t.Errorf("final balance = %v, want 0", rows[len(rows)-1].Balance)
	}
}

func TestComputeResidualAbsorbedByTail(t *testing.T) {
	rows := Compute(date(2024, time.January, 1), 3, 10, 100, 0)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Amount != 34 || rows[1].Amount != 34 || rows[2].Amount != 32 {
		t.Errorf("amounts = %v %v %v, want 34 34 32", rows[0].Amount, rows[1].Amount, rows[2].Amount)
	}
	if got := sum(rows); got != 100 {
		t.Errorf("amounts sum to %v, want 100", got)
	}
	if rows[2].Balance != 0 {
		t.Errorf("final balance = %v, want 0", rows[2].Balance)
	}
}

func TestComputeMayEndEarly(t *testing.T) {
	// Split of 10 over 12 rounds each payment up to 1 ruble, so the
	// principal is exhausted after 10 payments.
	rows := Compute(date(2024, time.January, 1), 12, 5, 10, 0)
	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(rows))
	}
	if got := sum(rows); got != 10 {
		t.Errorf("amounts sum to %v, want 10", got)
	}
	if rows[len(rows)-1].Balance != 0 {
		t.Errorf("final balance = %v, want 0", rows[len(rows)-1].Balance)
	}
}

func TestComputeBalancesDescend(t *testing.T) {
	rows := Compute(date(2024, time.June, 20), 7, 1, 10000, 2500)
	if got := sum(rows); got != 7500 {
		t.Errorf("amounts sum to %v, want 7500", got)
	}
	balance := money.Money(7500)
	for i, r := range rows {
		balance -= r.Amount
		if r.Balance != balance {
			t.Errorf("row %d balance = %v, want %v", i+1, r.Balance, balance)
		}
		if r.Amount < 0 {
			t.Errorf("row %d amount negative: %v", i+1, r.Amount)
		}
	}
}

func TestComputePaydayClamped(t *testing.T) {
	// Contract in January, payday 31: February has no 31st, the payment
	// moves to the last day of the month.
	rows := Compute(date(2024, time.January, 5), 3, 31, 3000, 0)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Date != date(2024, time.February, 29) {
		t.Errorf("february payment on %v, want 29.02.2024", rows[0].Date)
	}
	if rows[1].Date != date(2024, time.March, 31) {
		t.Errorf("march payment on %v, want 31.03.2024", rows[1].Date)
	}
	if rows[2].Date != date(2024, time.April, 30) {
		t.Errorf("april payment on %v, want 30.04.2024", rows[2].Date)
	}
}

func TestComputeEndOfMonthStartDoesNotSkip(t *testing.T) {
	// A contract dated January 31 must still pay in February.
	rows := Compute(date(2024, time.January, 31), 2, 15, 200, 0)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Date != date(2024, time.February, 15) {
		t.Errorf("first payment on %v, want 15.02.2024", rows[0].Date)
	}
}

func TestComputeDegenerate(t *testing.T) {
	if rows := Compute(date(2024, time.January, 1), 0, 15, 1000, 0); len(rows) != 0 {
		t.Errorf("zero term: expected empty schedule, got %d rows", len(rows))
	}
	if rows := Compute(date(2024, time.January, 1), 12, 15, 1000, 1000); len(rows) != 0 {
		t.Errorf("advance == total: expected empty schedule, got %d rows", len(rows))
	}
	if rows := Compute(date(2024, time.January, 1), 12, 15, 1000, 5000); len(rows) != 0 {
		t.Errorf("advance > total: expected empty schedule, got %d rows", len(rows))
	}
}

func TestFirst(t *testing.T) {
	if got := First(nil); got != 0 {
		t.Errorf("First(nil) = %v, want 0", got)
	}
	rows := Compute(date(2024, time.January, 1), 12, 15, 12000, 0)
	if got := First(rows); got != 1000 {
		t.Errorf("First = %v, want 1000", got)
	}
}
