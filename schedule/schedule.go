// Package schedule computes the installment repayment schedule for a
// Murabaha contract: the remaining principal split into equal monthly
// payments due on a fixed day of month.
package schedule

import (
	"time"

	"github.com/tashfin/contractbot/money"
)

// Row is one payment period. Balance is the principal outstanding after
// this row's payment is applied.
type Row struct {
	Date    time.Time   `json:"date"`
	Amount  money.Money `json:"amount"`
	Balance money.Money `json:"balance"`
}

// Compute builds the schedule for total minus advance, spread over at most
// termMonths payments starting the month after start. Payments fall on the
// payday-th day of each month, clamped to the month's last day for short
// months. The equal split is rounded up per row and the tail payment shrinks
// so the amounts sum to the principal exactly.
//
// A non-positive term or an advance covering the total yields an empty
// schedule; callers must treat the first installment of an empty schedule
// as zero.
func Compute(start time.Time, termMonths, payday int, total, advance money.Money) []Row {
	if termMonths <= 0 {
		return nil
	}
	principal := total - advance
	if principal <= 0 {
		return nil
	}

	split := money.RoundUp(principal.Float() / float64(termMonths))
	rows := make([]Row, 0, termMonths)
	balance := principal
	for i := 1; i <= termMonths && balance > 0; i++ {
		amount := split
		if amount > balance {
			amount = balance
		}
		balance -= amount
		rows = append(rows, Row{
			Date:    paymentDate(start, i, payday),
			Amount:  amount,
			Balance: balance,
		})
	}
	return rows
}

// First returns the first installment amount, or 0 for an empty schedule.
func First(rows []Row) money.Money {
	if len(rows) == 0 {
		return 0
	}
	return rows[0].Amount
}

// paymentDate is the payday-th day of the monthsAhead-th month after start,
// clamped to that month's length.
func paymentDate(start time.Time, monthsAhead, payday int) time.Time {
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	first = first.AddDate(0, monthsAhead, 0)
	day := payday
	if last := daysIn(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, start.Location())
}

func daysIn(monthStart time.Time) int {
	return time.Date(monthStart.Year(), monthStart.Month()+1, 0, 0, 0, 0, 0, monthStart.Location()).Day()
}
