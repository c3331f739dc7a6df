// Package balance reduces transactions to a signed balance over a
// trailing period.
package balance

import (
	"time"

	"github.com/dukerupert/centavo/internal/model"
)

// Sum adds income amounts and subtracts expense amounts, in cents.
func Sum(txs []model.Transaction) int64 {
	var total int64
	for _, tx := range txs {
		if tx.Type == model.TypeIncome {
			total += tx.AmountCents
		} else {
			total -= tx.AmountCents
		}
	}
	return total
}

// PeriodStart returns the inclusive lower bound of a trailing window of
// the given number of days, anchored at the start of now's calendar
// day. days = 0 means "today only".
func PeriodStart(now time.Time, days int) time.Time {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start.AddDate(0, 0, -days)
}
