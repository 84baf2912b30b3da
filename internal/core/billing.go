// Package core holds the domain model and the billing arithmetic.
//
// All hour/price arithmetic is exact: hours are big.Rat (seconds/3600 has
// no finite decimal form), rounded values are decimal.Decimal with two
// fractional digits. Nothing in this package touches floating point, so
// the reported rounding deviation is exact, not a tolerance.
package core

import (
	"math/big"
	"sort"

	"github.com/shopspring/decimal"
)

const secondsPerHour = 3600

// BillingLine is one priced line of the invoice summary.
type BillingLine struct {
	Description  string
	Seconds      int64
	ExactHours   *big.Rat        // Seconds/3600, exact
	RoundedHours decimal.Decimal // ExactHours rounded half-away-from-zero to 1/100
	Price        decimal.Decimal // Rate × RoundedHours; rounding happens on hours, never on price
}

// Invoice is the ranked, priced summary for one run.
type Invoice struct {
	Rate       int64 // whole currency units per hour
	Lines      []BillingLine
	TotalHours decimal.Decimal
	TotalPrice decimal.Decimal
	// Deviation is Σ(rounded − exact) × rate, the aggregate currency
	// difference introduced by rounding. Reported for audit, not billed.
	Deviation *big.Rat
}

// BuildInvoice turns accumulated per-description seconds into ranked,
// priced lines. Lines are ordered by exact hours descending, ties broken
// by rounded hours then description so the ranking is deterministic.
func BuildInvoice(totals map[string]int64, rate int64) Invoice {
	inv := Invoice{
		Rate:      rate,
		Lines:     make([]BillingLine, 0, len(totals)),
		Deviation: new(big.Rat),
	}
	rateDec := decimal.NewFromInt(rate)
	rateRat := new(big.Rat).SetInt64(rate)

	for desc, secs := range totals {
		exact := big.NewRat(secs, secondsPerHour)
		rounded := roundRatHalfAway(exact, 2)
		line := BillingLine{
			Description:  desc,
			Seconds:      secs,
			ExactHours:   exact,
			RoundedHours: rounded,
			Price:        rateDec.Mul(rounded),
		}
		inv.Lines = append(inv.Lines, line)

		diff := new(big.Rat).Sub(rounded.Rat(), exact)
		inv.Deviation.Add(inv.Deviation, diff.Mul(diff, rateRat))
		inv.TotalHours = inv.TotalHours.Add(line.RoundedHours)
		inv.TotalPrice = inv.TotalPrice.Add(line.Price)
	}

	sort.Slice(inv.Lines, func(i, j int) bool {
		if c := inv.Lines[i].ExactHours.Cmp(inv.Lines[j].ExactHours); c != 0 {
			return c > 0
		}
		if c := inv.Lines[i].RoundedHours.Cmp(inv.Lines[j].RoundedHours); c != 0 {
			return c > 0
		}
		return inv.Lines[i].Description < inv.Lines[j].Description
	})

	return inv
}

// DeviationString renders the rounding deviation with two decimals.
func (inv Invoice) DeviationString() string {
	return inv.Deviation.FloatString(2)
}

// roundRatHalfAway rounds r to the given number of decimal places using
// half-away-from-zero ties. The halfway comparison is done on big.Int
// numerators, so ties are exact and the rule is stable across runtimes.
func roundRatHalfAway(r *big.Rat, places int32) decimal.Decimal {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	num := new(big.Int).Mul(r.Num(), scale)
	den := r.Denom() // big.Rat keeps the denominator positive

	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	// QuoRem truncates toward zero; rem carries the sign of num.
	rem.Abs(rem)
	rem.Lsh(rem, 1)
	if rem.Cmp(den) >= 0 {
		if num.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return decimal.NewFromBigInt(q, -places)
}
