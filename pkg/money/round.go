package money

import "github.com/shopspring/decimal"

// Cents is the scale used for monetary results.
const Cents int32 = 2

var half = decimal.NewFromInt(2)

// RoundHalfDown rounds d to the given number of decimal places. Digits past
// the cutoff that are exactly a half round toward zero; anything above a half
// rounds away from zero.
func RoundHalfDown(d decimal.Decimal, places int32) decimal.Decimal {
	return Average(d, 1, places)
}

// Average returns sum/n rounded half-down to the given number of places.
// The division is exact: the tie check compares the remainder against half
// a unit instead of relying on a finite-precision quotient. n must be positive.
func Average(sum decimal.Decimal, n int64, places int32) decimal.Decimal {
	if n <= 0 {
		panic("money: average over non-positive count")
	}

	divisor := decimal.NewFromInt(n)
	q, r := sum.QuoRem(divisor, places)
	if r.IsZero() {
		return q.Round(places)
	}

	// one unit at the target scale, expressed in the remainder's terms
	unit := divisor.Shift(-places)
	if r.Abs().Mul(half).GreaterThan(unit) {
		step := decimal.New(1, -places)
		if sum.IsNegative() {
			step = step.Neg()
		}
		q = q.Add(step)
	}

	return q.Round(places)
}
