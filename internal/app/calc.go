package app

import (
	"math"

	"github.com/shopspring/decimal"
)

// pct rounds part/total to a whole percentage, 0 when total is 0.
func pct(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// growth is the month-over-month percentage delta, 0 when last is 0.
func growth(this, last int) int {
	if last <= 0 {
		return 0
	}
	return int(math.Round(float64(this-last) / float64(last) * 100))
}

// ratio1 divides to one decimal, 0 when the denominator is 0.
func ratio1(total, count int) float64 {
	if count <= 0 {
		return 0
	}
	d := decimal.NewFromInt(int64(total)).DivRound(decimal.NewFromInt(int64(count)), 1)
	return d.InexactFloat64()
}

// meanMoney averages strictly positive amounts in decimal, rounded to
// centavos. Zero and missing amounts are excluded; an empty input yields 0.
func meanMoney(amounts []float64) float64 {
	sum := decimal.Zero
	n := 0
	for _, a := range amounts {
		if a > 0 {
			sum = sum.Add(decimal.NewFromFloat(a))
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum.DivRound(decimal.NewFromInt(int64(n)), 2).InexactFloat64()
}

// sumMoney totals amounts in decimal to avoid float drift on revenue sums.
func sumMoney(amounts []float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	return sum.InexactFloat64()
}
