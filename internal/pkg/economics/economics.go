// Package economics holds the investment math the model definitions price
// expansion with.
package economics

import "math"

// Annuity spreads a capital expenditure over n periods at the weighted
// average cost of capital wacc: capex * (wacc * (1+wacc)^n) / ((1+wacc)^n - 1).
// A zero wacc degenerates to straight-line capex / n.
func Annuity(capex float64, n int, wacc float64) float64 {
	if n <= 0 {
		return capex
	}
	if wacc == 0 {
		return capex / float64(n)
	}
	q := math.Pow(1+wacc, float64(n))
	return capex * (wacc * q) / (q - 1)
}
