// Package cashflow spreads a project cost over its duration along an S-curve.
package cashflow

// Point is the spend in one month.
type Point struct {
	Month              int     `json:"month"`
	Amount             float64 `json:"amount"`
	Cumulative         float64 `json:"cumulative"`
	CumulativeFraction float64 `json:"cumulative_fraction"`
}

// SCurve is the normalized cumulative spend f(x) = 3x² - 2x³ for x in [0, 1].
func SCurve(x float64) float64 {
	return 3*x*x - 2*x*x*x
}

// Compute distributes totalCost over the whole months of durationMonths.
// The fractional part of the duration is dropped; a duration under one
// month yields no points.
func Compute(totalCost, durationMonths float64) []Point {
	months := int(durationMonths)
	if months <= 0 {
		return []Point{}
	}

	points := make([]Point, 0, months)
	var cumulative float64
	for m := 1; m <= months; m++ {
		share := SCurve(float64(m)/float64(months)) - cumulative
		cumulative += share
		points = append(points, Point{
			Month:              m,
			Amount:             totalCost * share,
			Cumulative:         totalCost * cumulative,
			CumulativeFraction: cumulative,
		})
	}
	return points
}

// Peak returns the month with the largest spend, or a zero Point when
// points is empty.
func Peak(points []Point) Point {
	var peak Point
	for _, p := range points {
		if p.Amount > peak.Amount {
			peak = p
		}
	}
	return peak
}
