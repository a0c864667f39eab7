package quantity

import "github.com/alexiusacademia/goestimate/internal/catalog"

// LaborLine is the cost of one trade.
type LaborLine struct {
	Activity      string  `json:"activity"`
	Quantity      float64 `json:"quantity"` // in the rate's unit
	Unit          string  `json:"unit"`
	Rate          float64 `json:"rate"`
	ClimateFactor float64 `json:"climate_factor"`
	Cost          float64 `json:"cost"`
}

// LaborQuantity returns the quantity that drives the named trade. Trades
// outside the known set are driven by nothing and cost zero.
func LaborQuantity(activity string, c Calculations, floors int) float64 {
	switch activity {
	case "Excavation", "Foundation":
		return c.FootingVolume
	case "Brickwork", "Insulation":
		return c.WallArea
	case "Concreting":
		return c.TotalConcrete
	case "Plastering", "Painting":
		return 2 * c.WallArea // both faces
	case "Roofing":
		return c.FloorArea
	case "Plumbing", "Electrical":
		return float64(floors)
	}
	return 0
}

func laborLines(rates []catalog.LaborRate, c Calculations, floors int) []LaborLine {
	lines := make([]LaborLine, 0, len(rates))
	for _, r := range rates {
		q := LaborQuantity(r.Activity, c, floors)
		lines = append(lines, LaborLine{
			Activity:      r.Activity,
			Quantity:      q,
			Unit:          r.Unit,
			Rate:          r.Rate,
			ClimateFactor: r.ClimateFactor,
			Cost:          q * r.Rate * r.ClimateFactor,
		})
	}
	return lines
}
