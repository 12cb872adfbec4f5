package knowledge

// CycleWeights is the relative importance of the four time cycles.
type CycleWeights struct {
	Decade float64 `json:"decade"`
	Year   float64 `json:"year"`
	Month  float64 `json:"month"`
	Day    float64 `json:"day"`
}

// Dyadic fractions so the sum is exactly 1.0 in floating point.
var importanceWeights = CycleWeights{
	Decade: 0.375,
	Year:   0.3125,
	Month:  0.1875,
	Day:    0.125,
}

// ImportanceWeights returns the cycle weights.
func ImportanceWeights() CycleWeights { return importanceWeights }

// Sum returns the total weight.
func (w CycleWeights) Sum() float64 { return w.Decade + w.Year + w.Month + w.Day }

// FuseCycleScores combines per-cycle scores with the importance weights.
func FuseCycleScores(decade, year, month, day float64) float64 {
	w := importanceWeights
	return decade*w.Decade + year*w.Year + month*w.Month + day*w.Day
}
