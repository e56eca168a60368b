package integrate

import "math"

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// RoundSignificant rounds v to the given number of significant figures.
func RoundSignificant(v float64, figures int) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) || figures <= 0 {
		return v
	}
	magnitude := int(math.Floor(math.Log10(math.Abs(v)))) + 1
	shift := figures - magnitude
	if shift >= 0 {
		scale := math.Pow(10, float64(shift))
		return math.Round(v*scale) / scale
	}
	scale := math.Pow(10, float64(-shift))
	return math.Round(v/scale) * scale
}
